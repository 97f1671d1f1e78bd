package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
)

const (
	chatTopicPrefix  = "chat:request:"
	chatTopicPattern = chatTopicPrefix + "*"

	publishTimeout = 3 * time.Second
)

// ChatTopic is the Redis channel carrying inserts for one request thread.
func ChatTopic(requestID uint) string {
	return fmt.Sprintf("%s%d", chatTopicPrefix, requestID)
}

// RedisRelay publishes chat inserts to Redis and feeds every message seen on
// the chat topics into the local hub, so all instances deliver them.
type RedisRelay struct {
	client *goredis.Client
	hub    *Hub
}

func NewRedisRelay(client *goredis.Client, hub *Hub) *RedisRelay {
	return &RedisRelay{client: client, hub: hub}
}

// PublishChatMessage falls back to local delivery when Redis refuses the
// publish.
func (r *RedisRelay) PublishChatMessage(msg *model.ChatMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Error("Failed to marshal chat message for relay", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := r.client.Publish(ctx, ChatTopic(msg.RequestID), payload).Err(); err != nil {
		logger.Error("Failed to publish chat message", err, map[string]interface{}{
			"request_id": msg.RequestID,
		})
		r.hub.PublishChatMessage(msg)
	}
}

// Run listens on the chat topics until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) {
	pubsub := r.client.PSubscribe(ctx, chatTopicPattern)
	defer pubsub.Close()

	logger.Info("Chat relay subscribed", map[string]interface{}{
		"pattern": chatTopicPattern,
	})

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			r.deliver(msg.Channel, msg.Payload)
		}
	}
}

func (r *RedisRelay) deliver(channel, payload string) {
	var chatMsg model.ChatMessage
	if err := json.Unmarshal([]byte(payload), &chatMsg); err != nil {
		logger.Warn("Dropping malformed relay payload", map[string]interface{}{
			"channel": channel,
			"error":   err.Error(),
		})
		return
	}

	id, err := strconv.ParseUint(strings.TrimPrefix(channel, chatTopicPrefix), 10, 64)
	if err != nil || uint(id) != chatMsg.RequestID {
		logger.Warn("Relay payload does not match its channel", map[string]interface{}{
			"channel":    channel,
			"request_id": chatMsg.RequestID,
		})
		return
	}

	r.hub.PublishChatMessage(&chatMsg)
}
