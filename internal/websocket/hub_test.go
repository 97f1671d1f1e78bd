package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthorizer struct {
	allowed map[string][]uint
}

func (f fakeAuthorizer) Authorize(requestID uint, email string) (model.SenderRole, error) {
	for _, id := range f.allowed[email] {
		if id == requestID {
			return model.SenderCustomer, nil
		}
	}
	return "", errors.New("not a participant of this request")
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.SetAuthorizer(fakeAuthorizer{allowed: map[string][]uint{
		"ana@example.com": {1},
		"ben@example.com": {1, 2},
	}})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func connect(t *testing.T, hub *Hub, email string) *Client {
	t.Helper()
	client := NewClient(hub, nil, email)
	before := hub.Sessions()
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.Sessions() == before+1 }, time.Second, 5*time.Millisecond)
	return client
}

func next(t *testing.T, client *Client) ServerMessage {
	t.Helper()
	select {
	case data, ok := <-client.send:
		require.True(t, ok, "send channel closed")
		var msg ServerMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return ServerMessage{}
	}
}

func noFrame(t *testing.T, client *Client) {
	t.Helper()
	select {
	case data := <-client.send:
		t.Fatalf("unexpected frame %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubSubscribeAndDeliver(t *testing.T) {
	hub := startHub(t)
	ana := connect(t, hub, "ana@example.com")
	ben := connect(t, hub, "ben@example.com")

	hub.HandleClientMessage(ana, []byte(`{"type":"subscribe","request_id":1}`))
	assert.Equal(t, TypeSubscribed, next(t, ana).Type)
	hub.HandleClientMessage(ben, []byte(`{"type":"subscribe","request_id":2}`))
	assert.Equal(t, TypeSubscribed, next(t, ben).Type)
	assert.True(t, ana.Subscribed(1))
	assert.Equal(t, 1, hub.Subscribers(1))

	hub.PublishChatMessage(&model.ChatMessage{ID: 10, RequestID: 1, SenderRole: model.SenderAdmin, Content: "Ready at 3pm"})

	msg := next(t, ana)
	assert.Equal(t, TypeMessage, msg.Type)
	require.NotNil(t, msg.Message)
	assert.Equal(t, "Ready at 3pm", msg.Message.Content)
	assert.Equal(t, uint(1), msg.Message.RequestID)

	// ben follows request 2 only
	noFrame(t, ben)
}

func TestHubRefusesForeignThread(t *testing.T) {
	hub := startHub(t)
	ana := connect(t, hub, "ana@example.com")

	hub.HandleClientMessage(ana, []byte(`{"type":"subscribe","request_id":2}`))
	msg := next(t, ana)
	assert.Equal(t, TypeError, msg.Type)
	assert.Equal(t, uint(2), msg.RequestID)
	assert.False(t, ana.Subscribed(2))

	hub.PublishChatMessage(&model.ChatMessage{RequestID: 2, Content: "secret"})
	noFrame(t, ana)
}

func TestHubUnsubscribeAndMalformed(t *testing.T) {
	hub := startHub(t)
	ana := connect(t, hub, "ana@example.com")

	hub.HandleClientMessage(ana, []byte(`{"type":"subscribe","request_id":1}`))
	next(t, ana)
	hub.HandleClientMessage(ana, []byte(`{"type":"unsubscribe","request_id":1}`))
	assert.Equal(t, TypeUnsubscribed, next(t, ana).Type)
	assert.Zero(t, hub.Subscribers(1))

	hub.PublishChatMessage(&model.ChatMessage{RequestID: 1, Content: "missed"})
	noFrame(t, ana)

	hub.HandleClientMessage(ana, []byte(`not json`))
	assert.Equal(t, TypeError, next(t, ana).Type)
	hub.HandleClientMessage(ana, []byte(`{"type":"typing"}`))
	assert.Equal(t, TypeError, next(t, ana).Type)
}

func TestHubUnregisterClosesSession(t *testing.T) {
	hub := startHub(t)
	ben := connect(t, hub, "ben@example.com")
	hub.HandleClientMessage(ben, []byte(`{"type":"subscribe","request_id":1}`))
	next(t, ben)

	hub.Unregister(ben)
	require.Eventually(t, func() bool { return hub.Sessions() == 0 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, hub.Subscribers(1))

	_, ok := <-ben.send
	assert.False(t, ok)

	// frames for a closed session are dropped
	hub.HandleClientMessage(ben, []byte(`{"type":"subscribe","request_id":1}`))
	assert.Zero(t, hub.Subscribers(1))
}

func TestHubRateLimit(t *testing.T) {
	hub := startHub(t)
	ana := connect(t, hub, "ana@example.com")

	for i := 0; i < maxMessagesPerSecond+5; i++ {
		hub.HandleClientMessage(ana, []byte(`{"type":"unsubscribe","request_id":1}`))
	}
	assert.Len(t, ana.send, maxMessagesPerSecond)
}

func TestHubStoppedDoesNotBlockSessions(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	ana := connect(t, hub, "ana@example.com")
	cancel()
	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	// closeAll released the registered session
	_, ok := <-ana.send
	assert.False(t, ok)

	// more unregisters than the channel buffers, as a burst of ReadPump exits would send
	finished := make(chan struct{})
	go func() {
		for i := 0; i < 2*cap(hub.unregister); i++ {
			hub.Unregister(NewClient(hub, nil, "ana@example.com"))
		}
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Unregister blocked after the hub stopped")
	}

	late := NewClient(hub, nil, "ben@example.com")
	hub.Register(late)
	_, ok = <-late.send
	assert.False(t, ok)
	assert.Zero(t, hub.Sessions())
}
