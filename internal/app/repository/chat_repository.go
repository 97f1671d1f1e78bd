package repository

import (
	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/pkg/logger"
	"gorm.io/gorm"
)

type ChatRepository interface {
	Create(msg *model.ChatMessage) error
	FindByRequestID(requestID uint) ([]model.ChatMessage, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(msg *model.ChatMessage) error {
	if err := r.db.Create(msg).Error; err != nil {
		logger.Error("Failed to create chat message", err, logger.Fields{
			"request_id": msg.RequestID,
		})
		return err
	}

	logger.Debug("Chat message created", logger.Fields{
		"message_id": msg.ID,
		"request_id": msg.RequestID,
	})
	return nil
}

// FindByRequestID returns the thread oldest first.
func (r *chatRepository) FindByRequestID(requestID uint) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if err := r.db.Where("request_id = ?", requestID).
		Order("created_at ASC").Order("id ASC").
		Find(&messages).Error; err != nil {
		logger.Error("Failed to get chat messages", err, logger.Fields{
			"request_id": requestID,
		})
		return nil, err
	}
	return messages, nil
}
