package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/repository"
	"github.com/autonear/autonear-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrEmptyMessage   = errors.New("message content is required")
	ErrMessageTooLong = errors.New("message content is too long")
	ErrChatForbidden  = errors.New("not a participant of this request")
)

const MaxMessageLength = 2000

// ChatPublisher pushes a stored message to subscribed realtime views.
type ChatPublisher interface {
	PublishChatMessage(msg *model.ChatMessage)
}

type ChatService interface {
	GetMessages(requestID uint, viewerEmail string) ([]model.ChatMessage, error)
	SendMessage(requestID uint, viewerEmail, content string) (*model.ChatMessage, error)
	Authorize(requestID uint, viewerEmail string) (model.SenderRole, error)
}

type chatService struct {
	chatRepo    repository.ChatRepository
	requestRepo repository.ServiceRequestRepository
	access      AccessService
	publisher   ChatPublisher
}

func NewChatService(
	chatRepo repository.ChatRepository,
	requestRepo repository.ServiceRequestRepository,
	access AccessService,
	publisher ChatPublisher,
) ChatService {
	return &chatService{
		chatRepo:    chatRepo,
		requestRepo: requestRepo,
		access:      access,
		publisher:   publisher,
	}
}

// Authorize returns the role the viewer speaks with on this thread:
// administrators on any request, customers on their own.
func (s *chatService) Authorize(requestID uint, viewerEmail string) (model.SenderRole, error) {
	req, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrServiceRequestNotFound
		}
		return "", err
	}

	isAdmin, err := s.access.IsAdmin(viewerEmail)
	if err != nil {
		return "", err
	}
	if isAdmin {
		return model.SenderAdmin, nil
	}

	viewer := model.NormalizeEmail(viewerEmail)
	if viewer != "" && req.CustomerEmail != nil && model.NormalizeEmail(*req.CustomerEmail) == viewer {
		return model.SenderCustomer, nil
	}
	return "", ErrChatForbidden
}

func (s *chatService) GetMessages(requestID uint, viewerEmail string) ([]model.ChatMessage, error) {
	if _, err := s.Authorize(requestID, viewerEmail); err != nil {
		return nil, err
	}
	return s.chatRepo.FindByRequestID(requestID)
}

func (s *chatService) SendMessage(requestID uint, viewerEmail, content string) (*model.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	role, err := s.Authorize(requestID, viewerEmail)
	if err != nil {
		return nil, err
	}

	msg := &model.ChatMessage{
		RequestID:   requestID,
		SenderRole:  role,
		SenderEmail: model.NormalizeEmail(viewerEmail),
		Content:     content,
	}
	if err := s.chatRepo.Create(msg); err != nil {
		return nil, err
	}

	logger.Debug("Chat message stored", logger.Fields{
		"request_id":  requestID,
		"message_id":  msg.ID,
		"sender_role": role,
	})

	if s.publisher != nil {
		s.publisher.PublishChatMessage(msg)
	}
	return msg, nil
}
