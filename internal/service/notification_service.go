package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/YasinKhilji/ims-project/internal/apperr"
	"github.com/YasinKhilji/ims-project/internal/model"
	"github.com/YasinKhilji/ims-project/internal/repository"
	"github.com/YasinKhilji/ims-project/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// DefaultNotificationLimit bounds ListRecent when the caller passes no limit.
	DefaultNotificationLimit = 5
	// MaxNotificationLimit is the hard cap for a single listing.
	MaxNotificationLimit = 50
)

type NotificationService interface {
	Notify(userID uuid.UUID, message string, ntype model.NotificationType, related *model.RelatedEntity) (uuid.UUID, error)
	NotifyTx(tx *gorm.DB, userID uuid.UUID, message string, ntype model.NotificationType, related *model.RelatedEntity) (*model.Notification, error)
	Push(n *model.Notification)
	ListRecent(userID uuid.UUID, limit int) ([]model.Notification, error)
	UnreadCount(userID uuid.UUID) (int64, error)
	MarkRead(notificationID, userID uuid.UUID) (*model.RelatedEntity, error)
}

type notificationService struct {
	db        *gorm.DB
	notifRepo repository.NotificationRepository
	wsHub     *ws.Hub
	log       *zap.Logger
}

func NewNotificationService(db *gorm.DB, notifRepo repository.NotificationRepository, hub *ws.Hub, log *zap.Logger) NotificationService {
	return &notificationService{
		db:        db,
		notifRepo: notifRepo,
		wsHub:     hub,
		log:       log,
	}
}

// Notify inserts a notification outside any caller transaction and pushes it
// to the recipient's open websocket connections.
func (s *notificationService) Notify(userID uuid.UUID, message string, ntype model.NotificationType, related *model.RelatedEntity) (uuid.UUID, error) {
	n, err := s.NotifyTx(s.db, userID, message, ntype, related)
	if err != nil {
		return uuid.Nil, err
	}
	s.Push(n)
	return n.ID, nil
}

// NotifyTx inserts a notification inside the caller's transaction. The caller
// is responsible for pushing the event after its transaction commits, so a
// rolled-back workflow never announces itself.
func (s *notificationService) NotifyTx(tx *gorm.DB, userID uuid.UUID, message string, ntype model.NotificationType, related *model.RelatedEntity) (*model.Notification, error) {
	var user model.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	n := &model.Notification{
		UserID:  userID,
		Message: message,
		Type:    ntype,
	}
	if related != nil {
		n.RelatedEntityType = related.Type
		id := related.ID
		n.RelatedEntityID = &id
	}

	if err := s.notifRepo.Create(tx, n); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return n, nil
}

// Push delivers a committed notification over the websocket hub.
func (s *notificationService) Push(n *model.Notification) {
	payload := map[string]interface{}{
		"type":         "notification",
		"notification": n,
	}
	msg, err := json.Marshal(payload)
	if err != nil {
		s.log.Warn("failed to encode notification push", zap.Error(err))
		return
	}
	s.wsHub.SendToUser(n.UserID, msg)
}

func (s *notificationService) ListRecent(userID uuid.UUID, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	if limit > MaxNotificationLimit {
		limit = MaxNotificationLimit
	}

	notifications, err := s.notifRepo.FindRecent(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return notifications, nil
}

func (s *notificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	count, err := s.notifRepo.CountUnread(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}
	return count, nil
}

// MarkRead flips the read flag and returns the related entity reference so
// the caller can redirect to it. Marking an already-read notification is a
// no-op returning the same reference. A notification that does not exist or
// belongs to another user yields nil without mutating anything.
func (s *notificationService) MarkRead(notificationID, userID uuid.UUID) (*model.RelatedEntity, error) {
	n, err := s.notifRepo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
	}

	if n.UserID != userID {
		return nil, nil
	}

	if !n.IsRead {
		if err := s.notifRepo.MarkRead(n.ID); err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrBackend, err)
		}
	}

	return n.Related(), nil
}
