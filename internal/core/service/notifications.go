package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
)

// notificationLogCap bounds how many recent toasts are retained.
const notificationLogCap = 50

// NotificationLog is the console's toast channel: an append-only ring of
// recent notifications, mirrored to the structured log. Safe for concurrent
// use.
type NotificationLog struct {
	mu      sync.Mutex
	entries []domain.Notification
	log     zerolog.Logger
}

func NewNotificationLog(log zerolog.Logger) *NotificationLog {
	return &NotificationLog{log: log}
}

// Success records a success toast.
func (n *NotificationLog) Success(message string) {
	n.log.Info().Str("toast", "success").Msg(message)
	n.append(domain.NotifySuccess, message)
}

// Error records an error toast.
func (n *NotificationLog) Error(message string) {
	n.log.Warn().Str("toast", "error").Msg(message)
	n.append(domain.NotifyError, message)
}

// Recent returns the retained notifications, newest last.
func (n *NotificationLog) Recent() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification(nil), n.entries...)
}

func (n *NotificationLog) append(level domain.NotificationLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, domain.Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		At:      time.Now().UTC(),
	})
	if len(n.entries) > notificationLogCap {
		n.entries = n.entries[len(n.entries)-notificationLogCap:]
	}
}
