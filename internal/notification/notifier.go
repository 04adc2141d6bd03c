// Package notification delivers messages about borrow records to users.
package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
)

const (
	TypeOverdueReminder = "borrow.overdue"
)

const (
	ChannelLog   = "log"
	ChannelEmail = "email"
)

// Message is one notification addressed to a user.
type Message struct {
	Type        string
	UserID      int64
	BorrowID    int64
	EquipmentID int64
	Title       string
	Body        string
	DueDate     *time.Time
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// LogNotifier writes each message to the structured log. It is the default
// channel until an outbound provider is configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.WithService("notification")}
}

func (n *LogNotifier) Notify(ctx context.Context, msg Message) error {
	args := []any{
		"channel", ChannelLog,
		"type", msg.Type,
		"user_id", msg.UserID,
		"borrow_id", msg.BorrowID,
		"equipment_id", msg.EquipmentID,
		"title", msg.Title,
	}
	if msg.DueDate != nil {
		args = append(args, "due_date", msg.DueDate.Format(time.RFC3339))
	}
	n.log.InfoContext(ctx, msg.Body, args...)
	return nil
}
