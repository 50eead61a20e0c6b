// Package notify shows the visible part of an alarm.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// Title is the heading of every alarm notification.
const Title = "Alarm"

// Notifier presents a notification for a fired alarm.
type Notifier interface {
	Notify(ctx context.Context, label string) error
}

// Message renders the notification body for label.
func Message(label string) string {
	return "Alarm time: " + label
}

// Desktop shows a native desktop notification.
type Desktop struct {
	// send delivers the notification; beeep.Notify unless replaced in tests.
	send func(title, message string, icon any) error
}

// NewDesktop creates a desktop notifier backed by the platform notification service.
func NewDesktop() *Desktop {
	return &Desktop{send: beeep.Notify}
}

// Notify shows the notification.
func (d *Desktop) Notify(_ context.Context, label string) error {
	if err := d.send(Title, Message(label), ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}

	return nil
}

// Log writes the notification to the structured log.
type Log struct{}

// Notify logs the alarm.
func (Log) Notify(ctx context.Context, label string) error {
	logger.InfoKV(ctx, Message(label), "label", label)

	return nil
}

// Multi fans a notification out to several notifiers. Every notifier is
// tried even if an earlier one fails.
type Multi []Notifier

// Notify calls every notifier and joins their errors.
func (m Multi) Notify(ctx context.Context, label string) error {
	var errs []error

	for _, n := range m {
		if err := n.Notify(ctx, label); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
