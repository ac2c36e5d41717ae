package alert

import (
	"context"
	"time"

	"sol-advisor/internal/dto"
	"sol-advisor/pkg/logger"
)

// Notifier delivers a formatted signal alert through one channel.
type Notifier interface {
	Notify(ctx context.Context, signalType dto.SignalType, message string) error
}

// LogEntry records one dispatched alert.
type LogEntry struct {
	Timestamp  time.Time      `json:"timestamp"`
	Type       dto.SignalType `json:"type"`
	Price      float64        `json:"price"`
	Confidence float64        `json:"confidence"`
	Message    string         `json:"message"`
}

// Dispatcher fans a signal alert out to all configured notifiers and keeps an
// in-memory log of everything it sent.
type Dispatcher struct {
	log       *logger.Logger
	notifiers []Notifier
	entries   []LogEntry
}

func NewDispatcher(log *logger.Logger, notifiers ...Notifier) *Dispatcher {
	return &Dispatcher{
		log:       log,
		notifiers: notifiers,
	}
}

// Send formats the alert for the signal and delivers it through every
// channel. Delivery failures are logged, not propagated; an alert that missed
// one channel should still reach the others.
func (d *Dispatcher) Send(ctx context.Context, result *dto.AnalysisResult) {
	if result.Signal == nil {
		return
	}

	message := FormatAlert(result)

	for _, notifier := range d.notifiers {
		if err := notifier.Notify(ctx, result.Signal.Type, message); err != nil {
			d.log.WarnContext(ctx, "Failed to deliver alert", logger.ErrorField(err))
		}
	}

	d.entries = append(d.entries, LogEntry{
		Timestamp:  time.Now(),
		Type:       result.Signal.Type,
		Price:      result.Signal.CurrentPrice,
		Confidence: result.Signal.Confidence,
		Message:    message,
	})
}

// Log returns all alerts sent by this dispatcher instance.
func (d *Dispatcher) Log() []LogEntry {
	return d.entries
}
