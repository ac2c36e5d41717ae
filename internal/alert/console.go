package alert

import (
	"context"
	"fmt"

	"sol-advisor/internal/dto"
)

// ConsoleNotifier prints alerts to stdout.
type ConsoleNotifier struct{}

func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (n *ConsoleNotifier) Notify(_ context.Context, signalType dto.SignalType, message string) error {
	fmt.Printf("\n%s ALERT\n%s\n", signalType, message)
	return nil
}
