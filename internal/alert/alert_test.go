package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"sol-advisor/internal/dto"
	"sol-advisor/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	signalType dto.SignalType
	messages   []string
	err        error
}

func (n *recordingNotifier) Notify(_ context.Context, signalType dto.SignalType, message string) error {
	n.signalType = signalType
	n.messages = append(n.messages, message)
	return n.err
}

func testResult(signalType dto.SignalType, confidence float64) *dto.AnalysisResult {
	return &dto.AnalysisResult{
		Symbol:       "SOL-USD",
		GeneratedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		CurrentPrice: 150,
		Signal: &dto.Signal{
			Type:              signalType,
			Confidence:        confidence,
			CurrentPrice:      150,
			ExpectedUpsidePct: 5.5,
		},
		Risk: dto.RiskLevels{StopLoss: 142.5, TakeProfit: 165},
	}
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func TestDispatcher_SendFansOut(t *testing.T) {
	first := &recordingNotifier{}
	second := &recordingNotifier{}
	dispatcher := NewDispatcher(newTestLogger(t), first, second)

	dispatcher.Send(context.Background(), testResult(dto.SignalBuy, 90))

	require.Len(t, first.messages, 1)
	require.Len(t, second.messages, 1)
	assert.Equal(t, first.messages[0], second.messages[0])
	assert.Equal(t, dto.SignalBuy, first.signalType)

	entries := dispatcher.Log()
	require.Len(t, entries, 1)
	assert.Equal(t, dto.SignalBuy, entries[0].Type)
	assert.Equal(t, 150.0, entries[0].Price)
	assert.Equal(t, 90.0, entries[0].Confidence)
}

func TestDispatcher_FailedChannelDoesNotBlockOthers(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("channel down")}
	working := &recordingNotifier{}
	dispatcher := NewDispatcher(newTestLogger(t), failing, working)

	dispatcher.Send(context.Background(), testResult(dto.SignalSell, 80))

	require.Len(t, working.messages, 1)
	// The alert still lands in the log despite the failed channel.
	assert.Len(t, dispatcher.Log(), 1)
}

func TestDispatcher_SkipsNilSignal(t *testing.T) {
	notifier := &recordingNotifier{}
	dispatcher := NewDispatcher(newTestLogger(t), notifier)

	dispatcher.Send(context.Background(), &dto.AnalysisResult{})

	assert.Empty(t, notifier.messages)
	assert.Empty(t, dispatcher.Log())
}

func TestFormatAlert(t *testing.T) {
	tests := []struct {
		name       string
		signalType dto.SignalType
		contains   []string
	}{
		{
			name:       "buy",
			signalType: dto.SignalBuy,
			contains: []string{
				"🔥 BUY SIGNAL TRIGGERED 🔥",
				"Current Price: $150.00",
				"Expected Upside: +5.50% over 7-30 days",
				"Confidence Level: 90%",
				"Stop Loss: $142.50",
				"Take Profit: $165.00",
				"NOT financial advice",
			},
		},
		{
			name:       "sell",
			signalType: dto.SignalSell,
			contains: []string{
				"⚠️ SELL SIGNAL TRIGGERED ⚠️",
				"Downside Risk: 5.50%",
				"Consider closing positions",
			},
		},
		{
			name:       "hold",
			signalType: dto.SignalHold,
			contains: []string{
				"📊 HOLD SIGNAL 📊",
				"Hold current position",
				"Wait for clearer setup",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := FormatAlert(testResult(tt.signalType, 90))
			assert.Contains(t, message, "Timestamp: 2024-06-01 12:00:00")
			for _, want := range tt.contains {
				assert.Contains(t, message, want)
			}
		})
	}
}
