package sms

import (
	"context"
	"io"
	"log"
)

// Sender delivers one-time verification codes to phones. Delivery is
// best-effort; registration does not fail when the carrier does.
type Sender interface {
	Send(ctx context.Context, countryCode, phone, message string) error
}

// LogSender writes messages to the log instead of a carrier. Used in
// development and tests.
type LogSender struct {
	logger *log.Logger
}

func NewLogSender(logger *log.Logger) *LogSender {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, countryCode, phone, message string) error {
	s.logger.Printf("sms to %s%s: %s", countryCode, phone, message)
	return nil
}
