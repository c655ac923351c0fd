// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubSender struct {
	ch  chan NotificationData
	err error
}

func (s *stubSender) Send(_ context.Context, data NotificationData) error {
	if s.err != nil {
		return s.err
	}
	s.ch <- data
	return nil
}

func TestDispatchDelivers(t *testing.T) {
	sender := &stubSender{ch: make(chan NotificationData, 1)}

	Dispatch(sender, NotificationData{
		To:      "user@example.com",
		Subject: "hello",
		Body:    "world",
	})

	select {
	case data := <-sender.ch:
		if data.To != "user@example.com" || data.Subject != "hello" {
			t.Errorf("Unexpected notification payload: %+v", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch never reached the sender")
	}
}

func TestDispatchSwallowsSendErrors(t *testing.T) {
	// A failing sender must not panic or block the caller.
	sender := &stubSender{err: errors.New("relay down")}
	Dispatch(sender, NotificationData{To: "user@example.com"})
	time.Sleep(50 * time.Millisecond)
}

func TestSenderFromEnv(t *testing.T) {
	t.Setenv("MOCK_EMAIL_NOTIFICATIONS", "true")
	if _, ok := SenderFromEnv().(MockSender); !ok {
		t.Error("MOCK_EMAIL_NOTIFICATIONS=true should select the mock sender")
	}

	t.Setenv("MOCK_EMAIL_NOTIFICATIONS", "false")
	t.Setenv("EMAIL_PROVIDER", "mock")
	if _, ok := SenderFromEnv().(MockSender); !ok {
		t.Error("EMAIL_PROVIDER=mock should select the mock sender")
	}

	t.Setenv("EMAIL_PROVIDER", "smtp")
	if _, ok := SenderFromEnv().(SMTPSender); !ok {
		t.Error("EMAIL_PROVIDER=smtp should select the SMTP sender")
	}

	t.Setenv("EMAIL_PROVIDER", "amqp")
	if _, ok := SenderFromEnv().(*AMQPSender); !ok {
		t.Error("EMAIL_PROVIDER=amqp should select the AMQP sender")
	}
}
