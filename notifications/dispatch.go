// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"context"
	"strings"
	"time"

	"inkwell-server/commons"
)

const dispatchTimeout = 10 * time.Second

// SenderFromEnv picks the configured email provider. MOCK_EMAIL_NOTIFICATIONS
// short-circuits everything to the mock sender.
func SenderFromEnv() Sender {
	if commons.GetEnv("MOCK_EMAIL_NOTIFICATIONS") == "true" {
		commons.Logger.Debug("Mock email notifications enabled, using mock provider")
		return MockSender{}
	}
	switch Provider(strings.ToLower(commons.GetEnv("EMAIL_PROVIDER", "smtp"))) {
	case AMQP:
		return NewAMQPSender()
	case Mock:
		return MockSender{}
	default:
		return SMTPSender{}
	}
}

// Dispatch delivers the message asynchronously with a bounded timeout. A
// failed delivery is logged, never propagated: callers persist their state
// before dispatching and do not roll it back on a send failure.
func Dispatch(sender Sender, data NotificationData) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := sender.Send(ctx, data); err != nil {
			commons.Logger.Errorf("Failed to dispatch notification:\n%v", err)
			return
		}
		commons.Logger.Infof("Notification dispatched successfully to %s", data.To)
	}()
}
