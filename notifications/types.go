// SPDX-License-Identifier: GPL-3.0-only

package notifications

import "context"

type NotificationData struct {
	To      string  `json:"to"`
	ToName  *string `json:"to_name,omitempty"`
	Subject string  `json:"subject"`
	Body    string  `json:"body"`
}

// Sender is the email collaborator capability. Implementations deliver a
// single message; they may fail, and callers decide what a failure means.
type Sender interface {
	Send(ctx context.Context, data NotificationData) error
}

type Provider string

const (
	SMTP Provider = "smtp"
	AMQP Provider = "amqp"
	Mock Provider = "mock"
)
