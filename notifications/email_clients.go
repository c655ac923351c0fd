// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"strconv"

	"inkwell-server/commons"

	"gopkg.in/gomail.v2"
)

// MockSender logs the message instead of delivering it. Used in development
// and as a test double.
type MockSender struct{}

func (MockSender) Send(_ context.Context, data NotificationData) error {
	commons.Logger.Info("=== MOCK EMAIL NOTIFICATION ===")
	commons.Logger.Infof("To: %s", data.To)
	if data.ToName != nil {
		commons.Logger.Infof("To Name: %s", *data.ToName)
	}
	commons.Logger.Infof("Subject: %s", data.Subject)
	commons.Logger.Infof("Body: %s", data.Body)
	commons.Logger.Info("=== EMAIL MOCK COMPLETE ===")
	return nil
}

// SMTPSender delivers mail through a plain SMTP relay configured from the
// environment.
type SMTPSender struct{}

func (SMTPSender) Send(ctx context.Context, data NotificationData) error {
	commons.Logger.Debug("Sending email via SMTP")

	smtpHost := commons.GetEnv("SMTP_HOST")
	if smtpHost == "" {
		return fmt.Errorf("SMTP_HOST environment variable is not set")
	}

	smtpPort := commons.GetEnv("SMTP_PORT")
	if smtpPort == "" {
		return fmt.Errorf("SMTP_PORT environment variable is not set")
	}

	username := commons.GetEnv("SMTP_USERNAME")
	if username == "" {
		return fmt.Errorf("SMTP_USERNAME environment variable is not set")
	}

	password := commons.GetEnv("SMTP_PASSWORD")
	if password == "" {
		return fmt.Errorf("SMTP_PASSWORD environment variable is not set")
	}

	fromEmail := commons.GetEnv("SMTP_FROM_EMAIL")
	if fromEmail == "" {
		return fmt.Errorf("SMTP_FROM_EMAIL environment variable is not set")
	}

	fromName := commons.GetEnv("SMTP_FROM_NAME")
	if fromName == "" {
		fromName = "Inkwell"
	}

	if data.To == "" {
		return fmt.Errorf("'to' field is required")
	}

	if data.Subject == "" {
		return fmt.Errorf("'subject' field is required")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP port: %s", smtpPort)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", message.FormatAddress(fromEmail, fromName))
	if data.ToName != nil {
		message.SetHeader("To", message.FormatAddress(data.To, *data.ToName))
	} else {
		message.SetHeader("To", data.To)
	}
	message.SetHeader("Subject", data.Subject)
	message.SetBody("text/plain", data.Body)

	dialer := gomail.NewDialer(smtpHost, port, username, password)
	dialer.TLSConfig = &tls.Config{
		ServerName:         smtpHost,
		InsecureSkipVerify: false,
	}

	// gomail has no context support; bound the dial-and-send with the
	// caller's deadline instead of blocking the dispatcher.
	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(message)
	}()

	select {
	case err := <-done:
		if err != nil {
			commons.Logger.Error("Failed to send email via SMTP:", err)
			return fmt.Errorf("failed to send email via SMTP: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("SMTP send timed out: %w", ctx.Err())
	}

	commons.Logger.Info("Email sent successfully via SMTP")
	return nil
}
