package service

import (
	"context"
	"fmt"
	"strings"

	"stroymonitor/internal/entity"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender delivers verification codes through the Resend API.
// NewResendEmailSender returns nil when the API key or sender address is
// missing, which the verification service treats as a delivery failure.
type ResendEmailSender struct {
	client  *resend.Client
	from    string
	appName string
}

func NewResendEmailSender(apiKey, from, appName string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return nil
	}
	if strings.TrimSpace(appName) == "" {
		appName = "StroyMonitor"
	}
	return &ResendEmailSender{
		client:  resend.NewClient(apiKey),
		from:    from,
		appName: appName,
	}
}

func (s *ResendEmailSender) SendVerificationCode(ctx context.Context, email, code string, purpose entity.CodePurpose) error {
	subject := "Your login verification code"
	if purpose == entity.PurposePasswordReset {
		subject = "Your password reset code"
	}

	text := fmt.Sprintf(
		"Your verification code: %s\n\nThe code is valid for 10 minutes.\nIf you did not request this code, ignore this message.\n\n--\n%s",
		code, s.appName,
	)
	html := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
<h2>%s</h2>
<div style="background: #f3f4f6; padding: 20px; border-radius: 8px;">
<p style="margin: 0; font-size: 14px; color: #6b7280;">Your verification code:</p>
<p style="font-size: 32px; font-weight: bold; letter-spacing: 8px; margin: 10px 0;">%s</p>
<p style="margin: 0; font-size: 12px; color: #9ca3af;">The code is valid for 10 minutes</p>
</div>
<p style="font-size: 14px; color: #6b7280;">If you did not request this code, ignore this message.</p>
<p style="font-size: 12px; color: #9ca3af;"><strong>%s</strong></p>
</div>`,
		subject, code, s.appName,
	)

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email},
		Subject: subject,
		Html:    html,
		Text:    text,
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	return err
}
