package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/autonear/autonear-backend/pkg/logger"
	"github.com/autonear/autonear-backend/pkg/util"
)

// ResetNotifier delivers a reset token to the account owner.
type ResetNotifier interface {
	SendPasswordReset(email, token string, expiresAt time.Time) error
}

// VerificationNotifier delivers a one-time email verification code.
type VerificationNotifier interface {
	SendVerificationCode(email, code string, expiresAt time.Time) error
}

// Notifier is everything the account flows send to a user's mailbox.
type Notifier interface {
	ResetNotifier
	VerificationNotifier
}

// MailNotifier renders account mail and hands it to a Mailer.
type MailNotifier struct {
	mailer      util.Mailer
	frontendURL string
}

func NewMailNotifier(mailer util.Mailer, frontendURL string) *MailNotifier {
	return &MailNotifier{
		mailer:      mailer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

func (n *MailNotifier) SendPasswordReset(email, token string, expiresAt time.Time) error {
	link := n.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
	body := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">
<h2>Reset your AutoNear password</h2>
<p>Someone asked to reset the password for this address. If it was you, open the link below.</p>
<p><a href="%s">Reset password</a></p>
<p>The link expires at %s. If you did not ask for this, ignore this message.</p>
</body></html>`, link, expiresAt.UTC().Format(time.RFC1123))

	if err := n.mailer.Send(util.Mail{To: email, Subject: "Reset your AutoNear password", HTMLBody: body}); err != nil {
		logger.Error("Failed to send password reset email", err, logger.Fields{"email": email})
		return err
	}
	logger.Info("Password reset email sent", logger.Fields{"email": email})
	return nil
}

func (n *MailNotifier) SendVerificationCode(email, code string, expiresAt time.Time) error {
	body := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">
<h2>Confirm your email</h2>
<p>Your AutoNear verification code is:</p>
<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">%s</p>
<p>The code expires at %s.</p>
</body></html>`, code, expiresAt.UTC().Format(time.RFC1123))

	if err := n.mailer.Send(util.Mail{To: email, Subject: "Your AutoNear verification code", HTMLBody: body}); err != nil {
		logger.Error("Failed to send verification email", err, logger.Fields{"email": email})
		return err
	}
	logger.Info("Verification email sent", logger.Fields{"email": email})
	return nil
}

// LogNotifier is for local development without an SMTP relay. It records
// that mail would have been sent but never the secret itself, so the
// flows it backs cannot be completed from the log.
type LogNotifier struct{}

func (LogNotifier) SendPasswordReset(email, _ string, expiresAt time.Time) error {
	logger.Warn("SMTP not configured, password reset email not sent", logger.Fields{
		"email":      email,
		"expires_at": expiresAt,
	})
	return nil
}

func (LogNotifier) SendVerificationCode(email, _ string, expiresAt time.Time) error {
	logger.Warn("SMTP not configured, verification email not sent", logger.Fields{
		"email":      email,
		"expires_at": expiresAt,
	})
	return nil
}
