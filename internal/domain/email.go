package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to []string, subject, html string) error
}

// EmailTemplateRenderer renders email content from a named template.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody string, err error)
}

// EventInvitationEmailData holds data for the event invitation email.
type EventInvitationEmailData struct {
	Emails     []string
	OwnerName  string
	EventTitle string
	EventDate  string
}

// VerificationCodeEmailData holds data for registration and password
// reset code emails.
type VerificationCodeEmailData struct {
	Email string
	Name  string
	Code  string
}

// WelcomeEmailData holds data for the post-registration welcome email.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// EmailService defines the contract for sending domain-level emails.
/// Callers decide whether a failure is fatal: invitation mails are a
// best-effort side channel, registration mails are not.
type EmailService interface {
	SendEventInvitation(ctx context.Context, data *EventInvitationEmailData) error
	SendVerificationCode(ctx context.Context, data *VerificationCodeEmailData) error
	SendResetPasswordCode(ctx context.Context, data *VerificationCodeEmailData) error
	SendWelcomeMessage(ctx context.Context, data *WelcomeEmailData) error
}
