package services

import (
	"context"
	"fmt"

	"github.com/aibrid/zipo-server/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

func (s *emailService) SendEventInvitation(_ context.Context, data *domain.EventInvitationEmailData) error {
	subject, body, err := s.renderer.Render("event_invitation", data)
	if err != nil {
		return fmt.Errorf("render invitation email: %w", err)
	}
	return s.mailer.Send(data.Emails, subject, body)
}

func (s *emailService) SendVerificationCode(_ context.Context, data *domain.VerificationCodeEmailData) error {
	subject, body, err := s.renderer.Render("verification_code", data)
	if err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}
	return s.mailer.Send([]string{data.Email}, subject, body)
}

func (s *emailService) SendResetPasswordCode(_ context.Context, data *domain.VerificationCodeEmailData) error {
	subject, body, err := s.renderer.Render("reset_password", data)
	if err != nil {
		return fmt.Errorf("render reset password email: %w", err)
	}
	return s.mailer.Send([]string{data.Email}, subject, body)
}

func (s *emailService) SendWelcomeMessage(_ context.Context, data *domain.WelcomeEmailData) error {
	subject, body, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}
	return s.mailer.Send([]string{data.Email}, subject, body)
}
