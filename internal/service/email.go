package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	enabled   bool
}

func NewEmailService(apiKey, fromEmail, fromName string, enabled bool) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   enabled,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	if !s.enabled {
		logger.Debug("email delivery disabled, skipping", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBanNotice(ctx context.Context, email, name, reason string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour account has been banned from the platform.\n\nReason: %s\n\nIf you believe this is a mistake, contact support.\n\nThe WorkLens Team", name, reason)
	return s.send(email, name, "Your account has been banned", body)
}

func (s *emailService) SendUnbanNotice(ctx context.Context, email, name string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour account ban has been lifted and you can sign in again.\n\nThe WorkLens Team", name)
	return s.send(email, name, "Your account has been restored", body)
}

func (s *emailService) SendReportResolvedNotice(ctx context.Context, email, name string, report *domain.Report) error {
	body := fmt.Sprintf("Hello %s,\n\nYour report #%d regarding %s content has been reviewed and marked %s.\n\nThank you for helping keep the platform safe.\n\nThe WorkLens Team",
		name, report.ID, report.EntityKind, report.Status)
	return s.send(email, name, fmt.Sprintf("Update on your report #%d", report.ID), body)
}

func (s *emailService) SendApplicationStatusNotice(ctx context.Context, email, name, jobTitle string, status domain.JobApplicationStatus) error {
	body := fmt.Sprintf("Hello %s,\n\nYour application for %q is now %s.\n\nThe WorkLens Team", name, jobTitle, status)
	return s.send(email, name, fmt.Sprintf("Application update: %s", jobTitle), body)
}

func (s *emailService) SendPendingReportDigest(ctx context.Context, email, name string, pendingCount int) error {
	body := fmt.Sprintf("Hello %s,\n\nThere are %d reports that have been waiting for review for more than a day.\n\nThe WorkLens Team", name, pendingCount)
	return s.send(email, name, fmt.Sprintf("%d reports awaiting review", pendingCount), body)
}
