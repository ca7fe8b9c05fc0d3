// Package services отправляет участникам письма о предстоящих списаниях.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/membership-engine/internal/lib/metrics"
	"github.com/magabrotheeeer/membership-engine/internal/lib/sl"
	"github.com/magabrotheeeer/membership-engine/internal/lib/smtp"
	"github.com/magabrotheeeer/membership-engine/internal/models"
	"github.com/magabrotheeeer/membership-engine/internal/rabbitmq"
)

// SenderService отправляет письма-напоминания о списаниях через SMTP.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendDueReminder разбирает напоминание из очереди и отправляет письмо участнику.
// Сигнатура совпадает с rabbitmq.Handler.
func (s *SenderService) SendDueReminder(ctx context.Context, body []byte) error {
	const op = "services.sender.SendDueReminder"

	var message models.DueReminder
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: error unmarshalling message: %w: %w", op, rabbitmq.ErrPermanent, err)
	}
	if message.Email == "" {
		// письмо без адреса не доставить, повторять бессмысленно
		s.log.Warn("reminder without email dropped", slog.Int64("contract_id", message.ContractID))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	subject := "Напоминание о предстоящем списании"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\n%s по договору №%d будет списано %s EUR%s.\n\nЕсли реквизиты изменились, пожалуйста, сообщите нам заранее.",
		message.MemberName,
		message.DueDate.Format("02.01.2006"),
		message.ContractID,
		formatCents(message.AmountCents),
		proratedNote(message.Prorated),
	)

	err := s.sendEmail([]string{message.Email}, subject, bodyText)
	metrics.EmailsSent.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("due reminder sent",
		slog.Int64("contract_id", message.ContractID),
		sl.Date("due_date", message.DueDate),
		sl.Cents("amount", message.AmountCents),
	)
	return nil
}

func proratedNote(prorated bool) string {
	if prorated {
		return " (пропорционально до даты расторжения)"
	}
	return ""
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.From()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}
	return nil
}
