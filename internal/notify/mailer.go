package notify

import (
	"errors"
	"fmt"

	"cerveceria-pos/internal/config"
	"cerveceria-pos/internal/domain"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var (
	ErrNoRecipient = errors.New("invoice has no customer email to deliver to")
)

// Mailer delivers a rendered invoice to the customer. Delivery is a
// best-effort side effect: a failure is reported to the caller but never
// rolls back the invoice or the cart.
type Mailer interface {
	SendInvoice(invoice *domain.Invoice, htmlBody string) error
}

type smtpMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewMailer creates an SMTP-backed Mailer
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) Mailer {
	return &smtpMailer{
		cfg:    cfg,
		logger: logger,
	}
}

// SendInvoice mails the rendered invoice to the customer on the invoice
// snapshot.
func (m *smtpMailer) SendInvoice(invoice *domain.Invoice, htmlBody string) error {
	if invoice.Customer == nil || invoice.Customer.Email == "" {
		return ErrNoRecipient
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", invoice.Customer.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Recibo de su pedido No %s - Cerveceria Artesanal", invoice.Number))
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	dialer.SSL = m.cfg.SSL

	if err := dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send invoice mail",
			zap.String("invoice_number", invoice.Number),
			zap.String("to", invoice.Customer.Email),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send invoice mail: %w", err)
	}

	m.logger.Info("Invoice mail sent",
		zap.String("invoice_number", invoice.Number),
		zap.String("to", invoice.Customer.Email),
	)

	return nil
}
