package services

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/wyllersu/ai-fleet-mate/config"
	"github.com/wyllersu/ai-fleet-mate/models"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendAlertDigest emails the fleet manager the list of maintenances that
// are currently due.
func (es *EmailService) SendAlertDigest(recipient string, alerts []models.Alert) error {
	if recipient == "" {
		return fmt.Errorf("no alert recipient configured")
	}
	if len(alerts) == 0 {
		return nil
	}

	var lines []string
	for _, alert := range alerts {
		lines = append(lines, fmt.Sprintf(
			"<li><strong>%s - %s</strong>: %s<br/>%s</li>",
			alert.VehicleNumber, alert.LicensePlate, alert.ServiceType, alert.Message(),
		))
	}

	body := fmt.Sprintf(`
		<h2>Manutenções próximas</h2>
		<p>As seguintes manutenções agendadas estão próximas do vencimento:</p>
		<ul>%s</ul>
		<p>— %s</p>
	`, strings.Join(lines, "\n"), es.config.FromName)

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", fmt.Sprintf("⚠️ %d manutenção(ões) próxima(s) do vencimento", len(alerts)))
	m.SetBody("text/html", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert digest: %w", err)
	}

	fmt.Printf("📧 Alert digest sent to %s (%d alerts)\n", recipient, len(alerts))
	return nil
}
