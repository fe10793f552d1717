package utils

import (
	"fmt"
	"log"

	"github.com/wneessen/go-mail"
)

// Mailer sends storefront notifications. The webhook handler treats every
// send as best-effort.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, username: username, password: password, from: from}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending email to", to)
	return client.DialAndSend(msg)
}

// OrderConfirmationSubject returns the email subject for a locale.
func OrderConfirmationSubject(locale string) string {
	if locale == "es" {
		return "Confirmación de pedido - Digital Store"
	}
	return "Order Confirmation - Digital Store"
}

// OrderConfirmationHTML builds the payment confirmation body in the
// customer's language.
func OrderConfirmationHTML(sessionID string, total float64, locale string) string {
	if locale == "es" {
		return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="es">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h1 style="color: #333;">¡Gracias por tu compra!</h1>
		<p>Tu pedido ha sido confirmado y está siendo procesado.</p>
		<p>Referencia del pedido: %s</p>
		<p>Total: $%.2f</p>
		<p>Te enviaremos otro correo cuando tu pedido sea enviado.</p>
		<p style="margin-top: 30px; color: #555;">
			Saludos,<br>
			<strong>El equipo de Digital Store</strong>
		</p>
	</div>
</body>
</html>`, sessionID, total)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h1 style="color: #333;">Thank you for your purchase!</h1>
		<p>Your order has been confirmed and is being processed.</p>
		<p>Order reference: %s</p>
		<p>Total: $%.2f</p>
		<p>We'll send you another email when your order ships.</p>
		<p style="margin-top: 30px; color: #555;">
			Best regards,<br>
			<strong>The Digital Store team</strong>
		</p>
	</div>
</body>
</html>`, sessionID, total)
}
