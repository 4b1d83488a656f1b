package services

import (
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"velora_back_end/internal/config"
)

// Mailer envoie les emails transactionnels. Sans SMTP_HOST configuré,
// l'envoi est simplement ignoré.
type Mailer struct {
	Cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{Cfg: cfg}
}

func (m *Mailer) SendWelcomeEmail(to, name string) error {
	if m == nil || m.Cfg.Host == "" {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.Cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Bienvenue sur Velora 🎉")
	msg.SetBodyString(mail.TypeTextHTML, welcomeHTML(name))

	client, err := mail.NewClient(m.Cfg.Host,
		mail.WithPort(m.Cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.Cfg.Username),
		mail.WithPassword(m.Cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de bienvenue à", to)
	return client.DialAndSend(msg)
}

func welcomeHTML(name string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Bienvenue %s !</h2>
		<p>Votre compte Velora a bien été créé.</p>
		<p>Bonne visite sur la boutique 🛍️</p>
	</div>
</body>
</html>`, name)
}
