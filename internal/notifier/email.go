package notifier

import (
	"fieldops-backend/config"

	"gopkg.in/gomail.v2"
)

// EmailNotifier meneruskan notifikasi ke email pengawas via SMTP.
// Sifatnya kanal samping: pemanggil hanya mencatat error-nya ke log.
type EmailNotifier struct {
	dialer   *gomail.Dialer
	pengirim string
}

// NewDariEnv membaca konfigurasi SMTP dari environment. Return nil jika
// SMTP_HOST tidak diset, artinya fitur email dimatikan.
func NewDariEnv() *EmailNotifier {
	host := config.GetEnv("SMTP_HOST", "")
	if host == "" {
		return nil
	}

	port := config.GetEnvAsInt("SMTP_PORT", 587)
	user := config.GetEnv("SMTP_USER", "")
	pass := config.GetEnv("SMTP_PASS", "")
	pengirim := config.GetEnv("SMTP_FROM", user)

	return &EmailNotifier{
		dialer:   gomail.NewDialer(host, port, user, pass),
		pengirim: pengirim,
	}
}

func (n *EmailNotifier) Kirim(tujuan string, subjek string, isi string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.pengirim)
	m.SetHeader("To", tujuan)
	m.SetHeader("Subject", subjek)
	m.SetBody("text/plain", isi)

	return n.dialer.DialAndSend(m)
}
