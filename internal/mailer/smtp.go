package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dropDatabas3/mailerctl/internal/observability/logger"
	mail "github.com/go-mail/mail"
)

const defaultSMTPTimeout = 10 * time.Second

// SMTPTransport implementa Transport usando SMTP (go-mail).
type SMTPTransport struct {
	Host               string
	Port               int
	User               string
	Pass               string
	SSL                bool // TLS implícito (smtps / 465)
	StartTLSPolicy     mail.StartTLSPolicy
	LocalName          string
	InsecureSkipVerify bool // verify_peer=0, solo dev
	Timeout            time.Duration

	scheme string
	dial   func(*mail.Dialer) (mail.SendCloser, error)
}

// NewSMTPTransport crea un SMTPTransport desde un DSN smtp:// o smtps://.
//
// Sin puerto explícito se sigue la regla del transporte SMTP de Symfony:
// smtps usa 465; smtp usa 25 contra localhost y 465 (TLS implícito) contra
// cualquier otro host.
func NewSMTPTransport(d DSN) *SMTPTransport {
	port := d.PortOr(0)

	ssl := d.Scheme == "smtps"
	if !ssl {
		ssl = port == 465 || (port == 0 && d.Host != defaultSMTPHost)
	}
	if port == 0 {
		if ssl {
			port = 465
		} else {
			port = 25
		}
	}

	t := &SMTPTransport{
		Host:      d.Host,
		Port:      port,
		User:      d.Username(),
		Pass:      d.Secret(),
		SSL:       ssl,
		LocalName: d.Option("local_domain", ""),
		Timeout:   defaultSMTPTimeout,
		scheme:    d.Scheme,
	}

	if !optionBool(d.Option("verify_peer", "1"), true) {
		t.InsecureSkipVerify = true
	}
	switch {
	case optionBool(d.Option("require_tls", "0"), false):
		t.StartTLSPolicy = mail.MandatoryStartTLS
	case !optionBool(d.Option("auto_tls", "1"), true):
		t.StartTLSPolicy = mail.NoStartTLS
	default:
		t.StartTLSPolicy = mail.OpportunisticStartTLS
	}

	return t
}

func (s *SMTPTransport) Name() string {
	if s.scheme == "" {
		return "smtp"
	}
	return s.scheme
}

func (s *SMTPTransport) String() string {
	return fmt.Sprintf("%s://%s:%d", s.Name(), hostLiteral(s.Host), s.Port)
}

// Send envía el email. La conexión se abre y se cierra en cada llamada.
func (s *SMTPTransport) Send(ctx context.Context, e Email) error {
	log := logger.From(ctx).With(
		logger.Component("SMTPTransport"),
		logger.Host(s.Host),
		logger.Port(s.Port),
	)

	if err := ctx.Err(); err != nil {
		return transportErr(s.Name(), err)
	}

	log.Debug("dialing smtp server",
		logger.Bool("ssl", s.SSL),
		logger.Bool("insecure_skip_verify", s.InsecureSkipVerify),
	)

	dial := s.dial
	if dial == nil {
		dial = (*mail.Dialer).Dial
	}
	sc, err := dial(s.dialer())
	if err != nil {
		log.Error("smtp dial failed", logger.Err(err))
		return transportErr(s.Name(), fmt.Errorf("dial %s:%d: %w", hostLiteral(s.Host), s.Port, err))
	}

	if err := mail.Send(sc, e.message()); err != nil {
		_ = sc.Close()
		log.Error("smtp send failed", logger.Err(err))
		return transportErr(s.Name(), err)
	}
	if err := sc.Close(); err != nil {
		log.Error("smtp quit failed", logger.Err(err))
		return transportErr(s.Name(), err)
	}

	log.Debug("email sent")
	return nil
}

func (s *SMTPTransport) dialer() *mail.Dialer {
	// go-mail arma la dirección como host:port
	d := mail.NewDialer(hostLiteral(s.Host), s.Port, s.User, s.Pass)
	d.SSL = s.SSL
	d.StartTLSPolicy = s.StartTLSPolicy
	d.TLSConfig = &tls.Config{
		ServerName:         s.Host,
		InsecureSkipVerify: s.InsecureSkipVerify, // solo dev
	}
	if s.LocalName != "" {
		d.LocalName = s.LocalName
	}
	if s.Timeout > 0 {
		d.Timeout = s.Timeout
	}
	return d
}

// optionBool interpreta opciones de DSN tipo "0", "1", "false", "true".
// def solo aplica a valores no reconocidos.
func optionBool(v string, def bool) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		// "?verify_peer=" presente y vacío es false, igual que filter_var(FILTER_VALIDATE_BOOL) en Symfony
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
