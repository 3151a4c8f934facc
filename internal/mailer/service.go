package mailer

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ServiceConfig contiene la configuración del servicio de mail.
type ServiceConfig struct {
	DSN        string      // Neos.SymfonyMailer.mailer.dsn
	Logger     *zap.Logger // opcional; default: logger del contexto
	Dispatcher Dispatcher  // opcional
}

// Service expone el armado de DSN desde la config legacy y la fábrica de
// Mailers. No guarda estado entre llamadas.
type Service struct {
	cfg ServiceConfig
}

// NewService crea el servicio con la configuración nueva ya resuelta.
func NewService(cfg ServiceConfig) *Service {
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	return &Service{cfg: cfg}
}

// GetMailer retorna un Mailer sobre transport, o sobre el transporte del DSN
// configurado si transport es nil. Sin DSN retorna un ConfigurationError.
// extra se aplica después de las opciones del servicio.
func (s *Service) GetMailer(transport Transport, extra ...MailerOption) (*Mailer, error) {
	opts := []MailerOption{WithDispatcher(s.cfg.Dispatcher)}
	if s.cfg.Logger != nil {
		opts = append(opts, WithLogger(s.cfg.Logger))
	}
	opts = append(opts, extra...)

	if transport != nil {
		return NewMailer(transport, opts...), nil
	}

	if s.cfg.DSN == "" {
		return nil, &ConfigurationError{
			Code: CodeNoDSN,
			Msg:  "No DSN configured for Neos.SymfonyMailer",
			Err:  ErrNoDSN,
		}
	}

	t, err := TransportFromDSN(s.cfg.DSN)
	if err != nil {
		return nil, err
	}
	return NewMailer(t, opts...), nil
}

// MigrateTransport migra un bloque `transport` legacy. Solo se soporta
// Swift_SmtpTransport; cualquier otro tipo es un ConfigurationError.
func (s *Service) MigrateTransport(transportType string, options map[string]any) (Migration, error) {
	if transportType != SwiftSMTPTransport {
		return Migration{}, &ConfigurationError{
			Msg: "Unsupported SymfonyMailer transport type. Nothing to migrate.",
			Err: fmt.Errorf("%w: %q", ErrUnsupportedTransport, transportType),
		}
	}
	return s.MigrateSwiftMailerSMTP(options)
}

// MigrateSwiftMailerSMTP traduce las opciones de un Swift_SmtpTransport a un
// DSN, junto con las notas sobre lo que el DSN no conserva.
func (s *Service) MigrateSwiftMailerSMTP(options map[string]any) (Migration, error) {
	opts, unused, err := DecodeSMTPOptions(options)
	if err != nil {
		return Migration{}, err
	}
	return Migration{
		DSN:   BuildSMTPDSN(opts),
		Notes: MigrationNotes(opts, unused),
	}, nil
}

// CreateDSNFromSwiftMailerConfiguration retorna solo el DSN de la migración.
func (s *Service) CreateDSNFromSwiftMailerConfiguration(options map[string]any) (string, error) {
	m, err := s.MigrateSwiftMailerSMTP(options)
	if err != nil {
		return "", err
	}
	return m.DSN, nil
}
