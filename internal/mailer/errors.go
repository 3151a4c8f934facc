package mailer

import (
	"errors"
	"fmt"
)

// ─── Errors ───

var (
	ErrNoDSN             = errors.New("mailer: no DSN configured")
	ErrInvalidDSN        = errors.New("mailer: invalid DSN")
	ErrUnsupportedScheme = errors.New("mailer: unsupported DSN scheme")
	ErrInvalidOptions    = errors.New("mailer: invalid transport options")

	ErrNoLegacyTransport    = errors.New("mailer: no legacy transport configured")
	ErrUnsupportedTransport = errors.New("mailer: unsupported legacy transport type")
)

// CodeNoDSN identifica el error "no hay DSN configurado". Es el mismo código
// que emite Neos.SymfonyMailer.
const CodeNoDSN = 1739540476

// ConfigurationError indica configuración faltante o inválida: no hay DSN,
// el DSN no se puede parsear, o las opciones legacy no son válidas.
type ConfigurationError struct {
	Code int
	Msg  string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap expone la causa para errors.Is / errors.As.
func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func configErr(cause error, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...), Err: cause}
}

// TransportError es una falla del envío (red, TLS, auth, protocolo).
type TransportError struct {
	Transport string
	Diag      SMTPDiag
	Err       error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s transport: %v", e.Transport, e.Err)
}

// Unwrap expone la causa para errors.Is / errors.As.
func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func transportErr(name string, err error) error {
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Transport: name, Diag: DiagnoseSMTP(err), Err: err}
}

// IsConfigurationError reporta si err (o alguna causa) es un ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsTransportError reporta si err (o alguna causa) es un TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
