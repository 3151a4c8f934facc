package mailer

import (
	"context"
)

// Transport entrega un Email por algún protocolo.
type Transport interface {
	// Send envía el mensaje de forma sincrónica.
	Send(ctx context.Context, e Email) error
	// Name identifica el transporte (smtp, smtps, null...) para logs y métricas.
	Name() string
}

// TransportFromDSN construye un Transport a partir del DSN configurado.
// No abre conexiones: eso pasa recién en Send.
func TransportFromDSN(raw string) (Transport, error) {
	d, err := ParseDSN(raw)
	if err != nil {
		return nil, err
	}

	switch d.Scheme {
	case "smtp", "smtps":
		return NewSMTPTransport(d), nil
	case "null":
		return NullTransport{}, nil
	default:
		return nil, configErr(ErrUnsupportedScheme, "The %q scheme is not supported", d.Scheme)
	}
}

// NullTransport descarta los mensajes (DSN null://null).
type NullTransport struct{}

func (NullTransport) Send(ctx context.Context, _ Email) error {
	return ctx.Err()
}

func (NullTransport) Name() string { return "null" }
