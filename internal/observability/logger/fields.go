package logger

import (
	"github.com/dropDatabas3/mailerctl/internal/util"
	"go.uber.org/zap"
)

// =================================================================================
// CAMPOS ESTÁNDAR - MAIL
// =================================================================================

// Scheme crea un campo para el scheme del DSN (smtp, smtps, null).
func Scheme(v string) zap.Field {
	return zap.String("scheme", v)
}

// Host crea un campo para el host SMTP.
func Host(v string) zap.Field {
	return zap.String("host", v)
}

// Port crea un campo para el puerto SMTP.
func Port(v int) zap.Field {
	return zap.Int("port", v)
}

// Email crea un campo para una dirección de email, siempre enmascarada.
func Email(key, v string) zap.Field {
	return zap.String(key, util.MaskEmail(v))
}

// =================================================================================
// CAMPOS ESTÁNDAR - SISTEMA
// =================================================================================

// Component crea un campo para el componente/módulo.
func Component(v string) zap.Field {
	return zap.String("component", v)
}

// Op crea un campo para la operación actual.
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Err crea un campo para un error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// String crea un campo string genérico.
func String(key, v string) zap.Field {
	return zap.String(key, v)
}

// Bool crea un campo bool genérico.
func Bool(key string, v bool) zap.Field {
	return zap.Bool(key, v)
}

// Strings crea un campo para una lista de strings.
func Strings(key string, v []string) zap.Field {
	return zap.Strings(key, v)
}
