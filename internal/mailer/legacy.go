package mailer

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/samber/lo"
)

// SwiftSMTPTransport es el único tipo de transporte legacy que se migra.
const SwiftSMTPTransport = "Swift_SmtpTransport"

const defaultSMTPHost = "localhost"

// SMTPOptions son las opciones del bloque `options` de Swift_SmtpTransport.
//
//	options:
//	  host: 'smtp.example.com'
//	  port: '465'
//	  encryption: 'ssl'
//	  username: 'myaccount@example.com'
//	  password: 'shoobidoo'
type SMTPOptions struct {
	Host        string  `mapstructure:"host" validate:"omitempty,hostname_rfc1123|ip"`
	Port        int     `mapstructure:"port" validate:"min=0,max=65535"`
	Encryption  string  `mapstructure:"encryption"`
	Username    *string `mapstructure:"username"`
	Password    *string `mapstructure:"password"`
	LocalDomain string  `mapstructure:"localDomain"`
}

// Migration es el resultado de traducir un Swift_SmtpTransport.
type Migration struct {
	DSN string
	// Notes son advertencias sobre opciones legacy que el DSN no conserva.
	Notes []string
}

var validate = validator.New()

// DecodeSMTPOptions convierte el mapa sin tipo del YAML legacy en SMTPOptions.
// Acepta `port: '465'` (string numérico) como hacía la config vieja, pero un
// puerto no numérico o fuera de rango es un ConfigurationError: antes se
// convertía en silencio a 0.
// Retorna además las claves que no corresponden a ninguna opción conocida.
func DecodeSMTPOptions(options map[string]any) (SMTPOptions, []string, error) {
	var opts SMTPOptions
	var md mapstructure.Metadata

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		Metadata:         &md,
		WeaklyTypedInput: true,
		DecodeHook:       strictIntHook,
	})
	if err != nil {
		return SMTPOptions{}, nil, fmt.Errorf("options decoder: %w", err)
	}
	if err := dec.Decode(options); err != nil {
		return SMTPOptions{}, nil, configErr(fmt.Errorf("%w: %v", ErrInvalidOptions, err),
			"Invalid SwiftMailer SMTP options")
	}

	opts.Host = strings.TrimSpace(opts.Host)
	// "[2001:db8::1]" se acepta igual que "2001:db8::1"
	if strings.HasPrefix(opts.Host, "[") && strings.HasSuffix(opts.Host, "]") {
		opts.Host = opts.Host[1 : len(opts.Host)-1]
	}
	if err := validate.Struct(opts); err != nil {
		return SMTPOptions{}, nil, configErr(fmt.Errorf("%w: %v", ErrInvalidOptions, err),
			"Invalid SwiftMailer SMTP options")
	}

	unused := md.Unused
	sort.Strings(unused)
	return opts, unused, nil
}

// strictIntHook limita lo que WeaklyTypedInput acepta para campos int: enteros
// o strings de dígitos decimales. Bools y floats son error, no 1 ni 465.
func strictIntHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	switch v := data.(type) {
	case nil, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return data, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, nil
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return nil, fmt.Errorf("%q is not an integer", v)
			}
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer: %w", v, err)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("expected an integer, got %T (%v)", data, data)
	}
}

// BuildSMTPDSN arma el DSN smtp:// a partir de las opciones legacy.
//
// El host se lee una sola vez (ya validado como hostname o IP) y se emite sin
// encodear: un host válido no tiene caracteres reservados, así que el resultado
// coincide con el de la config vieja. Usuario y password sí se encodean.
// El puerto sale de la misma lectura; 0 significa "sin puerto".
func BuildSMTPDSN(opts SMTPOptions) string {
	host := opts.Host
	if host == "" {
		host = defaultSMTPHost
	}

	dsn := DSN{Scheme: "smtp", Host: host}

	if opts.Username != nil {
		u := url.QueryEscape(*opts.Username)
		dsn.User = &u
	}
	if opts.Password != nil {
		p := url.QueryEscape(*opts.Password)
		dsn.Password = &p
	}
	if opts.Port > 0 {
		p := opts.Port
		dsn.Port = &p
	}

	return dsn.String()
}

// MigrationNotes lista lo que el DSN generado no expresa por sí solo.
func MigrationNotes(opts SMTPOptions, unused []string) []string {
	var notes []string

	switch strings.ToLower(strings.TrimSpace(opts.Encryption)) {
	case "":
	case "ssl":
		if opts.Port != 465 {
			notes = append(notes, `encryption "ssl" is not part of the DSN: use the smtps:// scheme to force implicit TLS`)
		}
	case "tls":
		notes = append(notes, `encryption "tls": STARTTLS is negotiated automatically, append "?require_tls=true" to enforce it`)
	default:
		notes = append(notes, fmt.Sprintf("encryption %q is not supported and was ignored", opts.Encryption))
	}

	if opts.LocalDomain != "" {
		notes = append(notes, fmt.Sprintf(`localDomain is not part of the DSN: append "?local_domain=%s" to keep it`,
			url.QueryEscape(opts.LocalDomain)))
	}

	notes = append(notes, lo.Map(unused, func(key string, _ int) string {
		return fmt.Sprintf("option %q is not supported and was ignored", key)
	})...)

	return notes
}
