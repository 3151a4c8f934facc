package mailer

import (
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// DSN es un connection string de transporte:
//
//	scheme://[user[:password]@]host[:port][?option=value...]
//
// User y Password se guardan ya percent-encoded (tal como van en el string).
type DSN struct {
	Scheme   string
	Host     string
	User     *string
	Password *string
	Port     *int
	Options  map[string]string
}

// String arma el DSN. Sin User no se emite el segmento de credenciales; sin
// Password se omite ":password"; sin Port se omite ":port".
func (d DSN) String() string {
	var b strings.Builder
	b.WriteString(d.Scheme)
	b.WriteString("://")

	if d.User != nil {
		b.WriteString(*d.User)
		if d.Password != nil {
			b.WriteByte(':')
			b.WriteString(*d.Password)
		}
		b.WriteByte('@')
	}

	b.WriteString(hostLiteral(d.Host))

	if d.Port != nil {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(*d.Port))
	}

	if len(d.Options) > 0 {
		keys := make([]string, 0, len(d.Options))
		for k := range d.Options {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		q := make([]string, 0, len(keys))
		for _, k := range keys {
			q = append(q, url.QueryEscape(k)+"="+url.QueryEscape(d.Options[k]))
		}
		b.WriteByte('?')
		b.WriteString(strings.Join(q, "&"))
	}

	return b.String()
}

// Username retorna el usuario decodificado ("" si no hay).
func (d DSN) Username() string {
	return decodeCredential(d.User)
}

// Secret retorna el password decodificado ("" si no hay).
func (d DSN) Secret() string {
	return decodeCredential(d.Password)
}

// PortOr retorna el puerto o def si no está seteado.
func (d DSN) PortOr(def int) int {
	if d.Port == nil {
		return def
	}
	return *d.Port
}

// Option retorna una opción de query o def.
func (d DSN) Option(key, def string) string {
	if v, ok := d.Options[key]; ok {
		return v
	}
	return def
}

// hostLiteral pone entre corchetes los literales IPv6 (RFC 3986); si no, el
// ":" del host se confunde con el del puerto.
func hostLiteral(h string) string {
	if strings.Contains(h, ":") && net.ParseIP(h) != nil {
		return "[" + h + "]"
	}
	return h
}

func decodeCredential(v *string) string {
	if v == nil {
		return ""
	}
	// mismas reglas que urldecode(): '+' es espacio
	s, err := url.QueryUnescape(*v)
	if err != nil {
		return *v
	}
	return s
}

// ParseDSN parsea un DSN de transporte. Las credenciales quedan encoded en el
// DSN resultante; usar Username()/Secret() para obtenerlas en claro.
func ParseDSN(raw string) (DSN, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DSN{}, configErr(ErrNoDSN, "The mailer DSN is empty")
	}

	i := strings.Index(raw, "://")
	if i <= 0 {
		return DSN{}, configErr(ErrInvalidDSN, "The mailer DSN must contain a scheme")
	}

	d := DSN{Scheme: strings.ToLower(raw[:i])}

	rest := raw[i+3:]
	authEnd := strings.IndexAny(rest, "/?#")
	if authEnd < 0 {
		authEnd = len(rest)
	}
	authority, tail := rest[:authEnd], rest[authEnd:]

	// las credenciales se separan a mano: url.Parse no sigue urldecode() para '+'
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		userinfo := authority[:at]
		authority = authority[at+1:]
		user, pass, hasPass := strings.Cut(userinfo, ":")
		d.User = &user
		if hasPass {
			d.Password = &pass
		}
		if _, err := url.QueryUnescape(user); err != nil {
			return DSN{}, configErr(ErrInvalidDSN, "The mailer DSN has an invalid user")
		}
		if _, err := url.QueryUnescape(pass); err != nil {
			return DSN{}, configErr(ErrInvalidDSN, "The mailer DSN has an invalid password")
		}
	}

	u, err := url.Parse(d.Scheme + "://" + authority + tail)
	if err != nil {
		return DSN{}, configErr(ErrInvalidDSN, "The mailer DSN is invalid")
	}

	d.Host = u.Hostname()
	if d.Host == "" {
		return DSN{}, configErr(ErrInvalidDSN, "The mailer DSN must contain a host (use \"default\" by default)")
	}

	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 65535 {
			return DSN{}, configErr(ErrInvalidDSN, "The mailer DSN has an invalid port %q", p)
		}
		d.Port = &n
	}

	if q := u.Query(); len(q) > 0 {
		d.Options = make(map[string]string, len(q))
		for k, vs := range q {
			if len(vs) > 0 {
				d.Options[k] = vs[len(vs)-1]
			}
		}
	}

	return d, nil
}
