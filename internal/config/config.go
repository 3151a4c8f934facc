package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Namespaces de los bloques de configuración dentro de Settings.yaml.
const (
	LegacyNamespace  = "Neos.SwiftMailer"
	PackageNamespace = "Neos.SymfonyMailer"

	// DefaultPath es el Settings.yaml que se lee si no se pasa --config.
	DefaultPath = "Configuration/Settings.yaml"
)

// LegacyTransport es el bloque `transport` de SwiftMailer:
//
//	Neos:
//	  SwiftMailer:
//	    transport:
//	      type: 'Swift_SmtpTransport'
//	      options:
//	        host: 'smtp.example.com'
//	        port: '465'
type LegacyTransport struct {
	// HasType indica si la clave `type` existe (aunque esté vacía).
	HasType bool
	Type    string
	Options map[string]any
}

// MailerConfig es el bloque `mailer` del paquete nuevo.
type MailerConfig struct {
	DSN string
}

// Settings es la configuración ya resuelta (archivos mergeados + env).
type Settings struct {
	Legacy LegacyTransport
	Mailer MailerConfig

	// LegacyRaw es Neos.SwiftMailer.transport tal como vino del YAML.
	LegacyRaw map[string]any
	// PackageRaw es todo Neos.SymfonyMailer (incluye overrides por env).
	PackageRaw map[string]any

	// Files son los archivos efectivamente leídos, en orden.
	Files []string
}

// Load lee uno o más Settings.yaml y los mergea en orden (el último gana),
// igual que las capas de configuración del framework.
// Un path explícito inexistente es error; si no se pasa ninguno se intenta
// DefaultPath y, si no existe, se trabaja con configuración vacía.
func Load(paths ...string) (*Settings, error) {
	explicit := len(paths) > 0
	if !explicit {
		paths = []string{DefaultPath}
	}

	tree := map[string]any{}
	var files []string
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read settings %s: %w", p, err)
		}
		var doc map[string]any
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("parse settings %s: %w", p, err)
		}
		mergeInto(tree, doc)
		files = append(files, p)
	}

	s := &Settings{Files: files}
	s.LegacyRaw = lookupMap(tree, append(splitPath(LegacyNamespace), "transport")...)
	s.PackageRaw = lookupMap(tree, splitPath(PackageNamespace)...)

	s.Legacy = legacyFrom(s.LegacyRaw)
	if mailer, ok := s.PackageRaw["mailer"].(map[string]any); ok {
		if dsn, ok := mailer["dsn"]; ok && dsn != nil {
			s.Mailer.DSN = fmt.Sprint(dsn)
		}
	}

	s.applyEnvOverrides()

	return s, nil
}

func legacyFrom(raw map[string]any) LegacyTransport {
	var lt LegacyTransport
	if raw == nil {
		return lt
	}
	// isset(): la clave existe y no es null
	if t, ok := raw["type"]; ok && t != nil {
		lt.HasType = true
		lt.Type = fmt.Sprint(t)
	}
	if opts, ok := raw["options"].(map[string]any); ok {
		lt.Options = opts
	}
	return lt
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

// applyEnvOverrides: pisa Settings.yaml con variables de entorno.
func (s *Settings) applyEnvOverrides() {
	if v, ok := getEnvStr("MAILER_DSN"); ok {
		s.Mailer.DSN = strings.TrimSpace(v)
		if s.PackageRaw == nil {
			s.PackageRaw = map[string]any{}
		}
		mailer, _ := s.PackageRaw["mailer"].(map[string]any)
		if mailer == nil {
			mailer = map[string]any{}
			s.PackageRaw["mailer"] = mailer
		}
		mailer["dsn"] = s.Mailer.DSN
	}
}

// PathsFromEnv retorna los paths de MAILERCTL_CONFIG (separados por coma).
func PathsFromEnv() []string {
	v, ok := getEnvStr("MAILERCTL_CONFIG")
	if !ok {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ---- Helpers de árbol ----

func splitPath(ns string) []string {
	return strings.Split(ns, ".")
}

// lookupMap recorre el árbol por claves y retorna el mapa final (o nil).
func lookupMap(tree map[string]any, keys ...string) map[string]any {
	cur := tree
	for _, k := range keys {
		next, ok := cur[k].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// mergeInto mergea src sobre dst en profundidad. Los escalares y listas de src
// reemplazan a los de dst; los mapas se combinan.
func mergeInto(dst, src map[string]any) {
	for k, sv := range src {
		if sm, ok := sv.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				mergeInto(dm, sm)
				continue
			}
			cp := map[string]any{}
			mergeInto(cp, sm)
			dst[k] = cp
			continue
		}
		dst[k] = sv
	}
}
