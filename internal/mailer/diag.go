package mailer

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"strings"
)

// SMTPDiag contiene información de diagnóstico de un error de envío.
type SMTPDiag struct {
	Code      string // auth|tls|dial|timeout|rate_limited|invalid_recipient|rejected|network|canceled|unknown
	Temporary bool   // si tiene sentido volver a probar más tarde
}

// Hint es una sugerencia corta para el operador que corre la CLI.
func (d SMTPDiag) Hint() string {
	switch d.Code {
	case "auth":
		return "check the username/password in the DSN (they must be URL-encoded)"
	case "tls":
		return "TLS handshake failed: check the port/scheme (smtp vs smtps) or try verify_peer=0 for self-signed certificates"
	case "dial":
		return "could not connect: check host and port, and that the SMTP server is reachable"
	case "timeout":
		return "the SMTP server did not answer in time"
	case "rate_limited":
		return "the SMTP server is throttling, try again later"
	case "invalid_recipient":
		return "the recipient address was rejected by the server"
	case "rejected":
		return "the message was rejected by a server policy (SPF/DMARC/relay)"
	}
	return ""
}

// DiagnoseSMTP clasifica un error de envío. Primero mira los tipos (código
// SMTP, net.Error), después el texto como último recurso.
func DiagnoseSMTP(err error) SMTPDiag {
	if err == nil {
		return SMTPDiag{Code: "unknown"}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return SMTPDiag{Code: "canceled"}
	}

	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		if d, ok := diagnoseReply(tpErr.Code, strings.ToLower(tpErr.Msg)); ok {
			return d
		}
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return SMTPDiag{Code: "timeout", Temporary: true}
	}

	s := strings.ToLower(err.Error())

	if strings.Contains(s, "i/o timeout") {
		return SMTPDiag{Code: "timeout", Temporary: true}
	}

	if strings.Contains(s, "x509:") ||
		strings.Contains(s, "tls:") ||
		strings.Contains(s, "tls") && (strings.Contains(s, "handshake") || strings.Contains(s, "certificate")) {
		return SMTPDiag{Code: "tls"}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return SMTPDiag{Code: "dial", Temporary: true}
	}
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "dial tcp") {
		return SMTPDiag{Code: "dial", Temporary: true}
	}

	if strings.Contains(s, "535") || strings.Contains(s, "5.7.8") ||
		strings.Contains(s, "authentication failed") ||
		strings.Contains(s, "auth") && strings.Contains(s, "failed") {
		return SMTPDiag{Code: "auth"}
	}

	if ne != nil {
		return SMTPDiag{Code: "network", Temporary: true}
	}
	return SMTPDiag{Code: "unknown"}
}

// diagnoseReply clasifica una respuesta SMTP por código (RFC 5321) y, para
// los 5xx genéricos, por el enhanced status code del texto.
func diagnoseReply(code int, msg string) (SMTPDiag, bool) {
	switch {
	case code == 535 || code == 534 || code == 530 || strings.Contains(msg, "5.7.8"):
		return SMTPDiag{Code: "auth"}, true
	case code == 421 || code == 450 || code == 451 || code == 452 || strings.Contains(msg, "4.7.0"):
		return SMTPDiag{Code: "rate_limited", Temporary: true}, true
	case strings.Contains(msg, "5.1.1") || strings.Contains(msg, "user unknown") ||
		strings.Contains(msg, "mailbox not found"):
		return SMTPDiag{Code: "invalid_recipient"}, true
	case strings.Contains(msg, "5.7.1") || strings.Contains(msg, "policy") ||
		strings.Contains(msg, "dmarc") || strings.Contains(msg, "spf") ||
		strings.Contains(msg, "relay"):
		return SMTPDiag{Code: "rejected"}, true
	case code == 550 || code == 553:
		return SMTPDiag{Code: "invalid_recipient"}, true
	case code == 554:
		return SMTPDiag{Code: "rejected"}, true
	case code >= 400 && code < 500:
		return SMTPDiag{Code: "rate_limited", Temporary: true}, true
	}
	return SMTPDiag{}, false
}
