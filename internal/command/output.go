package command

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dropDatabas3/mailerctl/internal/mailer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	styleTitle   = color.New(color.Bold)
	styleSuccess = color.New(color.FgGreen)
	styleWarn    = color.New(color.FgHiYellow)
	styleError   = color.New(color.FgHiRed)
	styleHint    = color.New(color.Faint)
)

// printer escribe la salida para el operador: stdout para resultados,
// stderr para errores.
type printer struct {
	out io.Writer
	err io.Writer
}

func newPrinter(cmd *cobra.Command) printer {
	return printer{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
}

func (p printer) Title(s string) {
	styleTitle.Fprintln(p.out, s)
	fmt.Fprintln(p.out)
}

func (p printer) Success(s string) {
	styleSuccess.Fprintln(p.out, s)
}

func (p printer) Warn(s string) {
	styleWarn.Fprintln(p.out, "Warning: "+s)
}

// YAML imprime v como YAML con indentación de 2 espacios.
func (p printer) YAML(v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	fmt.Fprintln(p.out, buf.String())
	return nil
}

// Failure imprime un error en una línea (más una pista si es un error SMTP).
func (p printer) Failure(err error) {
	styleError.Fprintln(p.err, errorMessage(err))

	var te *mailer.TransportError
	if errors.As(err, &te) {
		if hint := te.Diag.Hint(); hint != "" {
			styleHint.Fprintln(p.err, "hint: "+hint)
		}
	}
}

// errorMessage arma el texto para el operador. Los ConfigurationError con
// código muestran solo el mensaje y el código; el resto, la cadena completa.
func errorMessage(err error) string {
	var ce *mailer.ConfigurationError
	if errors.As(err, &ce) && ce.Code != 0 {
		return fmt.Sprintf("%s (%d)", ce.Msg, ce.Code)
	}
	if errors.As(err, &ce) && (errors.Is(err, mailer.ErrNoLegacyTransport) || errors.Is(err, mailer.ErrUnsupportedTransport)) {
		return ce.Msg
	}
	return err.Error()
}
