package metrics

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dropDatabas3/mailerctl/internal/mailer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestDispatcher_CountsResults(t *testing.T) {
	d := NewDispatcher()
	d.now = func() time.Time { return time.Unix(1700000000, 0) }

	okBefore := testutil.ToFloat64(MailSendTotal.WithLabelValues("null", "success"))
	failBefore := testutil.ToFloat64(MailSendTotal.WithLabelValues("null", "failure"))

	ctx := context.Background()
	d.Dispatch(ctx, mailer.Event{Kind: mailer.EventMessage, Transport: "null"})
	d.Dispatch(ctx, mailer.Event{Kind: mailer.EventSent, Transport: "null", Duration: 10 * time.Millisecond})
	d.Dispatch(ctx, mailer.Event{Kind: mailer.EventFailed, Transport: "null", Duration: time.Second})

	if got := testutil.ToFloat64(MailSendTotal.WithLabelValues("null", "success")) - okBefore; got != 1 {
		t.Fatalf("success delta: got %v want 1", got)
	}
	if got := testutil.ToFloat64(MailSendTotal.WithLabelValues("null", "failure")) - failBefore; got != 1 {
		t.Fatalf("failure delta: got %v want 1", got)
	}
	if got := testutil.ToFloat64(MailLastSuccess.WithLabelValues("null")); got != 1700000000 {
		t.Fatalf("last success: got %v", got)
	}
}

func TestRegisterMail_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := RegisterMail(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := RegisterMail(reg); err != nil {
		t.Fatalf("second register should tolerate AlreadyRegistered: %v", err)
	}
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := RegisterMail(reg); err != nil {
		t.Fatal(err)
	}
	NewDispatcher().Dispatch(context.Background(), mailer.Event{Kind: mailer.EventSent, Transport: "smtp"})

	path := filepath.Join(t.TempDir(), "mailerctl.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `mailerctl_send_total{result="success",transport="smtp"}`) {
		t.Fatalf("unexpected textfile content:\n%s", b)
	}
}
