package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/martijn/garage/internal/core/domain"
	"github.com/spf13/pflag"
)

func parseClientFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addClientFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return fs
}

func TestPatchFromFlagsOnlySetFields(t *testing.T) {
	patch, err := patchFromFlags(parseClientFlags(t, "--make", "Renault", "--odometer", "0", "--payment", "cash"))
	if err != nil {
		t.Fatalf("patchFromFlags: %v", err)
	}

	if patch.LastName != nil || patch.Quote != nil {
		t.Errorf("unset flags should stay nil: %+v", patch)
	}
	if patch.Vehicle == nil || *patch.Vehicle.Make != "Renault" || patch.Vehicle.Model != nil {
		t.Fatalf("unexpected vehicle patch %+v", patch.Vehicle)
	}
	if patch.Vehicle.OdometerKm == nil || *patch.Vehicle.OdometerKm != 0 {
		t.Errorf("explicit zero odometer should be kept")
	}
	if patch.Preferences == nil || *patch.Preferences.PaymentMethod != domain.PaymentMethodCash || patch.Preferences.ContactMethod != nil {
		t.Errorf("unexpected preferences patch %+v", patch.Preferences)
	}
}

func TestPatchFromFlagsParsesQuote(t *testing.T) {
	patch, err := patchFromFlags(parseClientFlags(t,
		"--quote-date", "2024-05-02",
		"--quote-amount", "1250.40",
		"--quote-status", "accepted",
	))
	if err != nil {
		t.Fatalf("patchFromFlags: %v", err)
	}

	q := patch.Quote
	if q == nil || q.Date.String() != "2024-05-02" || q.TotalAmount.String() != "1250.4" || *q.Status != domain.QuoteStatusAccepted {
		t.Errorf("unexpected quote patch %+v", q)
	}
}

func TestPatchFromFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad inspection date", []string{"--inspection-date", "14/03/2024"}},
		{"bad quote date", []string{"--quote-date", "yesterday"}},
		{"bad amount", []string{"--quote-amount", "12,50"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := patchFromFlags(parseClientFlags(t, tt.args...)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"no\n", false},
		{"y\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		if got := confirm(strings.NewReader(tt.input), &out, "Delete? "); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Delete? " {
			t.Errorf("expected the prompt on the given writer, got %q", out.String())
		}
	}
}
