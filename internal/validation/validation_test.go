package validation

import (
	"math"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Learn Go", false},
		{"empty", "", true},
		{"whitespace only", "   \t", true},
		{"max length", strings.Repeat("a", MaxNameLength), false},
		{"too long", strings.Repeat("a", MaxNameLength+1), true},
		{"multibyte counts runes", strings.Repeat("é", MaxNameLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("goal name", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}

	err := ValidateName("task name", "")
	if err == nil || err.Error() != "task name is required" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidateValue(t *testing.T) {
	for _, v := range []float64{0, -1, 100, 1e300} {
		if err := ValidateValue(v); err != nil {
			t.Errorf("ValidateValue(%v) = %v, want nil", v, err)
		}
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := ValidateValue(v); err == nil {
			t.Errorf("ValidateValue(%v) = nil, want error", v)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"ada@example.com", "first.last+tag@sub.example.org"}
	for _, e := range valid {
		if err := ValidateEmail(e); err != nil {
			t.Errorf("ValidateEmail(%q) = %v", e, err)
		}
	}

	invalid := []string{"", "not-an-email", "Ada <ada@example.com>", strings.Repeat("a", 250) + "@x.io"}
	for _, e := range invalid {
		if err := ValidateEmail(e); err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error", e)
		}
	}
}

func TestValidatePersonName(t *testing.T) {
	if err := ValidatePersonName(""); err != nil {
		t.Errorf("empty person name should be allowed: %v", err)
	}
	if err := ValidatePersonName(strings.Repeat("x", 101)); err == nil {
		t.Error("expected error for long person name")
	}
}
