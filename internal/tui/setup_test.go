package tui

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"  ", 0},
		{"1200", 1200},
		{"89.99", 89.99},
		{"$1,234.50", 1234.5},
		{" $40 ", 40},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := parseAmount(tt.in); got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFmtAmountRoundTrips(t *testing.T) {
	for _, v := range []float64{0, 40, 1234.5, 89.99} {
		got := parseAmount(fmtAmount(v))
		if got != v {
			t.Errorf("parseAmount(fmtAmount(%v)) = %v", v, got)
		}
	}
	if fmtAmount(0) != "" {
		t.Errorf("fmtAmount(0) = %q, want empty (placeholder shows instead)", fmtAmount(0))
	}
}

func TestValidateAmount(t *testing.T) {
	if err := validateAmount(""); err != nil {
		t.Errorf("empty amount should be allowed: %v", err)
	}
	if err := validateAmount("$1,200"); err != nil {
		t.Errorf("formatted amount should be allowed: %v", err)
	}
	if err := validateAmount("-5"); err == nil {
		t.Error("negative amount should be rejected")
	}
	if err := validateAmount("12x"); err == nil {
		t.Error("non-numeric amount should be rejected")
	}
}

func TestValidateCryptoCap(t *testing.T) {
	for _, ok := range []string{"", "0", "5", "10"} {
		if err := validateCryptoCap(ok); err != nil {
			t.Errorf("validateCryptoCap(%q) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"-1", "11", "50", "x"} {
		if err := validateCryptoCap(bad); err == nil {
			t.Errorf("validateCryptoCap(%q) = nil, want error", bad)
		}
	}
}
