package cli

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{735, "$735"},
		{1234.4, "$1,234"},
		{1234.6, "$1,235"},
		{25000, "$25,000"},
		{-56, "-$56"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoneyPrecise(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{19.99, "$19.99"},
		{20, "$20"},
		{1200, "$1,200"},
		{0.5, "$0.50"},
	}
	for _, tt := range tests {
		if got := FormatMoneyPrecise(tt.in); got != tt.want {
			t.Errorf("FormatMoneyPrecise(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatShare(t *testing.T) {
	if got := FormatShare(0.55); got != "55%" {
		t.Fatalf("FormatShare(0.55) = %q, want 55%%", got)
	}
	if got := FormatShare(0.15); got != "15%" {
		t.Fatalf("FormatShare(0.15) = %q, want 15%%", got)
	}
}

func TestFormatMonths(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "done"},
		{1, "1 month"},
		{17, "17 months"},
		{23, "23 months"},
		{24, "2y"},
		{30, "2y 6mo"},
	}
	for _, tt := range tests {
		if got := FormatMonths(tt.in); got != tt.want {
			t.Errorf("FormatMonths(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(1035, 735); got != "+$300" {
		t.Fatalf("FormatDelta = %q, want +$300", got)
	}
	if got := FormatDelta(500, 735); got != "-$235" {
		t.Fatalf("FormatDelta = %q, want -$235", got)
	}
}
