package money

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input   string
		want    int64
		wantErr error
	}{
		{"500", 500, nil},
		{" 500 ", 500, nil},
		{"5,000", 5000, nil},
		{"500.00", 500, nil},
		{"+10000", 10000, nil},
		{"-200", -200, nil},
		{"500.50", 0, ErrFractional},
		{"", 0, ErrInvalidAmount},
		{"abc", 0, ErrInvalidAmount},
		{".", 0, ErrInvalidAmount},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.input)
		if err != tc.wantErr {
			t.Fatalf("ParseAmount(%q) error = %v, want %v", tc.input, err, tc.wantErr)
		}
		if err == nil && got != tc.want {
			t.Fatalf("ParseAmount(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestFormatIndianGrouping(t *testing.T) {
	cases := []struct {
		value int64
		want  string
	}{
		{0, "0"},
		{500, "500"},
		{5000, "5,000"},
		{100000, "1,00,000"},
		{1234567, "12,34,567"},
		{-45000, "-45,000"},
	}
	for _, tc := range cases {
		if got := Format(tc.value); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
