package dataprocessing

import (
	"math"
	"testing"
)

func TestParseValueScalars(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"nil", nil, 0},
		{"float64", 42.5, 42.5},
		{"float32", float32(2.5), 2.5},
		{"int", 17, 17},
		{"int64", int64(-3), -3},
		{"uint", uint(9), 9},
		{"bool_true", true, 1},
		{"bool_false", false, 0},
		{"nan", math.NaN(), 0},
		{"pos_inf", math.Inf(1), 0},
		{"neg_inf", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseValue(tt.input); got != tt.want {
				t.Errorf("ParseValue(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStringEmptyAndSentinels(t *testing.T) {
	inputs := []string{
		"", "   ", "\t\n",
		"nan", "NaN", "NONE", "null", "n/a", "N/A", "na",
		"#N/A", "#VALUE!", "#REF!", "#DIV/0!", "#NUM!",
		"inf", "-inf", "Infinity", "-Infinity",
		"true", "FALSE", "yes", "no", "error", "err",
		"nichts", "nul", "erreur", "infinito", "niets", "ingen",
	}
	for _, in := range inputs {
		if got := ParseString(in); got != 0 {
			t.Errorf("ParseString(%q) = %v, want 0", in, got)
		}
	}
}

func TestParseStringSeparatorConventions(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		// Pure digits and signs.
		{"123", 123},
		{"-42.5", -42.5},
		{"+42.5", 42.5},

		// Unambiguous grouped formats with decimals.
		{"1.234.567,89", 1234567.89},
		{"1 234 567,89", 1234567.89},
		{"1'234'567.89", 1234567.89},
		{"1,234,567.89", 1234567.89},

		// Grouped, no decimal part.
		{"1.234.567", 1234567},
		{"1 234 567", 1234567},
		{"1'234'567", 1234567},
		{"1,234,567", 1234567},
		{"1,493", 1493},

		// Single-separator ambiguity, comma.
		{"1,5", 1.5},
		{"123,45", 123.45},
		{"0,25", 0.25},
		{"12,345", 12345},     // 3-digit fraction, short integer: thousands
		{"1,23456", 1.23456},  // long fraction: decimal
		{"12345,678", 12345678}, // 3-digit fraction, 5-digit integer: fallback thousands

		// Single-separator ambiguity, dot.
		{"12.5", 12.5},
		{"1.493", 1.493},
		{"12.345", 12.345},
		{"1234.567", 1234567}, // long integer, 3-digit fraction: thousands
		{"3.14159", 3.14159},

		// Mixed separators: last separator wins as decimal mark.
		{"1.234,56", 1234.56},
		{"1,234.56", 1234.56},
		{"1.234.56,7", 123456.7},

		// Currency, percent, qualifiers.
		{"€1,375.2", 1375.2},
		{"$1,234.56", 1234.56},
		{"CHF 1'250.00", 1250},
		{"usd 99,9", 99.9},
		{"50%", 0.5},
		{"-12,5%", -0.125},
		{"ca. 1500", 1500},
		{"circa 2,5", 2.5},
		{"environ 1 200", 1200},
		{"(1.250)", 1.250},
		{"\"42\"", 42},

		// Scientific notation.
		{"1.5e3", 1500},
		{"1,5e3", 1500},
		{"-2E2", -200},
		{"1e-2", 0.01},

		// Garbage with embedded digits falls back to digit extraction.
		{"abc123def", 123},
		{"about 42 units", 42},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseString(tt.input)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStringStrategy(t *testing.T) {
	tests := []struct {
		input    string
		want     float64
		strategy string
	}{
		{"", 0, "empty"},
		{"n/a", 0, "sentinel"},
		{"1.5e3", 1500, "scientific"},
		{"123", 123, "integer"},
		{"1.234,56", 1234.56, "german"},
		{"1,493", 1493, "comma_thousands"},
		{"1,5", 1.5, "comma_decimal"},
		{"1.493", 1.493, "dot_decimal"},
		{"12..34", 1234, "digits_only"},
	}
	for _, tt := range tests {
		got, strategy := ParseStringStrategy(tt.input)
		if math.Abs(got-tt.want) > 1e-9 || strategy != tt.strategy {
			t.Errorf("ParseStringStrategy(%q) = %v, %q, want %v, %q",
				tt.input, got, strategy, tt.want, tt.strategy)
		}
	}
}

func TestIsFallbackStrategy(t *testing.T) {
	for _, s := range []string{"digits_only", "digits_fallback"} {
		if !IsFallbackStrategy(s) {
			t.Errorf("IsFallbackStrategy(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"german", "integer", "sentinel", "empty", ""} {
		if IsFallbackStrategy(s) {
			t.Errorf("IsFallbackStrategy(%q) = true, want false", s)
		}
	}
}

func TestParseStringNeverNonFinite(t *testing.T) {
	inputs := []string{
		"1e999", "-1e999", "9e307%", "1.797693134862315708145274237317043567981e+999",
		"999999999999999999999999999999999999999999999999999999999999999999999" +
			"999999999999999999999999999999999999999999999999999999999999999999999" +
			"999999999999999999999999999999999999999999999999999999999999999999999" +
			"999999999999999999999999999999999999999999999999999999999999999999999" +
			"99999999999999999999999999999999999999999999999999999999999999999999",
	}
	for _, in := range inputs {
		got := ParseString(in)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("ParseString(%q) = %v, want finite", in, got)
		}
	}
}

func TestParseValueIdempotent(t *testing.T) {
	inputs := []string{"1,493", "12.5", "€1,375.2", "50%", "-42.5", "garbage"}
	for _, in := range inputs {
		first := ParseString(in)
		second := ParseValue(first)
		if first != second {
			t.Errorf("ParseValue(ParseString(%q)): %v != %v", in, second, first)
		}
	}
}

func FuzzParseString(f *testing.F) {
	seeds := []string{
		"", "1,493", "1.493", "€1,375.2", "1.234.567,89", "1 234 567,89",
		"1'234'567.89", "50%", "-42.5", "1,5e3", "#DIV/0!", "ca. 1500",
		"..,,''", "+-+-", "1e999", "%%%", "1.2.3,4.5",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		got := ParseString(s)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("ParseString(%q) = %v, want finite", s, got)
		}
	})
}
