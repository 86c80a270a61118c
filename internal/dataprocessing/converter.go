package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ParseValue converts an arbitrary spreadsheet cell value into a finite
// float64. It accepts values that are already numeric, nil, or strings in any
// of the number formats seen in international datasets (American, German,
// French and Swiss separator conventions, currency prefixes, percentages,
// scientific notation, qualifier words). It never panics and never returns
// NaN or Inf: input that defies every strategy collapses to 0.
//
// The function is stateless and safe for concurrent use. Bulk ingestion
// applies it per cell; callers that need to distinguish "genuinely zero"
// from "unparseable" must add their own validation layer.
func ParseValue(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(v)
	case float32:
		return finiteOrZero(float64(v))
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		return ParseString(v)
	default:
		return ParseString(fmt.Sprint(value))
	}
}

// ParseCell is the name the table-cleaning code uses for ParseValue.
func ParseCell(value any) float64 {
	return ParseValue(value)
}

// specialTokens are case-insensitive cell contents that always mean "no
// number here": spreadsheet error codes, boolean words and localized null
// markers. All of them convert to 0.
var specialTokens = map[string]struct{}{
	"nan": {}, "none": {}, "null": {}, "n/a": {}, "na": {},
	"#n/a": {}, "#value!": {}, "#ref!": {}, "#div/0!": {}, "#num!": {},
	"inf": {}, "-inf": {}, "infinity": {}, "-infinity": {},
	"true": {}, "false": {}, "yes": {}, "no": {}, "error": {}, "err": {},
	"nichts": {}, "nul": {}, "erreur": {}, "infinito": {}, "niets": {}, "ingen": {},
}

var (
	reScientific = regexp.MustCompile(`^-?[\d,]+\.?\d*[eE][+-]?\d+$`)
	reCurrency   = regexp.MustCompile(`(?i)[$€£¥₹₽¢₦₪₨₩₫₡₵₸₴₺₼]|CHF|USD|EUR|GBP`)
	reQualifier  = regexp.MustCompile(`(?i)\b(ca\.?|etwa|circa|environ|ongeveer)\b`)
	reBrackets   = regexp.MustCompile(`[()\[\]{}"']`)
	reKeep       = regexp.MustCompile(`[^\d.,\s+\-']`)
	reNonDigit   = regexp.MustCompile(`\D`)

	reDigitsOnly = regexp.MustCompile(`^\d+$`)
	// Unambiguous grouped formats with a decimal part.
	reGermanDec   = regexp.MustCompile(`^\d{1,3}(\.\d{3})+,\d+$`)
	reFrenchDec   = regexp.MustCompile(`^\d{1,3}(\s\d{3})+,\d+$`)
	reSwissDec    = regexp.MustCompile(`^\d{1,3}('\d{3})+\.\d+$`)
	reAmericanDec = regexp.MustCompile(`^\d{1,3}(,\d{3})+\.\d+$`)
	// Grouped formats without a decimal part. The dot form needs two or more
	// groups: a single dot group like 1.493 is an American decimal per the
	// single-separator rules below.
	reGermanGrp   = regexp.MustCompile(`^\d{1,3}(\.\d{3}){2,}$`)
	reFrenchGrp   = regexp.MustCompile(`^\d{1,3}(\s\d{3})+$`)
	reSwissGrp    = regexp.MustCompile(`^\d{1,3}('\d{3})+$`)
	reAmericanGrp = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)
	// Exactly one separator between two digit runs.
	reSingleSep = regexp.MustCompile(`^\d+[.,]\d+$`)
)

// ParseString converts one raw string token into a finite float64.
// See ParseValue for the contract.
func ParseString(s string) float64 {
	v, _ := ParseStringStrategy(s)
	return v
}

// IsFallbackStrategy reports whether a strategy name means the token defied
// every separator convention and only its raw digits were kept.
func IsFallbackStrategy(strategy string) bool {
	return strategy == "digits_only" || strategy == "digits_fallback"
}

// ParseStringStrategy converts one raw string token and additionally names
// the disambiguation strategy that resolved it, for diagnostics and fallback
// accounting.
func ParseStringStrategy(s string) (float64, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "empty"
	}
	if _, ok := specialTokens[strings.ToLower(s)]; ok {
		return 0, "sentinel"
	}

	original := s

	// Scientific notation fast path. Comma is tolerated as decimal mark.
	// A failed or overflowing parse falls through to the strategies below.
	if reScientific.MatchString(s) {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return f, "scientific"
		}
	}

	percent := strings.Contains(s, "%")
	if percent {
		s = strings.ReplaceAll(s, "%", "")
	}

	s = reCurrency.ReplaceAllString(s, "")
	s = reQualifier.ReplaceAllString(s, "")
	s = reBrackets.ReplaceAllString(s, "")

	// Collapse runs of whitespace, then drop everything that cannot be part
	// of a number in any supported convention.
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimSpace(reKeep.ReplaceAllString(s, ""))
	if s == "" {
		return 0, "empty"
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimSpace(s[1:])
	} else if strings.HasPrefix(s, "+") {
		s = strings.TrimSpace(s[1:])
	}
	if s == "" {
		return 0, "empty"
	}

	result, strategy, err := classifySeparators(s)
	if err != nil {
		// Last resort: keep whatever digits the original token carried.
		digits := reNonDigit.ReplaceAllString(original, "")
		if digits == "" {
			return 0, "digits_fallback"
		}
		f, ferr := strconv.ParseFloat(digits, 64)
		if ferr != nil {
			return 0, "digits_fallback"
		}
		result, strategy = f, "digits_fallback"
	}

	if negative {
		result = -result
	}
	if percent {
		result /= 100
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, strategy
	}

	slog.Debug("numeric token converted",
		slog.String("strategy", strategy),
		slog.String("input", original),
		slog.Float64("output", result))

	return result, strategy
}

// classifySeparators resolves the remaining digit/separator string against the
// ordered disambiguation strategies. The priority order is load-bearing:
// datasets cleaned by earlier versions of this tool depend on it, so seemingly
// inconsistent fallback branches are kept as they are.
func classifySeparators(s string) (float64, string, error) {
	switch {
	case reDigitsOnly.MatchString(s):
		f, err := parseFinite(s)
		return f, "integer", err

	case reGermanDec.MatchString(s):
		// 1.234.567,89 - dots group thousands, comma is the decimal mark.
		f, err := parseFinite(strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", "."))
		return f, "german", err

	case reFrenchDec.MatchString(s):
		// 1 234 567,89
		f, err := parseFinite(strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", "."))
		return f, "french", err

	case reSwissDec.MatchString(s):
		// 1'234'567.89
		f, err := parseFinite(strings.ReplaceAll(s, "'", ""))
		return f, "swiss", err

	case reAmericanDec.MatchString(s):
		// 1,234,567.89
		f, err := parseFinite(strings.ReplaceAll(s, ",", ""))
		return f, "american", err

	case reGermanGrp.MatchString(s):
		f, err := parseFinite(strings.ReplaceAll(s, ".", ""))
		return f, "german_grouped", err

	case reFrenchGrp.MatchString(s):
		f, err := parseFinite(strings.ReplaceAll(s, " ", ""))
		return f, "french_grouped", err

	case reSwissGrp.MatchString(s):
		f, err := parseFinite(strings.ReplaceAll(s, "'", ""))
		return f, "swiss_grouped", err

	case reAmericanGrp.MatchString(s):
		// Covers single groups like 1,493 as well.
		f, err := parseFinite(strings.ReplaceAll(s, ",", ""))
		return f, "american_grouped", err

	case reSingleSep.MatchString(s):
		return classifySingleSeparator(s)

	case strings.Contains(s, ".") && strings.Contains(s, ","):
		return classifyMixedSeparators(s)

	default:
		digits := reNonDigit.ReplaceAllString(s, "")
		if digits == "" {
			return 0, "", errNoDigits
		}
		f, err := parseFinite(digits)
		return f, "digits_only", err
	}
}

// classifySingleSeparator handles the genuinely ambiguous case of one comma
// or one dot between two digit runs.
func classifySingleSeparator(s string) (float64, string, error) {
	if strings.Contains(s, ",") {
		intPart, fracPart, _ := strings.Cut(s, ",")
		switch {
		case len(fracPart) == 3 && len(intPart) <= 4:
			// 1,493 is a thousands group, not one point four nine three.
			f, err := parseFinite(intPart + fracPart)
			return f, "comma_thousands", err
		case len(fracPart) <= 2:
			// 1,5 or 123,45 - European decimal comma.
			f, err := parseFinite(intPart + "." + fracPart)
			return f, "comma_decimal", err
		case len(fracPart) > 3:
			// Four or more fractional digits never group thousands.
			f, err := parseFinite(intPart + "." + fracPart)
			return f, "comma_long_decimal", err
		default:
			f, err := parseFinite(intPart + fracPart)
			return f, "comma_thousands_fallback", err
		}
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	switch {
	case len(fracPart) == 3:
		if len(intPart) >= 4 {
			// 1234.567 reads as a European thousands group.
			f, err := parseFinite(intPart + fracPart)
			return f, "dot_thousands", err
		}
		// 12.345 reads as an American decimal.
		f, err := parseFinite(s)
		return f, "dot_decimal", err
	case len(fracPart) <= 2:
		f, err := parseFinite(s)
		return f, "dot_decimal", err
	default:
		f, err := parseFinite(s)
		return f, "dot_decimal_default", err
	}
}

// classifyMixedSeparators handles tokens carrying both a dot and a comma that
// none of the grouped patterns matched. Whichever separator occurs last is
// the decimal mark; the prefix is stripped of all grouping characters.
func classifyMixedSeparators(s string) (float64, string, error) {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	sep := lastDot
	strategy := "mixed_american"
	if lastComma > lastDot {
		sep = lastComma
		strategy = "mixed_european"
	}

	cleaner := strings.NewReplacer(".", "", ",", "", " ", "", "'", "")
	before := cleaner.Replace(s[:sep])
	after := s[sep+1:]

	f, err := parseFinite(before + "." + after)
	return f, strategy, err
}

var errNoDigits = fmt.Errorf("no digits in token")

// parseFinite wraps strconv.ParseFloat, treating overflow to Inf as failure.
func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("non-finite value from %q", s)
	}
	return f, nil
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
