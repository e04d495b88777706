package viewmodel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale         = "en-US"
	DefaultDateLayout     = "1/2/2006"
	DefaultDateTimeLayout = "1/2/2006, 3:04:05 PM"

	// Placeholder shown for absent optional metrics.
	Placeholder = "-"
	// InvalidDate is shown for timestamps that cannot be parsed.
	InvalidDate = "Invalid Date"

	maxFractionDigits = 3
)

// Accepted timestamp layouts, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Formatter renders numbers and timestamps for display.
type Formatter struct {
	printer        *message.Printer
	location       *time.Location
	dateLayout     string
	dateTimeLayout string
}

func NewFormatter(locale, timezone, dateLayout, dateTimeLayout string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid display locale %q: %w", locale, err)
	}
	loc := time.UTC
	if timezone != "" {
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid display timezone %q: %w", timezone, err)
		}
	}
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	if dateTimeLayout == "" {
		dateTimeLayout = DefaultDateTimeLayout
	}
	return &Formatter{
		printer:        message.NewPrinter(tag),
		location:       loc,
		dateLayout:     dateLayout,
		dateTimeLayout: dateTimeLayout,
	}, nil
}

var defaultFormatter = &Formatter{
	printer:        message.NewPrinter(language.AmericanEnglish),
	location:       time.UTC,
	dateLayout:     DefaultDateLayout,
	dateTimeLayout: DefaultDateTimeLayout,
}

// DefaultFormatter formats for en-US in UTC.
func DefaultFormatter() *Formatter {
	return defaultFormatter
}

// FormatNumber formats n with the default en-US formatter.
func FormatNumber(n float64) string {
	return defaultFormatter.Number(n)
}

// Number groups the absolute value with locale separators and prefixes a
// plain "-" for negative values, so the sign placement never depends on
// the locale.
func (f *Formatter) Number(n float64) string {
	prefix := ""
	if n < 0 {
		prefix = "-"
	}
	abs := roundHalfUp(math.Abs(n), maxFractionDigits)
	return prefix + f.printer.Sprintf("%v", number.Decimal(abs, number.MaxFractionDigits(maxFractionDigits)))
}

// roundHalfUp rounds v to digits fraction digits on its shortest decimal
// representation, with ties going up.
func roundHalfUp(v float64, digits int) float64 {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s)-dot-1 <= digits {
		return v
	}

	kept := []byte(s[:dot] + s[dot+1:dot+1+digits])
	if s[dot+1+digits] >= '5' {
		i := len(kept) - 1
		for ; i >= 0 && kept[i] == '9'; i-- {
			kept[i] = '0'
		}
		if i < 0 {
			kept = append([]byte{'1'}, kept...)
		} else {
			kept[i]++
		}
	}

	whole := len(kept) - digits
	out := string(kept[:whole])
	if digits > 0 {
		out += "." + string(kept[whole:])
	}
	r, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return v
	}
	return r
}

// Percent formats n as a number followed by "%".
func (f *Formatter) Percent(n float64) string {
	return f.Number(n) + "%"
}

// OptionalNumber formats n or returns the placeholder when n is nil.
func (f *Formatter) OptionalNumber(n *float64) string {
	if n == nil {
		return Placeholder
	}
	return f.Number(*n)
}

func (f *Formatter) Date(ts string) string {
	return f.timestamp(ts, f.dateLayout)
}

func (f *Formatter) DateTime(ts string) string {
	return f.timestamp(ts, f.dateTimeLayout)
}

func (f *Formatter) timestamp(ts, layout string) string {
	t, ok := parseTimestamp(ts)
	if !ok {
		return InvalidDate
	}
	return t.In(f.location).Format(layout)
}

func parseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
