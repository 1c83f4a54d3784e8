package locale

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders numbers with a locale's decimal separator and no
// grouping, the way spreadsheet imports expect them.
type Formatter struct {
	tag       language.Tag
	separator string
}

// New creates a Formatter for a BCP 47 locale such as "de" or "pt-BR".
func New(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag, separator: DecimalSeparator(tag)}, nil
}

// DecimalSeparator returns the decimal mark used by tag.
func DecimalSeparator(tag language.Tag) string {
	s := message.NewPrinter(tag).Sprint(number.Decimal(1.5))
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return string(r)
		}
	}
	return "."
}

// Separator returns the formatter's decimal mark.
func (f *Formatter) Separator() string { return f.separator }

// Tag returns the formatter's locale.
func (f *Formatter) Tag() language.Tag { return f.tag }

// Format prints v with the shortest exact decimal digits and replaces the
// first decimal point. Digits are otherwise untouched.
func (f *Formatter) Format(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.Replace(s, ".", f.separator, 1)
}

// Parse reverses Format.
func (f *Formatter) Parse(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, f.separator, ".", 1), 64)
}
