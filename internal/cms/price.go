package cms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnparsablePrice is returned when a CMS price string has no digits.
var ErrUnparsablePrice = errors.New("unparsable price")

// ParsePriceCents cleans a CMS display price such as "9,50 €", "$1,234.56"
// or "1.234,56" into integer cents. The last separator followed by one or two
// digits is taken as the decimal point; everything else is grouping noise.
func ParsePriceCents(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer(" ", "", " ", "", "&nbsp;", "", " ", "").Replace(s)

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnparsablePrice, raw)
	}

	lastSep := strings.LastIndexAny(s, ".,")
	intPart := s
	fracPart := ""
	if lastSep >= 0 {
		tail := s[lastSep+1:]
		if len(tail) >= 1 && len(tail) <= 2 {
			intPart = s[:lastSep]
			fracPart = tail
		}
	}
	intPart = strings.NewReplacer(".", "", ",", "").Replace(intPart)
	if intPart == "" {
		intPart = "0"
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparsablePrice, raw)
	}

	var cents int64
	switch len(fracPart) {
	case 0:
	case 1:
		n, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparsablePrice, raw)
		}
		cents = n * 10
	case 2:
		n, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparsablePrice, raw)
		}
		cents = n
	}

	return units*100 + cents, nil
}
