// Package phone normalises user-entered phone numbers.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var ErrInvalid = errors.New("invalid phone number")

// DefaultRegion applies to numbers written in national format ("0912 345 678").
const DefaultRegion = "VN"

// Normalize parses raw in region and returns it in E.164 form.
func Normalize(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalid
	}
	if region == "" {
		region = DefaultRegion
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return "", ErrInvalid
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return "", ErrInvalid
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Equal reports whether a and b denote the same number. Unparseable input is
// never equal to anything.
func Equal(a, b, region string) bool {
	na, err := Normalize(a, region)
	if err != nil {
		return false
	}
	nb, err := Normalize(b, region)
	if err != nil {
		return false
	}
	return na == nb
}
