// Package phone normalizes and formats phone numbers.
//
// Numbers are handled as digit strings: a country code followed by a
// ten-digit national number (three-digit area code, seven-digit
// subscriber number). The trunk prefix "8" is treated as the default
// country code.
package phone

import (
	"regexp"
	"strings"
)

// DefaultCountryCode is used when a number carries no country code.
const DefaultCountryCode = "7"

// trunkPrefix is the domestic dialing prefix replaced by the country code.
const trunkPrefix = "8"

var (
	separatorsRegex    = regexp.MustCompile(`[\s()]+`)
	lettersPrefixRegex = regexp.MustCompile(`^[a-z]+-(\d+)$`)
	digitsRegex        = regexp.MustCompile(`^[0-9]+$`)
	whitespaceRegex    = regexp.MustCompile(`\s+`)
	prettyInputRegex   = regexp.MustCompile(`^\+?\d+$`)
)

// Normalize returns phone as a plain digit string including the country
// code. Separators (whitespace, parentheses), a leading "+" and line
// prefixes such as "fxo-" are dropped. Inputs that are not digits after
// cleanup are returned unchanged. An empty defaultCountryCode means
// DefaultCountryCode.
func Normalize(phone, defaultCountryCode string) string {
	if defaultCountryCode == "" {
		defaultCountryCode = DefaultCountryCode
	}

	n := strings.TrimPrefix(phone, "+")
	n = separatorsRegex.ReplaceAllString(n, "")

	// fxo-74957532001
	if m := lettersPrefixRegex.FindStringSubmatch(n); m != nil {
		n = m[1]
	}

	if !digitsRegex.MatchString(n) {
		return phone
	}

	switch {
	case len(n) >= 11:
		country := n[:len(n)-10]
		if country == trunkPrefix {
			country = defaultCountryCode
		}
		return country + n[len(n)-10:]
	case len(n) == 10:
		return defaultCountryCode + n
	default:
		return n
	}
}

// Pretty formats phone as "+7 (495) 753 20 01" when it normalizes to ten or
// eleven digits. Anything else is returned normalized but unformatted.
func Pretty(phone string) string {
	v := Normalize(phone, "")
	v = whitespaceRegex.ReplaceAllString(v, "")
	if !prettyInputRegex.MatchString(v) {
		return v
	}

	v = strings.TrimPrefix(v, "+")
	if len(v) < 10 || len(v) > 11 {
		return v
	}
	if len(v) == 10 {
		v = DefaultCountryCode + v
	}
	if strings.HasPrefix(v, trunkPrefix) {
		v = DefaultCountryCode + v[1:]
	}

	return "+" + v[:1] + " (" + v[1:4] + ") " + v[4:7] + " " + v[7:9] + " " + v[9:]
}
