package validation

import (
	"regexp"
	"strings"
)

var (
	accountCodePattern = regexp.MustCompile(`^[0-9]+([-.][0-9]+)*$`)
	rfcPersonaPattern  = regexp.MustCompile(`^[A-ZÑ&]{4}[0-9]{6}[A-Z0-9]{3}$`)
	rfcMoralPattern    = regexp.MustCompile(`^[A-ZÑ&]{3}[0-9]{6}[A-Z0-9]{3}$`)
)

// genericRFCs are the SAT placeholder registrations that must never be stored
// as a real taxpayer id.
var genericRFCs = map[string]struct{}{
	"XAXX010101000": {},
	"XEXX010101000": {},
}

// IsValidAccountCode reports whether code is dot- or dash-separated numeric
// segments, e.g. "1.1.02" or "100-200".
func IsValidAccountCode(code string) bool {
	return accountCodePattern.MatchString(code)
}

// IsValidRFC reports whether rfc is a well-formed Mexican tax id for either a
// persona física (13 chars) or persona moral (12 chars). Generic placeholder
// RFCs are rejected.
func IsValidRFC(rfc string) bool {
	rfc = strings.ToUpper(strings.TrimSpace(rfc))
	if _, generic := genericRFCs[rfc]; generic {
		return false
	}
	switch len(rfc) {
	case 13:
		return rfcPersonaPattern.MatchString(rfc)
	case 12:
		return rfcMoralPattern.MatchString(rfc)
	default:
		return false
	}
}

// NormalizeRFC uppercases and trims an RFC for storage and comparison.
func NormalizeRFC(rfc string) string {
	return strings.ToUpper(strings.TrimSpace(rfc))
}

// IsValidFiscalPeriod reports whether month is a calendar month number.
func IsValidFiscalPeriod(month int) bool {
	return month >= 1 && month <= 12
}
