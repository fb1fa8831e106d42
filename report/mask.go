// path: report/mask.go
package report

import "strings"

// Input masks for identification and phone numbers. Each mask strips
// non-digits, truncates to the document's digit count and rebuilds the
// display string incrementally, so partial input yields a partial mask.
// Non-conforming input is never rejected, only reduced to its digits.

const (
	phoneDigits = 11
	cpfDigits   = 11
	rgDigits    = 9
)

// MaskPhone formats a Brazilian mobile number as "(DD) DDDDD-DDDD".
func MaskPhone(raw string) string {
	d := digits(raw, phoneDigits)
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= 7:
		return "(" + d[:2] + ") " + d[2:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// MaskCPF formats a CPF as "DDD.DDD.DDD-DD".
func MaskCPF(raw string) string {
	d := digits(raw, cpfDigits)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "." + d[3:]
	case len(d) <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// MaskRG formats an RG as "DD.DDD.DDD-D".
func MaskRG(raw string) string {
	d := digits(raw, rgDigits)
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 5:
		return d[:2] + "." + d[2:]
	case len(d) <= 8:
		return d[:2] + "." + d[2:5] + "." + d[5:]
	default:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "-" + d[8:]
	}
}

func digits(raw string, max int) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == max {
			break
		}
	}
	return b.String()
}
