// path: report/mask_test.go
package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPhoneBuildsIncrementally(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"5", "(5"},
		{"55", "(55"},
		{"559", "(55) 9"},
		{"5599999", "(55) 99999"},
		{"55999998", "(55) 99999-8"},
		{"55999998888", "(55) 99999-8888"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MaskPhone(tc.in), "input %q", tc.in)
	}
}

func TestMaskPhoneTruncatesExcessDigits(t *testing.T) {
	// 17 raw digits: anything past the 11th is silently dropped
	assert.Equal(t, "(55) 99999-8888", MaskPhone("55999998888801234"))
}

func TestMaskPhoneStripsNonDigits(t *testing.T) {
	assert.Equal(t, "(67) 99123-4567", MaskPhone("(67) 99abc123-4567xx"))
}

func TestMaskCPF(t *testing.T) {
	cases := []struct{ in, want string }{
		{"555", "555"},
		{"555999", "555.999"},
		{"555999998", "555.999.998"},
		{"55599999888", "555.999.998-88"},
		{"555.999.998-88", "555.999.998-88"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MaskCPF(tc.in), "input %q", tc.in)
	}
}

func TestMaskRG(t *testing.T) {
	cases := []struct{ in, want string }{
		{"12", "12"},
		{"12345", "12.345"},
		{"12345678", "12.345.678"},
		{"123456789", "12.345.678-9"},
		{"1234567890123", "12.345.678-9"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MaskRG(tc.in), "input %q", tc.in)
	}
}
