package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAccountCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"1", true},
		{"1.1", true},
		{"1.1.02", true},
		{"100-200", true},
		{"100-200.3", true},
		{"", false},
		{"1.", false},
		{".1", false},
		{"1..2", false},
		{"1.a", false},
		{"A100", false},
		{"1 2", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidAccountCode(tt.code))
		})
	}
}

func TestIsValidRFC(t *testing.T) {
	tests := []struct {
		name  string
		rfc   string
		valid bool
	}{
		{"persona fisica", "GODE561231GR8", true},
		{"persona moral", "EKU9003173C9", true},
		{"lowercase normalized", "gode561231gr8", true},
		{"generic placeholder", "XAXX010101000", false},
		{"foreign placeholder", "XEXX010101000", false},
		{"too short", "ABC123", false},
		{"bad date segment", "GODEX61231GR8", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidRFC(tt.rfc))
		})
	}
}

func TestNormalizeRFC(t *testing.T) {
	assert.Equal(t, "EKU9003173C9", NormalizeRFC("  eku9003173c9 "))
}

func TestIsValidFiscalPeriod(t *testing.T) {
	assert.True(t, IsValidFiscalPeriod(1))
	assert.True(t, IsValidFiscalPeriod(12))
	assert.False(t, IsValidFiscalPeriod(0))
	assert.False(t, IsValidFiscalPeriod(13))
}
