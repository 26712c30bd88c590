package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestFormatPercentChange(t *testing.T) {
	tests := []struct {
		name   string
		change *float64
		want   string
	}{
		{"negative", floatPtr(-3.456), "📉 -3.46%"},
		{"positive", floatPtr(5.9), "📈 5.90%"},
		{"zero is up", floatPtr(0), "📈 0.00%"},
		{"missing", nil, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatPercentChange(tt.change))
		})
	}
}

func TestFormatPriceUS(t *testing.T) {
	require.Equal(t, "50,500", FormatPriceUS(50500.12, false))
	require.Equal(t, "3.14", FormatPriceUS(3.14159, false))
	require.Equal(t, "0.000500", FormatPriceUS(0.0005, false))
	require.Equal(t, "0.00000042", FormatPriceUS(0.00000042, false))
	require.Equal(t, "50,500", FormatPriceUS(50500.12, true))
	require.Equal(t, "3\\.14", FormatPriceUS(3.14159, true))
}

func TestFormatAmountUS(t *testing.T) {
	require.Equal(t, "995,000,000,000", FormatAmountUS(995000000000))
	require.Equal(t, "1,235", FormatAmountUS(1234.56))
}
