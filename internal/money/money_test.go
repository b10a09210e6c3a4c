package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"dot separator", "12.34", 1234, false},
		{"comma separator", "12,34", 1234, false},
		{"no fraction", "50", 5000, false},
		{"single fraction digit", "7.5", 750, false},
		{"third digit rounds down", "12.344", 1234, false},
		{"third digit rounds up", "12.345", 1235, false},
		{"leading whitespace", "  9.99", 999, false},
		{"empty", "", 0, true},
		{"zero", "0", 0, true},
		{"zero with fraction", "0.00", 0, true},
		{"negative", "-5", 0, true},
		{"explicit plus", "+5", 0, true},
		{"letters", "12a.50", 0, true},
		{"two separators", "1.2.3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Cents)
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "12.34", Money{Cents: 1234}.String())
	assert.Equal(t, "0.05", Money{Cents: 5}.String())
	assert.Equal(t, "1000.00", Money{Cents: 100000}.String())
	assert.Equal(t, "-3.10", Money{Cents: -310}.String())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(Money{Cents: 8000})
	require.NoError(t, err)
	assert.Equal(t, "8000", string(raw))

	var m Money
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, int64(8000), m.Cents)
}

func TestMoney_Validate(t *testing.T) {
	assert.NoError(t, Money{Cents: 1}.Validate())
	assert.ErrorIs(t, Money{Cents: 0}.Validate(), ErrInvalidAmount)
	assert.ErrorIs(t, Money{Cents: -100}.Validate(), ErrInvalidAmount)
}
