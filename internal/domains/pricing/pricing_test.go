package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/internal/domains/pricing"
	"hotel/shared/failure"
)

func TestComputeBase(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		nights   int
		expected float64
		wantErr  bool
	}{
		{name: "two nights", rate: 50, nights: 2, expected: 100},
		{name: "rounded to cents", rate: 33.333, nights: 3, expected: 100},
		{name: "free room", rate: 0, nights: 1, expected: 0},
		{name: "zero nights", rate: 50, nights: 0, wantErr: true},
		{name: "negative rate", rate: -1, nights: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.ComputeBase(tt.rate, tt.nights)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, failure.KindInvalidInput, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 0.001)
		})
	}
}

func TestComputeFinal(t *testing.T) {
	got, err := pricing.ComputeFinal(100, 15)
	require.NoError(t, err)
	assert.InDelta(t, 115.0, got, 0.001)

	got, err = pricing.ComputeFinal(100, 0)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got, 0.001)

	got, err = pricing.ComputeFinal(0.1, 0.2)
	require.NoError(t, err)
	assert.Equal(t, 0.3, got)

	_, err = pricing.ComputeFinal(100, -0.01)
	require.Error(t, err)
	assert.Equal(t, failure.KindInvalidInput, failure.GetKind(err))
}
