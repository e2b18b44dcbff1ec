package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEquivalencies(t *testing.T) {
	t.Parallel()

	eq := ComputeEquivalencies(150)
	require.False(t, eq.IsEmpty)
	require.Len(t, eq.Results, 2)
	assert.InDelta(t, 781.25, eq.Results[0].Value, 0.01)
	assert.Equal(t, "781", eq.Results[0].FormattedValue)
	assert.InDelta(t, 18248.18, eq.Results[1].Value, 0.01)
	assert.Equal(t, "18,248", eq.Results[1].FormattedValue)
	assert.Equal(t, "Equivalent to driving ~781 miles or charging ~18,248 smartphones", eq.DisplayText)
}

func TestComputeEquivalencies_Empty(t *testing.T) {
	t.Parallel()

	for _, kg := range []float64{0, 0.5, -3, math.NaN(), math.Inf(1)} {
		assert.True(t, ComputeEquivalencies(kg).IsEmpty, kg)
	}
	assert.False(t, ComputeEquivalencies(MinEquivalencyKg).IsEmpty)
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "17.00", FormatKg(17))
	assert.Equal(t, "0.17", FormatKg(0.17))
	assert.Equal(t, "1234.57", FormatKg(1234.567))
	assert.Equal(t, "43%", FormatPercent(42.5000001))
	assert.Equal(t, "0%", FormatPercent(0))
	assert.Equal(t, "18,248", FormatCount(18248))
	assert.Equal(t, "~1.5 million", FormatApprox(1_500_000))
	assert.Equal(t, "~2.0 billion", FormatApprox(2_000_000_000))
	assert.Equal(t, "5", FormatApprox(5.2))
	assert.Equal(t, "miles_driven", EquivalencyMilesDriven.String())
}
