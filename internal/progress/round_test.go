package progress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOneDecimal(t *testing.T) {
	assert.Equal(t, 0.3, NormalizeOneDecimal(0.1+0.2))
	assert.Equal(t, 1.3, NormalizeOneDecimal(1.25))
	assert.Equal(t, 2.0, NormalizeOneDecimal(1.96))
	assert.Equal(t, 0.0, NormalizeOneDecimal(0.04))
}

func TestRoundTwoDecimals(t *testing.T) {
	assert.Equal(t, 1.24, RoundTwoDecimals(1.2371))
	assert.Equal(t, 0.13, RoundTwoDecimals(0.125))
	assert.Equal(t, 3.0, RoundTwoDecimals(2.999))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, percent(5, 0))
	assert.Equal(t, 50, percent(1, 2))
	assert.Equal(t, 67, percent(2, 3))
	assert.Equal(t, 17, percent(1, 6)) // 16.67
}

func TestRounding_NonFiniteCountsAsZero(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeOneDecimal(math.Inf(1)))
	assert.Equal(t, 0.0, NormalizeOneDecimal(math.NaN()))
	assert.Equal(t, 0.0, RoundTwoDecimals(math.Inf(-1)))
	assert.Equal(t, 1e308, NormalizeOneDecimal(1e308))
}

func TestPercent_NonFiniteRatio(t *testing.T) {
	assert.Equal(t, 0, percent(math.Inf(1), math.Inf(1)))
	assert.Equal(t, 0, percent(math.NaN(), 1))
	assert.Equal(t, 0, percent(1e308, 1e-300))
}
