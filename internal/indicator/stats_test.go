package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-9)
	assert.InDelta(t, 7.0, Mean([]float64{7}), 1e-9)
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestStd(t *testing.T) {
	// Sample standard deviation, n-1 denominator.
	assert.InDelta(t, math.Sqrt(5.0/3.0), Std([]float64{1, 2, 3, 4}), 1e-9)
	assert.InDelta(t, 0.0, Std([]float64{5, 5, 5}), 1e-9)
	assert.True(t, math.IsNaN(Std([]float64{1})))
	assert.True(t, math.IsNaN(Std(nil)))
}

func TestQuantile(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	tests := []struct {
		name string
		q    float64
		want float64
	}{
		{name: "median interpolates between ranks", q: 0.5, want: 2.5},
		{name: "q90 interpolates the upper tail", q: 0.9, want: 3.7},
		{name: "q75", q: 0.75, want: 3.25},
		{name: "minimum", q: 0, want: 1},
		{name: "maximum", q: 1, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Quantile(values, tt.q), 1e-9)
		})
	}
}

func TestQuantile_UnsortedInput(t *testing.T) {
	// The input order must not matter and the input must stay untouched.
	values := []float64{4, 1, 3, 2}
	assert.InDelta(t, 2.5, Quantile(values, 0.5), 1e-9)
	assert.Equal(t, []float64{4, 1, 3, 2}, values)
}

func TestQuantile_Invalid(t *testing.T) {
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	assert.True(t, math.IsNaN(Quantile([]float64{1, 2}, -0.1)))
	assert.True(t, math.IsNaN(Quantile([]float64{1, 2}, 1.1)))
}
