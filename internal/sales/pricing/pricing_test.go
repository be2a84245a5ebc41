package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 2, 100, 0, 200},
		{"ten percent", 2, 100, 10, 180},
		{"full discount", 3, 50, 100, 0},
		{"zero quantity", 0, 99.99, 25, 0},
		{"zero price", 10, 0, 50, 0},
		{"fractional price", 1, 50, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LineTotal(tt.quantity, tt.price, tt.discount), 1e-9)
		})
	}
}

func TestLineTotalZeroDiscountEqualsGross(t *testing.T) {
	for q := 0.0; q <= 10; q++ {
		for _, p := range []float64{0, 0.5, 1, 99.99, 1000} {
			assert.InDelta(t, q*p, LineTotal(q, p, 0), 1e-9)
		}
	}
}

func TestDiscountAmount(t *testing.T) {
	assert.InDelta(t, 20, DiscountAmount(2, 100, 10), 1e-9)
	assert.InDelta(t, 0, DiscountAmount(2, 100, 0), 1e-9)
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 10.56, RoundCurrency(10.556))
	assert.Equal(t, 10.55, RoundCurrency(10.554))
	assert.Equal(t, 0.0, RoundCurrency(0))
	assert.Equal(t, 230.0, RoundCurrency(2*100*0.9+1*50))
}
