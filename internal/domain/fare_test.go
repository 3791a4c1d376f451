package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFare(t *testing.T) {
	tests := []struct {
		name       string
		seats      int
		priceCents int
		wantCents  int
	}{
		{name: "Three seats at 500.00", seats: 3, priceCents: 50000, wantCents: 155000},
		{name: "Single seat", seats: 1, priceCents: 12550, wantCents: 17550},
		{name: "Odd price has no rounding drift", seats: 7, priceCents: 333, wantCents: 7331},
		{name: "Zero price still carries the fee", seats: 2, priceCents: 0, wantCents: 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCents, Fare(tt.seats, tt.priceCents))
		})
	}
}
