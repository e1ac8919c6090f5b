package bookings

import (
	"math"
	"time"
)

// Fee rates applied on the nightly subtotal.
const (
	serviceFeeRate = 0.12
	taxRate        = 0.13
)

// Quote is the price breakdown for a stay.
type Quote struct {
	Nights      int
	NightlyRate float64
	Subtotal    float64
	CleaningFee float64
	ServiceFee  float64
	Taxes       float64
	Total       float64
}

// PriceStay derives the full price breakdown for a [checkIn, checkOut) stay.
// Service fee and taxes are each rounded independently before summing, so the
// total is not a single rounding of the exact value. Returns
// ErrInvalidDateRange when the range yields fewer than one night.
func PriceStay(nightlyRate, cleaningFee float64, checkIn, checkOut time.Time) (Quote, error) {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		return Quote{}, ErrInvalidDateRange
	}
	subtotal := nightlyRate * float64(nights)
	serviceFee := math.Round(subtotal * serviceFeeRate)
	taxes := math.Round(subtotal * taxRate)
	return Quote{
		Nights:      nights,
		NightlyRate: nightlyRate,
		Subtotal:    subtotal,
		CleaningFee: cleaningFee,
		ServiceFee:  serviceFee,
		Taxes:       taxes,
		Total:       subtotal + cleaningFee + serviceFee + taxes,
	}, nil
}
