package domain

// ConvenienceFeeCents is the fixed surcharge added to every booking.
const ConvenienceFeeCents = 5000

// Fare computes the total booking amount in cents:
// seat count × price per seat + fixed convenience fee.
// The result is stored on the booking at creation time and never
// re-derived at confirmation, so presentation and commit always agree.
func Fare(seatCount, pricePerSeatCents int) int {
	return seatCount*pricePerSeatCents + ConvenienceFeeCents
}
