package booking

// TotalPriceCents computes the booking price from the hourly rate snapshot.
// Fractional hours are billed pro rata, rounded to the nearest cent.
func TotalPriceCents(pricePerHourCents int64, r TimeRange) int64 {
	hours := r.Duration().Hours()
	return int64(float64(pricePerHourCents)*hours + 0.5)
}
