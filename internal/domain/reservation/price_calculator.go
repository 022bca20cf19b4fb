package reservation

// OrderTotalCents sums a pre-order. Prices come from the menu service as-is.
func OrderTotalCents(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.SubtotalCents()
	}
	return total
}
