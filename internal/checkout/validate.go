package checkout

// CheckStock compares each line's requested quantity against available stock
// and collects every shortfall. All lines are inspected so the caller can
// report every offending product in one response.
func CheckStock(items []CartItem) []StockShortfall {
	shortfalls := []StockShortfall{}
	for _, item := range items {
		if item.Quantity > item.Stock {
			shortfalls = append(shortfalls, StockShortfall{
				ProductName: item.Name,
				Stock:       item.Stock,
			})
		}
	}
	return shortfalls
}

// TotalCostCents sums quantity times unit cost over the priced snapshot.
func TotalCostCents(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += int64(item.Quantity) * item.CostCents
	}
	return total
}

// RemainingFundsCents returns the balance left after paying for the cart.
// A negative value means the shopper is short by its magnitude.
func RemainingFundsCents(fundCents int64, items []CartItem) int64 {
	return fundCents - TotalCostCents(items)
}
