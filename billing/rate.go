package billing

import "github.com/shopspring/decimal"

// ComputeMTK returns metric-ton-kilometers for a shipment line.
func ComputeMTK(mt, km float64) float64 {
	return mt * km
}

// ComputeAmount prices a line against a slab. No rounding here; Round2
// is applied only at the report boundary.
func ComputeAmount(rate float64, isMTK bool, mt, km float64) (mtk, amount float64) {
	mtk = ComputeMTK(mt, km)
	if isMTK {
		return mtk, rate * mtk
	}
	return mtk, rate * mt
}

// Round2 rounds half-up to two decimals.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// RatePerMT is a display value only. ok is false when qty is zero, in
// which case the caller renders blank instead of dividing.
func RatePerMT(totalAmount, totalQty float64) (float64, bool) {
	if totalQty == 0 {
		return 0, false
	}
	return totalAmount / totalQty, true
}
