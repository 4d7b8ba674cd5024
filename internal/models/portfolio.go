package models

// Portfolio is the cash/shares snapshot for one run. The pipeline reads it;
// only the decision-execution side ever changes it.
type Portfolio struct {
	Cash  float64 `json:"cash"`
	Stock int64   `json:"stock"`
}

// TotalValue is cash plus the position marked at the given price.
func (p Portfolio) TotalValue(latestClose float64) float64 {
	return p.Cash + float64(p.Stock)*latestClose
}
