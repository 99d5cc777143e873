package tax

import (
	"math"

	"income-tax-tracker/internal/models"
)

// BasicDeduction is subtracted from net income when the filer has no other income source.
const BasicDeduction = 480000

// Bracket taxes the part of income in (Lower, Upper] at Rate.
type Bracket struct {
	Lower float64
	Upper float64
	Rate  float64
}

// Schedule is an ordered list of brackets; the last one is open ended.
type Schedule []Bracket

// DefaultSchedule is the income tax table. Income up to 200,000 is untaxed,
// above that the whole amount up to 1,950,000 is taxed at 5%.
var DefaultSchedule = Schedule{
	{Lower: 0, Upper: 200000, Rate: 0},
	{Lower: 0, Upper: 1950000, Rate: 0.05},
	{Lower: 1950000, Upper: 3300000, Rate: 0.1},
	{Lower: 3300000, Upper: 6950000, Rate: 0.2},
	{Lower: 6950000, Upper: 9000000, Rate: 0.23},
	{Lower: 9000000, Upper: 18000000, Rate: 0.33},
	{Lower: 18000000, Upper: math.Inf(1), Rate: 0.4},
}

// Tax returns the tax owed for income. The base of each bracket is the sum of
// every full lower bracket, accumulated left to right in float64 so results
// match the chained additions of the published table exactly. No rounding.
// The float64 conversions stop the compiler from fusing multiply-add.
func (s Schedule) Tax(income float64) float64 {
	base := 0.0
	for _, b := range s {
		if income <= b.Upper {
			if b.Rate == 0 {
				return base
			}
			return base + float64((income-b.Lower)*b.Rate)
		}
		base += float64((b.Upper - b.Lower) * b.Rate)
	}
	return base
}

// Tax applies DefaultSchedule.
func Tax(taxableIncome float64) float64 {
	return DefaultSchedule.Tax(taxableIncome)
}

func SumByCategory(entries []models.Entry, category models.Category) float64 {
	var sum float64
	for _, e := range entries {
		if e.Category == category {
			sum += e.Amount
		}
	}
	return sum
}

// TaxableIncome is income minus expenses, minus BasicDeduction unless
// hasOtherIncome is set. Never negative.
func TaxableIncome(entries []models.Entry, hasOtherIncome bool) float64 {
	taxable := SumByCategory(entries, models.Income) - SumByCategory(entries, models.Expense)
	if !hasOtherIncome {
		taxable -= BasicDeduction
	}
	if taxable > 0 {
		return taxable
	}
	return 0
}

type Summary struct {
	Income         float64 `json:"income"`
	Expense        float64 `json:"expense"`
	TaxableIncome  float64 `json:"taxable_income"`
	Tax            float64 `json:"tax"`
	HasOtherIncome bool    `json:"has_other_income"`
}

// Summarize recomputes every derived figure from scratch.
func Summarize(entries []models.Entry, hasOtherIncome bool) Summary {
	taxable := TaxableIncome(entries, hasOtherIncome)
	return Summary{
		Income:         SumByCategory(entries, models.Income),
		Expense:        SumByCategory(entries, models.Expense),
		TaxableIncome:  taxable,
		Tax:            Tax(taxable),
		HasOtherIncome: hasOtherIncome,
	}
}
