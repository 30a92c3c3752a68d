/*
forecast.go - Aggregate demand across many subscriptions

PURPOSE:
  Procurement needs to know how much product to source per day. This folds
  every subscription's resolved quantities into per-day totals over a
  horizon. Totals use decimal arithmetic so fractional quantities (half
  liters) sum exactly.
*/
package subscription

import "github.com/shopspring/decimal"

// DailyDemand is the aggregate for one calendar day.
type DailyDemand struct {
	Date       Date
	Total      decimal.Decimal
	Deliveries int
}

// ForecastDemand sums resolved quantities per day over
// [start, start+horizonDays) across all given subscriptions. Days with no
// deliveries are included with a zero total so the result always has
// exactly horizonDays entries.
func ForecastDemand(subs []*Subscription, start Date, horizonDays int) []DailyDemand {
	if horizonDays <= 0 {
		return nil
	}
	out := make([]DailyDemand, horizonDays)
	for i := 0; i < horizonDays; i++ {
		d := start.AddDays(i)
		day := DailyDemand{Date: d, Total: decimal.Zero}
		for _, s := range subs {
			qty := ComputeQty(d, s)
			if qty.IsPositive() {
				day.Total = day.Total.Add(qty)
				day.Deliveries++
			}
		}
		out[i] = day
	}
	return out
}
