package core

import (
	"log/slog"
	"math"
	"sort"
	"time"
)

// DailyPoint is one plotted day: the calendar date and the summed net amount
// of every transaction on it.
type DailyPoint struct {
	Date  Date
	Total Money
}

// DailySeries is a chronological day series plus the axis hints the chart
// needs. The Y axis always starts at zero; YMax is in whole currency units.
type DailySeries struct {
	Points   []DailyPoint
	Start    Date // padded two days before the first point
	End      Date // padded two days after the last point
	Ticks    int
	YMax     int64
	MaxTotal Money // largest day total before axis rounding
}

// AggregateDaily groups the given transactions by calendar day and sums their
// net amounts. Only days with a strictly positive sum are plotted; zero and
// negative day totals are dropped. Transactions without a valid date are
// skipped. now anchors the sentinel window returned for an empty series.
func AggregateDaily(filtered []Transaction, now time.Time) DailySeries {
	totals := make(map[string]int64)
	dates := make(map[string]Date)
	for _, t := range filtered {
		if t.Date.Validate() != nil {
			slog.Warn("Skipping transaction without a valid date", "transaction_id", t.ID)
			continue
		}
		key := t.Date.Key()
		totals[key] += t.NetAmount().Cents
		dates[key] = t.Date
	}

	points := make([]DailyPoint, 0, len(totals))
	var maxCents int64
	for key, cents := range totals {
		if cents <= 0 {
			continue
		}
		points = append(points, DailyPoint{Date: dates[key], Total: Money{Cents: cents}})
		if cents > maxCents {
			maxCents = cents
		}
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date.Time)
	})

	if len(points) == 0 {
		// Sentinel "no data" window: today through tomorrow, unit Y range.
		today := Date{Time: now}
		return DailySeries{
			Start: today,
			End:   today.AddDays(1),
			Ticks: 2,
			YMax:  1,
		}
	}

	ticks := len(totals)
	if ticks < 2 {
		ticks = 2
	}

	return DailySeries{
		Points:   points,
		Start:    points[0].Date.AddDays(-2),
		End:      points[len(points)-1].Date.AddDays(2),
		Ticks:    ticks,
		YMax:     roundAxisMax(maxCents),
		MaxTotal: Money{Cents: maxCents},
	}
}

// roundAxisMax pads the largest day total by 10% (at least one unit) and
// rounds up to the next multiple of 10 below 100 units, otherwise 100.
func roundAxisMax(maxCents int64) int64 {
	units := float64(maxCents) / 100.0
	padding := units * 0.1
	if padding < 1.0 {
		padding = 1.0
	}
	target := units + padding
	if target < 100 {
		return int64(math.Ceil(target/10.0)) * 10
	}
	return int64(math.Ceil(target/100.0)) * 100
}
