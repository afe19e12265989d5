package core

import "github.com/shopspring/decimal"

// Line is an expense prepared for display.
type Line struct {
	Expense
	Unit      string
	LineTotal decimal.Decimal
}

// NewLine derives the display unit and rounded line total for e.
func NewLine(e Expense) Line {
	return Line{
		Expense:   e,
		Unit:      e.ItemType.Unit(),
		LineTotal: e.LineTotal(),
	}
}

// DaySummary splits one day's expenses into fixed costs and everything else.
type DaySummary struct {
	Fixed      []Line
	Daily      []Line
	FixedTotal decimal.Decimal
	DailyTotal decimal.Decimal
	Total      decimal.Decimal
}

// Partition keeps input order inside each partition. Each partition total is
// the rounded sum of rounded line totals; Total rounds their sum again.
func Partition(expenses []Expense) DaySummary {
	s := DaySummary{
		FixedTotal: decimal.Zero,
		DailyTotal: decimal.Zero,
	}
	for _, e := range expenses {
		line := NewLine(e)
		if e.ItemType.IsFixed() {
			s.Fixed = append(s.Fixed, line)
			s.FixedTotal = s.FixedTotal.Add(line.LineTotal)
		} else {
			s.Daily = append(s.Daily, line)
			s.DailyTotal = s.DailyTotal.Add(line.LineTotal)
		}
	}
	s.FixedTotal = Round2(s.FixedTotal)
	s.DailyTotal = Round2(s.DailyTotal)
	s.Total = Round2(s.FixedTotal.Add(s.DailyTotal))
	return s
}

// Count returns the number of lines in both partitions.
func (s DaySummary) Count() int {
	return len(s.Fixed) + len(s.Daily)
}
