package http

import (
	"net/http"

	"diario/internal/core"
	applog "diario/internal/log"
)

type apiItem struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	ItemName  string  `json:"item_name"`
	ItemType  string  `json:"item_type"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type apiExpenses struct {
	Date  string    `json:"date"`
	Items []apiItem `json:"items"`
	Total float64   `json:"total"`
}

type apiTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

func toAPIItem(l core.Line) apiItem {
	return apiItem{
		ID:        l.ID,
		Date:      l.EntryDate,
		ItemName:  l.ItemName,
		ItemType:  l.ItemType.String(),
		Quantity:  l.Quantity,
		Unit:      l.Unit,
		UnitPrice: l.UnitPrice,
		LineTotal: l.LineTotal.InexactFloat64(),
	}
}

func (s *Server) handleAPIExpenses(w http.ResponseWriter, r *http.Request) {
	date, lines, total, err := s.expenses.DayItems(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		s.failJSON(w, r, err, applog.OpList)
		return
	}

	items := make([]apiItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, toAPIItem(l))
	}
	NewResponse().JSON(apiExpenses{
		Date:  date,
		Items: items,
		Total: total.InexactFloat64(),
	}).Write(w)
}

func (s *Server) handleAPITotal(w http.ResponseWriter, r *http.Request) {
	date, total, err := s.expenses.DayTotal(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		s.failJSON(w, r, err, applog.OpList)
		return
	}
	NewResponse().JSON(apiTotal{Date: date, Total: total.InexactFloat64()}).Write(w)
}
