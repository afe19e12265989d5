package http

import (
	"net/http"
	"net/url"
	"strconv"

	"diario/internal/core"
	applog "diario/internal/log"
	"diario/internal/services"
)

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	e, err := s.expenses.AddExpense(r.Context(), services.AddExpenseInput{
		EntryDate: r.PostForm.Get("entry_date"),
		ItemName:  sanitizeInput(r.PostForm.Get("item_name")),
		ItemType:  r.PostForm.Get("item_type"),
		Quantity:  r.PostForm.Get("quantity"),
		UnitPrice: r.PostForm.Get("unit_price"),
	})
	if err != nil {
		s.fail(w, r, err, applog.OpCreate)
		return
	}
	s.metrics.ExpensesCreated.Inc()

	Redirect(dayURL(e.EntryDate)).Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("item_id"), 10, 64)
	if err != nil {
		NotFoundError("expense not found").Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	// resolved before deleting so a bad date leaves the row alone
	date, err := core.NormalizeDate(r.PostForm.Get("entry_date"))
	if err != nil {
		s.fail(w, r, err, applog.OpDelete)
		return
	}

	removed, err := s.expenses.DeleteExpense(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, applog.OpDelete)
		return
	}
	if removed {
		s.metrics.ExpensesDeleted.Inc()
	}

	Redirect(dayURL(date)).Write(w)
}

func dayURL(date string) string {
	return "/?date=" + url.QueryEscape(date)
}
