package http

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"diario/internal/core"
	applog "diario/internal/log"
	"diario/internal/services"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	}).Write(w)
}

// handleReady checks the database and the templates.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if err := s.expenses.Ready(ctx); err != nil {
		checks["database"] = fmt.Sprintf("failed: %v", err)
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	NewResponse().Status(httpStatus).JSON(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}

type indexData struct {
	services.DayView
	ItemTypes []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.templates == nil {
		s.requestLogger(r).ErrorContext(ctx, "Templates not loaded", applog.FieldPath, r.URL.Path)
		InternalServerError("templates not loaded").Write(w)
		return
	}

	view, err := s.expenses.DayView(ctx, r.URL.Query().Get("date"))
	if err != nil {
		s.fail(w, r, err, "load daily view")
		return
	}

	data := indexData{DayView: view}
	for _, t := range core.ItemTypes() {
		data.ItemTypes = append(data.ItemTypes, t.String())
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.requestLogger(r).WithComponent(applog.ComponentTemplate).ErrorContext(ctx, "Index template execution failed",
			applog.FieldError, err,
			applog.FieldEntryDate, view.Date)
		InternalServerError("failed to render page").Write(w)
		return
	}
	NewResponse().BodyHTML(buf.String()).Write(w)
}

func (s *Server) handleDownloadMonth(w http.ResponseWriter, r *http.Request) {
	month, lines, err := s.expenses.MonthExport(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		s.fail(w, r, err, "export month")
		return
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(core.ExportRecords(lines)); err != nil {
		s.fail(w, r, fmt.Errorf("write csv: %w", err), "export month")
		return
	}

	s.requestLogger(r).InfoContext(r.Context(), "Month exported",
		applog.FieldOperation, applog.OpExport,
		applog.FieldMonth, month.Label,
		"rows", len(lines))

	NewResponse().
		Header("Content-Type", "text/csv; charset=utf-8").
		Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", month.Filename())).
		Body(buf.Bytes()).
		Write(w)
}

// fail maps err to a response: bad input is a 400 with its message,
// anything else is logged and becomes a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, operation string) {
	if core.IsClientError(err) {
		s.requestLogger(r).DebugContext(r.Context(), "Rejected request",
			applog.FieldOperation, operation,
			applog.FieldError, err)
		BadRequestError(clientMessage(err)).Write(w)
		return
	}
	s.requestLogger(r).ErrorContext(r.Context(), "Request failed",
		applog.FieldOperation, operation,
		applog.FieldPath, r.URL.Path,
		applog.FieldError, err)
	InternalServerError("internal error").Write(w)
}

// failJSON is fail for the /api routes.
func (s *Server) failJSON(w http.ResponseWriter, r *http.Request, err error, operation string) {
	if core.IsClientError(err) {
		JSONError(http.StatusBadRequest, clientMessage(err)).Write(w)
		return
	}
	s.requestLogger(r).ErrorContext(r.Context(), "Request failed",
		applog.FieldOperation, operation,
		applog.FieldPath, r.URL.Path,
		applog.FieldError, err)
	JSONError(http.StatusInternalServerError, "internal error").Write(w)
}

// clientMessage keeps the offending value for dates, which is what the
// user needs to see.
func clientMessage(err error) string {
	var dateErr *core.InvalidDateError
	if errors.As(err, &dateErr) {
		return dateErr.Error()
	}
	for _, target := range []error{
		core.ErrQuantityRequired,
		core.ErrNegativeAmount,
		core.ErrInvalidItemType,
		core.ErrEmptyItemName,
		core.ErrUnitPriceRequired,
		core.ErrInvalidNumber,
		core.ErrInvalidDateFormat,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

func (s *Server) requestLogger(r *http.Request) *applog.Logger {
	return applog.FromContext(r.Context())
}
