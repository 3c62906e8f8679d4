package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/etnz/investilearn"
	"github.com/etnz/investilearn/date"
	"github.com/etnz/investilearn/renderer"
	"github.com/etnz/investilearn/sankey"
	"github.com/etnz/investilearn/yahoo"
	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type apiError struct {
	Error string `json:"error"`
	Tip   string `json:"tip,omitempty"`
}

// writeFetchError maps a store error to an API response. An unknown
// symbol gets the guidance shown by the dashboard search.
func (s *Server) writeFetchError(w http.ResponseWriter, symbol string, err error) {
	if errors.Is(err, investilearn.ErrUnknownSymbol) {
		writeJSON(w, http.StatusNotFound, apiError{
			Error: fmt.Sprintf("Could not find data for '%s'. Please check the ticker symbol and try again.", symbol),
			Tip:   "Try using the stock ticker symbol (e.g., 'AAPL' for Apple Inc.)",
		})
		return
	}
	s.logger.Error("fetch failed", "symbol", symbol, "err", err)
	writeJSON(w, http.StatusBadGateway, apiError{Error: "The data source is unavailable. Please try again later."})
}

// symbolParam validates the {symbol} route parameter, uppercased.
func symbolParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	if err := investilearn.ValidateSymbol(symbol); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return "", false
	}
	return symbol, true
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(w, r)
	if !ok {
		return
	}
	q, err := s.store.Quote(r.Context(), symbol)
	if err != nil {
		s.writeFetchError(w, symbol, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// ratioView is one formatted metric of the ratios endpoint.
type ratioView struct {
	Key       string             `json:"key"`
	Display   string             `json:"display"`
	Value     investilearn.Ratio `json:"value"`
	Formatted string             `json:"formatted"`
}

type categoryView struct {
	Name    string      `json:"name"`
	Info    string      `json:"info"`
	Metrics []ratioView `json:"metrics"`
}

func (s *Server) handleRatios(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(w, r)
	if !ok {
		return
	}
	ratios, err := s.store.Ratios(r.Context(), symbol)
	if err != nil {
		s.writeFetchError(w, symbol, err)
		return
	}

	categories := make([]categoryView, 0, 5)
	for _, c := range investilearn.Categories() {
		view := categoryView{Name: c.Name, Info: c.Info}
		for _, m := range c.Metrics {
			v := ratios.Get(m.Key)
			view.Metrics = append(view.Metrics, ratioView{
				Key:       m.Key,
				Display:   m.Display,
				Value:     v,
				Formatted: v.Format(m.Key),
			})
		}
		categories = append(categories, view)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"symbol":     symbol,
		"categories": categories,
	})
}

func (s *Server) handleStatements(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(w, r)
	if !ok {
		return
	}
	out := map[string]any{"symbol": symbol}
	for _, kind := range []investilearn.StatementKind{
		investilearn.IncomeStatement,
		investilearn.CashFlowStatement,
		investilearn.BalanceSheet,
	} {
		stmt, err := s.store.Statement(r.Context(), symbol, kind)
		if err != nil {
			s.writeFetchError(w, symbol, err)
			return
		}
		out[string(kind)] = stmt
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSankey(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(w, r)
	if !ok {
		return
	}
	kind := chi.URLParam(r, "statement")
	if !investilearn.ValidStatementKind(kind) {
		writeJSON(w, http.StatusBadRequest, apiError{
			Error: fmt.Sprintf("unknown statement %q: want income, cashflow or balance", kind),
		})
		return
	}
	stmt, err := s.store.Statement(r.Context(), symbol, investilearn.StatementKind(kind))
	if err != nil {
		s.writeFetchError(w, symbol, err)
		return
	}
	writeJSON(w, http.StatusOK, sankey.Build(stmt))
}

// pricePoint is one day of the history endpoint.
type pricePoint struct {
	Date  date.Date `json:"date"`
	Close float64   `json:"close"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(w, r)
	if !ok {
		return
	}
	period := r.URL.Query().Get("period")
	if period == "" {
		period = yahoo.DefaultPeriod
	}
	if !yahoo.ValidPeriod(period) {
		writeJSON(w, http.StatusBadRequest, apiError{
			Error: fmt.Sprintf("invalid period %q (want one of %v)", period, yahoo.ValidPeriods),
		})
		return
	}
	h, err := s.store.History(r.Context(), symbol, period)
	if err != nil {
		s.writeFetchError(w, symbol, err)
		return
	}
	prices := make([]pricePoint, 0, h.Len())
	for day, close := range h.Values() {
		prices = append(prices, pricePoint{Date: day, Close: close})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"symbol": symbol,
		"period": period,
		"prices": prices,
	})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(w, r)
	if !ok {
		return
	}
	max := 5
	if v := r.URL.Query().Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, apiError{Error: fmt.Sprintf("invalid max %q", v)})
			return
		}
		max = n
	}
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = investilearn.AllNews
	}

	// Filter first so the cap applies to matching items.
	items, err := s.store.News(r.Context(), symbol, 0)
	if err != nil {
		s.writeFetchError(w, symbol, err)
		return
	}
	items = investilearn.FilterNews(items, filter)
	if len(items) > max {
		items = items[:max]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"symbol": symbol,
		"filter": filter,
		"items":  items,
	})
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(w, r)
	if !ok {
		return
	}
	if s.guide == nil {
		writeJSON(w, http.StatusServiceUnavailable, apiError{
			Error: "The learning guide is disabled: no AI key is configured.",
		})
		return
	}
	ratio := chi.URLParam(r, "ratio")
	answer, err := s.guide(r.Context(), symbol, ratio)
	if err != nil {
		s.logger.Error("guide failed", "symbol", symbol, "ratio", ratio, "err", err)
		writeJSON(w, http.StatusBadGateway, apiError{Error: "The learning guide is unavailable. Please try again later."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"symbol": symbol,
		"ratio":  ratio,
		"answer": answer,
	})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var f Feedback
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid feedback payload"})
		return
	}
	if f.Event == "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "feedback event is required"})
		return
	}
	s.feedback.Add(f)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFeedbackSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.feedback.Summary())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(w, r)
	if !ok {
		return
	}
	q, err := s.store.Quote(r.Context(), symbol)
	if err != nil {
		s.writeFetchError(w, symbol, err)
		return
	}
	ratios, err := s.store.Ratios(r.Context(), symbol)
	if err != nil {
		s.writeFetchError(w, symbol, err)
		return
	}
	news, _ := s.store.News(r.Context(), symbol, 5)

	md := renderer.RenderReport(renderer.NewReport(q, ratios, news))
	var body strings.Builder
	fmt.Fprintf(&body, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>%s report</title></head><body>", symbol)
	if err := goldmark.Convert([]byte(md), &body); err != nil {
		s.logger.Error("report conversion failed", "symbol", symbol, "err", err)
		http.Error(w, "report rendering failed", http.StatusInternalServerError)
		return
	}
	body.WriteString("</body></html>")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(body.String()))
}
