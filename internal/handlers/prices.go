package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// defaultSymbols backs the commodity price viewer's landing view
var defaultSymbols = []string{"USD_KRW", "CNY_KRW", "USD_CNY"}

// currentPrices returns the latest quote per symbol
func (r *Router) currentPrices(w http.ResponseWriter, req *http.Request) {
	if r.rates == nil {
		respondError(w, http.StatusServiceUnavailable, "Price service is not configured")
		return
	}

	symbols := defaultSymbols
	if raw := req.URL.Query().Get("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	}

	quotes, err := r.rates.Current(symbols)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondData(w, http.StatusOK, quotes)
}

// priceHistory returns the history of one symbol, newest first
func (r *Router) priceHistory(w http.ResponseWriter, req *http.Request) {
	if r.rates == nil {
		respondError(w, http.StatusServiceUnavailable, "Price service is not configured")
		return
	}

	symbol := req.URL.Query().Get("symbol")
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	history, err := r.rates.History(symbol, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch price history")
		return
	}
	respondData(w, http.StatusOK, history)
}
