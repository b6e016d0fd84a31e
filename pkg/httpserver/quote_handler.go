package httpserver

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/mselser95/order-economics/internal/economics"
	"github.com/mselser95/order-economics/internal/markets"
	"github.com/mselser95/order-economics/internal/quote"
	"go.uber.org/zap"
)

// Error reasons outside the calculator's own rejection labels.
const (
	ReasonMalformedRequest  = "malformed_request"
	ReasonInvalidMarketID   = "invalid_market_id"
	ReasonMarketNotFound    = "market_not_found"
	ReasonMarketUnavailable = "market_data_unavailable"
	ReasonInternal          = "internal_error"
)

const maxBodyBytes = 1 << 16

// QuoteHandler handles HTTP requests for order quotes.
type QuoteHandler struct {
	quotes Quoter
	logger *zap.Logger
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(quotes Quoter, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
		logger: logger,
	}
}

// HandleOpen handles POST /api/quotes/open.
func (h *QuoteHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	var req OpenRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Reason: ReasonMalformedRequest})
		return
	}

	q, err := h.quotes.QuoteOpening(r.Context(), req.toQuote())
	if err != nil {
		h.writeQuoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewQuoteResponse(q))
}

// HandleClose handles POST /api/quotes/close.
func (h *QuoteHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	var req CloseRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Reason: ReasonMalformedRequest})
		return
	}

	q, err := h.quotes.QuoteClose(r.Context(), req.toQuote())
	if err != nil {
		h.writeQuoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewQuoteResponse(q))
}

func (h *QuoteHandler) writeQuoteError(w http.ResponseWriter, err error) {
	status, resp := classifyError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("quote-request-failed", zap.Error(err))
	}
	writeError(w, status, resp)
}

// classifyError maps a quote error onto an HTTP status and response body.
func classifyError(err error) (int, ErrorResponse) {
	resp := ErrorResponse{Error: err.Error()}

	switch {
	case economics.IsRejection(err):
		resp.Reason = economics.Reason(err)
		return http.StatusUnprocessableEntity, resp
	case errors.Is(err, markets.ErrInvalidMarketID):
		resp.Reason = ReasonInvalidMarketID
		return http.StatusBadRequest, resp
	case errors.Is(err, markets.ErrMarketNotFound):
		resp.Reason = ReasonMarketNotFound
		return http.StatusNotFound, resp
	case errors.Is(err, quote.ErrNoMarketSource):
		resp.Reason = ReasonMarketUnavailable
		return http.StatusBadRequest, resp
	default:
		resp.Reason = ReasonMarketUnavailable
		return http.StatusBadGateway, resp
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	writeJSON(w, status, resp)
}
