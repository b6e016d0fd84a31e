package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/mselser95/order-economics/internal/economics"
	"github.com/mselser95/order-economics/internal/quote"
	"go.uber.org/zap"
)

const (
	defaultStreamReadTimeout = 60 * time.Second
	defaultStreamMaxMessage  = 4096
	streamWriteTimeout       = 10 * time.Second
)

// StreamRequest is one in-progress order-entry state sent over the quote stream.
// Kind selects the calculator; it defaults to opening.
type StreamRequest struct {
	RequestID string     `json:"requestId,omitempty"`
	Kind      quote.Kind `json:"kind,omitempty"`
	MarketID  string     `json:"marketId,omitempty"`

	NumShares     *Field `json:"numShares"`
	LimitPrice    *Field `json:"limitPrice"`
	CurrentPrice  *Field `json:"currentPrice"`
	PurchasePrice *Field `json:"purchasePrice"`
	Side          *Field `json:"side"`
	MinPrice      *Field `json:"minPrice"`
	MaxPrice      *Field `json:"maxPrice"`
	Type          *Field `json:"type"`
	FeeRate       *Field `json:"feeRate"`
}

// StreamResponse answers one StreamRequest. Exactly one of Quote and Reason is set.
type StreamResponse struct {
	RequestID string         `json:"requestId,omitempty"`
	Quote     *QuoteResponse `json:"quote,omitempty"`
	Error     string         `json:"error,omitempty"`
	Reason    string         `json:"reason,omitempty"`
}

// StreamHandler serves live quotes over a websocket. Each inbound message is
// answered with a quote or a rejection; rejections never close the connection.
type StreamHandler struct {
	quotes         Quoter
	logger         *zap.Logger
	readTimeout    time.Duration
	maxMessageSize int64
	upgrader       websocket.Upgrader
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(quotes Quoter, logger *zap.Logger, readTimeout time.Duration, maxMessageSize int64) *StreamHandler {
	if readTimeout <= 0 {
		readTimeout = defaultStreamReadTimeout
	}
	if maxMessageSize <= 0 {
		maxMessageSize = defaultStreamMaxMessage
	}
	return &StreamHandler{
		quotes:         quotes,
		logger:         logger,
		readTimeout:    readTimeout,
		maxMessageSize: maxMessageSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleStream handles GET /api/quotes/stream.
func (h *StreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("stream-upgrade-failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ActiveStreams.Inc()
	defer ActiveStreams.Dec()

	h.logger.Debug("stream-connected", zap.String("remote-addr", r.RemoteAddr))

	conn.SetReadLimit(h.maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	})

	ctx := r.Context()
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("stream-read-error", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))

		resp := h.answer(ctx, message)
		StreamMessagesTotal.WithLabelValues(outcome(resp)).Inc()

		payload, err := json.Marshal(resp)
		if err != nil {
			h.logger.Error("stream-encode-error", zap.Error(err))
			return
		}

		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		err = conn.WriteMessage(websocket.TextMessage, payload)
		if err != nil {
			h.logger.Warn("stream-write-error", zap.Error(err))
			return
		}
	}
}

func (h *StreamHandler) answer(ctx context.Context, message []byte) StreamResponse {
	var req StreamRequest
	err := json.Unmarshal(message, &req)
	if err != nil {
		return StreamResponse{Error: err.Error(), Reason: ReasonMalformedRequest}
	}

	var q *quote.Quote
	switch req.Kind {
	case "", quote.KindOpening:
		q, err = h.quotes.QuoteOpening(ctx, quote.OpeningRequest{
			MarketID: req.MarketID,
			Input: economics.OpeningInput{
				NumShares:  req.NumShares.arg(),
				LimitPrice: req.LimitPrice.arg(),
				Side:       req.Side.arg(),
				MinPrice:   req.MinPrice.arg(),
				MaxPrice:   req.MaxPrice.arg(),
				Topology:   req.Type.arg(),
				FeeRate:    req.FeeRate.arg(),
			},
		})
	case quote.KindClose:
		q, err = h.quotes.QuoteClose(ctx, quote.CloseRequest{
			MarketID: req.MarketID,
			Input: economics.CloseInput{
				CurrentPrice:  req.CurrentPrice.arg(),
				Side:          req.Side.arg(),
				MinPrice:      req.MinPrice.arg(),
				MaxPrice:      req.MaxPrice.arg(),
				Topology:      req.Type.arg(),
				NumShares:     req.NumShares.arg(),
				PurchasePrice: req.PurchasePrice.arg(),
				FeeRate:       req.FeeRate.arg(),
			},
		})
	default:
		return StreamResponse{
			RequestID: req.RequestID,
			Error:     "unknown quote kind " + string(req.Kind),
			Reason:    ReasonMalformedRequest,
		}
	}

	if err != nil {
		_, errResp := classifyError(err)
		return StreamResponse{RequestID: req.RequestID, Error: errResp.Error, Reason: errResp.Reason}
	}

	resp := NewQuoteResponse(q)
	return StreamResponse{RequestID: req.RequestID, Quote: &resp}
}

func outcome(resp StreamResponse) string {
	if resp.Quote != nil {
		return "quote"
	}
	return resp.Reason
}
