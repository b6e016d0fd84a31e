package httpserver

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/mselser95/order-economics/internal/marketform"
)

// MarketFormRequest is the body of POST /api/market-form.
// A nil Form starts from the defaults.
type MarketFormRequest struct {
	Form   *marketform.Form  `json:"form"`
	Values marketform.Values `json:"values"`
}

// MarketFormResponse carries the updated form and, when it parses, the fee
// rate the calculator would use.
type MarketFormResponse struct {
	Form    marketform.Form `json:"form"`
	FeeRate string          `json:"feeRate,omitempty"`
}

// HandleMarketForm handles POST /api/market-form.
func HandleMarketForm(w http.ResponseWriter, r *http.Request) {
	var req MarketFormRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Reason: ReasonMalformedRequest})
		return
	}

	form := marketform.New()
	if req.Form != nil {
		form = *req.Form
	}

	form = marketform.Validate(marketform.Update(form, req.Values))

	resp := MarketFormResponse{Form: form}
	if feeRate, err := form.FeeRate(); err == nil {
		resp.FeeRate = feeRate.String()
	}

	writeJSON(w, http.StatusOK, resp)
}
