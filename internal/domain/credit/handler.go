package credit

import (
	"net/http"
	"time"

	"github.com/mx70/mx70-api/internal/middleware"
	"github.com/mx70/mx70-api/internal/pkg/response"
)

// Handler handles credit HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates credit handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /credits
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	credits, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{
		"items": credits,
		"total": len(credits),
	})
}

// SelfPromoWindow reports how much of the trailing self-promo cap is used
type SelfPromoWindow struct {
	WindowTotal float64 `json:"window_total"`
	Cap         float64 `json:"cap"`
	Remaining   float64 `json:"remaining"`
}

// BalanceResponse pairs the balance partition with the current cap window
type BalanceResponse struct {
	*Balance
	SelfPromoWindow SelfPromoWindow `json:"self_promo_window"`
}

// Balance handles GET /credits/balance?as_of=RFC3339
// Without as_of the server clock is used. The self-promo window is always
// reported as of now, since it describes the room for the next award.
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var (
		balance *Balance
		err     error
	)
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		asOf, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			response.BadRequest(w, "as_of must be RFC3339")
			return
		}
		balance, err = h.svc.BalanceAsOf(r.Context(), userID, asOf)
	} else {
		balance, err = h.svc.CurrentBalance(r.Context(), userID)
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	windowTotal, err := h.svc.WindowTotal(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	cap := h.svc.MonthlyCap()
	remaining := cap - windowTotal
	if remaining < 0 {
		remaining = 0
	}

	response.OK(w, BalanceResponse{
		Balance: balance,
		SelfPromoWindow: SelfPromoWindow{
			WindowTotal: windowTotal,
			Cap:         cap,
			Remaining:   remaining,
		},
	})
}
