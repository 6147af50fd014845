package httpapi

import (
	"net/http"

	"roulette/models"
	"roulette/service"
)

// HandlerDeps lists the services the HTTP handlers call
type HandlerDeps struct {
	Roulette service.RouletteService
	Ledger   service.LedgerService
	History  service.HistoryService
}

// Handler serves the JSON API on top of the roulette, ledger and history services
type Handler struct {
	roulette service.RouletteService
	ledger   service.LedgerService
	history  service.HistoryService
}

// NewHandler creates a new HTTP handler
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		roulette: deps.Roulette,
		ledger:   deps.Ledger,
		history:  deps.History,
	}
}

// Health reports that the process is serving
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Balance returns a player's balance, 0 for unknown players
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	balance, err := h.ledger.Balance(r.Context(), playerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{PlayerID: playerID, Balance: balance})
}

// Deposit credits a positive amount to the player
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload, err := decode[AmountRequest](r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.ledger.Deposit(r.Context(), playerID, payload.Username, payload.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Withdraw debits a positive amount, never below zero
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload, err := decode[AmountRequest](r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.ledger.Withdraw(r.Context(), playerID, payload.Username, payload.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// PlayRound settles one round for the requested bet
func (h *Handler) PlayRound(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload, err := decode[SpinRequest](r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.roulette.PlayRound(r.Context(), playerID, payload.Username, payload.Bet)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Odds returns the odds the next round will use without changing any state
func (h *Handler) Odds(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.roulette.CurrentOdds(r.Context(), playerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// ResetState restores the player's default game state
func (h *Handler) ResetState(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	state, err := h.roulette.ResetState(r.Context(), playerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// History returns the newest bet records, limited by the limit query parameter
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	records, err := h.history.Recent(r.Context(), playerID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if records == nil {
		records = []*models.BetRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

// ClearHistory deletes the player's bet records
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	deleted, err := h.history.Clear(r.Context(), playerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ClearHistoryResponse{Deleted: deleted})
}

// Stats aggregates the retained bet records
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	stats, err := h.history.Stats(r.Context(), playerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
