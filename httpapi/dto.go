package httpapi

// SpinRequest is the body of POST /players/{playerID}/rounds
type SpinRequest struct {
	Bet      int64  `json:"bet"`
	Username string `json:"username,omitempty"`
}

// AmountRequest is the body of deposit and withdraw
type AmountRequest struct {
	Amount   int64  `json:"amount"`
	Username string `json:"username,omitempty"`
}

type BalanceResponse struct {
	PlayerID int64 `json:"playerId"`
	Balance  int64 `json:"balance"`
}

type ClearHistoryResponse struct {
	Deleted int64 `json:"deleted"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}
