package models

// BetStats represents aggregated betting statistics
type BetStats struct {
	TotalBets     int     `json:"totalBets"`
	TotalWins     int     `json:"totalWins"`
	TotalLosses   int     `json:"totalLosses"`
	WinPercentage float64 `json:"winPercentage"`
	TotalWagered  int64   `json:"totalWagered"`
	TotalPrizes   int64   `json:"totalPrizes"`
	NetProfit     int64   `json:"netProfit"`
	BiggestWin    int64   `json:"biggestWin"`
	BiggestLoss   int64   `json:"biggestLoss"`
}
