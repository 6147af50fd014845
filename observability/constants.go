package observability

// Metric name prefixes
const (
	MetricPrefix = "roulette"
)

// Metric names
const (
	// Round metrics
	RoundsPlayedTotal = MetricPrefix + ".rounds.played_total"
	BetAmount         = MetricPrefix + ".rounds.bet_amount"
	WageredTotal      = MetricPrefix + ".rounds.wagered_total"
	PaidOutTotal      = MetricPrefix + ".rounds.paid_out_total"

	// Game state metrics
	PhaseChangesTotal = MetricPrefix + ".game_state.phase_changes_total"
	StateResetsTotal  = MetricPrefix + ".game_state.resets_total"

	// Ledger metrics
	BalanceTransactionsTotal = MetricPrefix + ".balance.transactions_total"
	PlayersCreatedTotal      = MetricPrefix + ".players.created_total"
)

// Label keys
const (
	LabelType    = "type"
	LabelOutcome = "outcome"
	LabelPhase   = "phase"
	LabelFrom    = "from"
	LabelTo      = "to"
)

// Exporter types
const (
	ExporterNone    = "none"
	ExporterConsole = "console"
	ExporterOTLP    = "otlp"
)
