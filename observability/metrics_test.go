package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"roulette/config"
	"roulette/events"
	"roulette/models"
)

func newTestProvider(t *testing.T) (*MetricsProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := NewMetricsProvider(config.NewTestConfig())
	require.NoError(t, mp.initializeWithReader(reader))
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})
	return mp, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}
	return byName
}

// sumFor returns the counter value whose attributes contain every given pair
func sumFor(t *testing.T, metrics map[string]metricdata.Metrics, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()

	m, ok := metrics[name]
	if !ok {
		return 0
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s is not an int64 sum", name)

	var total int64
	for _, dp := range sum.DataPoints {
		matches := true
		for _, kv := range attrs {
			v, found := dp.Attributes.Value(kv.Key)
			if !found || v != kv.Value {
				matches = false
				break
			}
		}
		if matches {
			total += dp.Value
		}
	}
	return total
}

func TestRecordRound(t *testing.T) {
	mp, reader := newTestProvider(t)
	ctx := context.Background()

	mp.RecordRound(ctx, models.OutcomeWin, models.PhaseInitial, 100, 200)
	mp.RecordRound(ctx, models.OutcomeLose, models.PhaseHouse, 50, 0)
	mp.RecordRound(ctx, models.OutcomeLose, models.PhaseHouse, 25, 0)

	metrics := collect(t, reader)

	assert.Equal(t, int64(3), sumFor(t, metrics, RoundsPlayedTotal))
	assert.Equal(t, int64(1), sumFor(t, metrics, RoundsPlayedTotal, attribute.String(LabelOutcome, "WIN")))
	assert.Equal(t, int64(2), sumFor(t, metrics, RoundsPlayedTotal,
		attribute.String(LabelOutcome, "LOSE"), attribute.String(LabelPhase, "house")))
	assert.Equal(t, int64(175), sumFor(t, metrics, WageredTotal))
	assert.Equal(t, int64(200), sumFor(t, metrics, PaidOutTotal))

	hist, ok := metrics[BetAmount].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	var count uint64
	var total int64
	for _, dp := range hist.DataPoints {
		count += dp.Count
		total += dp.Sum
	}
	assert.Equal(t, uint64(3), count)
	assert.Equal(t, int64(175), total)
}

func TestRecordLedgerAndStateMetrics(t *testing.T) {
	mp, reader := newTestProvider(t)
	ctx := context.Background()

	mp.RecordBalanceTransaction(ctx, models.TransactionTypeDeposit)
	mp.RecordBalanceTransaction(ctx, models.TransactionTypeDeposit)
	mp.RecordBalanceTransaction(ctx, models.TransactionTypeWithdrawal)
	mp.RecordPhaseChange(ctx, models.PhaseInitial, models.PhaseHouse)
	mp.RecordStateReset(ctx)
	mp.RecordPlayerCreated(ctx)

	metrics := collect(t, reader)

	assert.Equal(t, int64(2), sumFor(t, metrics, BalanceTransactionsTotal, attribute.String(LabelType, "deposit")))
	assert.Equal(t, int64(1), sumFor(t, metrics, BalanceTransactionsTotal, attribute.String(LabelType, "withdrawal")))
	assert.Equal(t, int64(1), sumFor(t, metrics, PhaseChangesTotal,
		attribute.String(LabelFrom, "initial"), attribute.String(LabelTo, "house")))
	assert.Equal(t, int64(1), sumFor(t, metrics, StateResetsTotal))
	assert.Equal(t, int64(1), sumFor(t, metrics, PlayersCreatedTotal))
}

func TestSubscribe(t *testing.T) {
	mp, reader := newTestProvider(t)
	bus := events.NewBus()
	mp.Subscribe(bus)

	ctx := context.Background()
	bus.Emit(ctx, events.RoundPlayedEvent{
		PlayerID: 1,
		Bet:      100,
		Outcome:  models.OutcomeWin,
		Prize:    200,
		Profit:   100,
		State:    models.GameState{TotalGames: 1, CurrentPhase: models.PhaseInitial},
	})
	bus.Emit(ctx, events.PhaseChangedEvent{PlayerID: 1, From: models.PhaseInitial, To: models.PhaseHouse})
	bus.Emit(ctx, events.GameStateResetEvent{PlayerID: 1})
	bus.Emit(ctx, events.BalanceChangeEvent{PlayerID: 1, TransactionType: models.TransactionTypeBetWin})
	bus.Emit(ctx, events.PlayerCreatedEvent{PlayerID: 1})

	// handlers run on their own goroutines
	assert.Eventually(t, func() bool {
		metrics := collect(t, reader)
		return sumFor(t, metrics, RoundsPlayedTotal, attribute.String(LabelOutcome, "WIN")) == 1 &&
			sumFor(t, metrics, PhaseChangesTotal, attribute.String(LabelTo, "house")) == 1 &&
			sumFor(t, metrics, StateResetsTotal) == 1 &&
			sumFor(t, metrics, BalanceTransactionsTotal, attribute.String(LabelType, "bet_win")) == 1 &&
			sumFor(t, metrics, PlayersCreatedTotal) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestInitialize_ExporterNone(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.MetricsExporter = ExporterNone

	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))
	assert.False(t, mp.isEnabled())

	// recording without instruments is a no-op
	mp.RecordRound(context.Background(), models.OutcomeWin, models.PhaseInitial, 10, 20)
	mp.RecordBalanceTransaction(context.Background(), models.TransactionTypeDeposit)
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestInitialize_UnknownExporter(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.MetricsExporter = "prometheus"

	err := NewMetricsProvider(cfg).Initialize(context.Background())
	assert.ErrorContains(t, err, "unknown exporter type")
}
