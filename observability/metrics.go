package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"roulette/config"
	"roulette/events"
	"roulette/models"
)

// MetricsProvider manages OpenTelemetry metrics for the roulette service
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	// Metric instruments
	roundsPlayedCounter        metric.Int64Counter
	betAmountHist              metric.Int64Histogram
	wageredCounter             metric.Int64Counter
	paidOutCounter             metric.Int64Counter
	phaseChangesCounter        metric.Int64Counter
	stateResetsCounter         metric.Int64Counter
	balanceTransactionsCounter metric.Int64Counter
	playersCreatedCounter      metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry meter provider for the configured exporter
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Debug("Metrics provider already initialized")
		return nil
	}

	var (
		exporter sdkmetric.Exporter
		err      error
	)
	switch mp.config.MetricsExporter {
	case ExporterNone, "":
		log.Info("Metrics export disabled")
		mp.initialized = true
		return nil

	case ExporterConsole:
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case ExporterOTLP:
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTLPEndpoint).Info("Using OTLP metric exporter")

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.MetricsExporter)
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(mp.config.MetricsInterval))
	if err := mp.initializeWithReader(reader); err != nil {
		return err
	}

	// Only the real exporters become the global provider
	otel.SetMeterProvider(mp.meterProvider)

	log.Info("Metrics provider initialized")
	return nil
}

// initializeWithReader builds the meter provider around reader. Callers hold mp.mu.
func (mp *MetricsProvider) initializeWithReader(reader sdkmetric.Reader) error {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName("roulette"),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	mp.meter = mp.meterProvider.Meter("roulette")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	return nil
}

// createInstruments creates all metric instruments
func (mp *MetricsProvider) createInstruments() error {
	var err error

	// Round metrics
	mp.roundsPlayedCounter, err = mp.meter.Int64Counter(
		RoundsPlayedTotal,
		metric.WithDescription("Total number of settled roulette rounds"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rounds played counter: %w", err)
	}

	mp.betAmountHist, err = mp.meter.Int64Histogram(
		BetAmount,
		metric.WithDescription("Distribution of bet amounts"),
		metric.WithUnit("{coin}"),
		metric.WithExplicitBucketBoundaries(10, 50, 100, 500, 1000, 5000, 10000, 50000),
	)
	if err != nil {
		return fmt.Errorf("failed to create bet amount histogram: %w", err)
	}

	mp.wageredCounter, err = mp.meter.Int64Counter(
		WageredTotal,
		metric.WithDescription("Total amount wagered"),
		metric.WithUnit("{coin}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create wagered counter: %w", err)
	}

	mp.paidOutCounter, err = mp.meter.Int64Counter(
		PaidOutTotal,
		metric.WithDescription("Total prize money paid out"),
		metric.WithUnit("{coin}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create paid out counter: %w", err)
	}

	// Game state metrics
	mp.phaseChangesCounter, err = mp.meter.Int64Counter(
		PhaseChangesTotal,
		metric.WithDescription("Total number of phase transitions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create phase changes counter: %w", err)
	}

	mp.stateResetsCounter, err = mp.meter.Int64Counter(
		StateResetsTotal,
		metric.WithDescription("Total number of operator game state resets"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create state resets counter: %w", err)
	}

	// Ledger metrics
	mp.balanceTransactionsCounter, err = mp.meter.Int64Counter(
		BalanceTransactionsTotal,
		metric.WithDescription("Total number of balance transactions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create balance transactions counter: %w", err)
	}

	mp.playersCreatedCounter, err = mp.meter.Int64Counter(
		PlayersCreatedTotal,
		metric.WithDescription("Total number of players created"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create players created counter: %w", err)
	}

	return nil
}

// Shutdown flushes and stops the meter provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordRound records a settled round
func (mp *MetricsProvider) RecordRound(ctx context.Context, outcome models.Outcome, phase models.Phase, bet, prize int64) {
	if !mp.isEnabled() {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(LabelOutcome, string(outcome)),
		attribute.String(LabelPhase, string(phase)),
	)
	mp.roundsPlayedCounter.Add(ctx, 1, attrs)
	mp.betAmountHist.Record(ctx, bet, attrs)
	mp.wageredCounter.Add(ctx, bet)
	if prize > 0 {
		mp.paidOutCounter.Add(ctx, prize)
	}
}

// RecordPhaseChange records a player's phase label moving
func (mp *MetricsProvider) RecordPhaseChange(ctx context.Context, from, to models.Phase) {
	if !mp.isEnabled() {
		return
	}

	mp.phaseChangesCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String(LabelFrom, string(from)),
			attribute.String(LabelTo, string(to)),
		),
	)
}

// RecordStateReset records an operator reset of a player's game state
func (mp *MetricsProvider) RecordStateReset(ctx context.Context) {
	if !mp.isEnabled() {
		return
	}
	mp.stateResetsCounter.Add(ctx, 1)
}

// RecordBalanceTransaction records a balance transaction
func (mp *MetricsProvider) RecordBalanceTransaction(ctx context.Context, transactionType models.TransactionType) {
	if !mp.isEnabled() {
		return
	}

	mp.balanceTransactionsCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String(LabelType, string(transactionType)),
		),
	)
}

// RecordPlayerCreated records a new player
func (mp *MetricsProvider) RecordPlayerCreated(ctx context.Context) {
	if !mp.isEnabled() {
		return
	}
	mp.playersCreatedCounter.Add(ctx, 1)
}

// Subscribe feeds committed domain events into the metric instruments
func (mp *MetricsProvider) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeRoundPlayed, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.RoundPlayedEvent); ok {
			mp.RecordRound(ctx, e.Outcome, e.State.CurrentPhase, e.Bet, e.Prize)
		}
	})
	bus.Subscribe(events.EventTypePhaseChanged, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.PhaseChangedEvent); ok {
			mp.RecordPhaseChange(ctx, e.From, e.To)
		}
	})
	bus.Subscribe(events.EventTypeGameStateReset, func(ctx context.Context, event events.Event) {
		mp.RecordStateReset(ctx)
	})
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.BalanceChangeEvent); ok {
			mp.RecordBalanceTransaction(ctx, e.TransactionType)
		}
	})
	bus.Subscribe(events.EventTypePlayerCreated, func(ctx context.Context, event events.Event) {
		mp.RecordPlayerCreated(ctx)
	})
}

// isEnabled checks if an exporter is configured and instruments exist
func (mp *MetricsProvider) isEnabled() bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.meterProvider != nil
}
