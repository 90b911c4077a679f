package service

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/engine"
	"github.com/kharel/fintrack-bff-go/internal/infra/cache"
	"github.com/kharel/fintrack-bff-go/internal/infra/observability"
	"github.com/kharel/fintrack-bff-go/internal/port"
)

var dashTracer = otel.Tracer("service/dashboard")

// DashboardService assembles the derived state the dashboard screen polls:
// balance, current-month summary, daily budget, and the deadline feed,
// all recomputed from a freshly fetched snapshot.
type DashboardService struct {
	store           port.FinanceStore
	derived         *cache.InMemory[*domain.Dashboard]
	metrics         *observability.Metrics
	logger          *zap.Logger
	defaultCurrency string
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(store port.FinanceStore, derived *cache.InMemory[*domain.Dashboard], metrics *observability.Metrics, logger *zap.Logger, defaultCurrency string) *DashboardService {
	return &DashboardService{
		store:           store,
		derived:         derived,
		metrics:         metrics,
		logger:          logger,
		defaultCurrency: defaultCurrency,
	}
}

// snapshot is one consistent fetch of everything the engine consumes.
type snapshot struct {
	txns        []domain.Transaction
	loans       []domain.Loan
	investments []domain.Investment
}

// fetchSnapshot loads transactions, loans, and investments in parallel.
func (s *DashboardService) fetchSnapshot(ctx context.Context, userID string) (*snapshot, error) {
	snap := &snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txns, err := s.store.ListTransactions(gctx, userID, port.TransactionFilter{})
		if err != nil {
			return err
		}
		snap.txns = txns
		return nil
	})
	g.Go(func() error {
		loans, err := s.store.ListLoans(gctx, userID, port.LoanFilter{})
		if err != nil {
			return err
		}
		snap.loans = loans
		return nil
	})
	g.Go(func() error {
		investments, err := s.store.ListInvestments(gctx, userID, "active")
		if err != nil {
			return err
		}
		snap.investments = investments
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// GetDashboard returns the full derived dashboard for a user. Results are
// cached briefly; any mutation through the write services evicts the
// user's entries.
func (s *DashboardService) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.GetDashboard")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	key := userID + ":dashboard"
	if cached, ok := s.derived.Get(key); ok {
		s.metrics.IncrCacheHit("dashboard")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("dashboard")

	start := time.Now()
	snap, err := s.fetchSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	currency := s.defaultCurrency
	if len(snap.txns) > 0 {
		currency = snap.txns[0].Currency
	}

	dash := &domain.Dashboard{
		Balance:     engine.Balance(snap.txns),
		Currency:    currency,
		Summary:     engine.Summarize(snap.txns, now, domain.PeriodMonth, currency),
		DailyBudget: engine.DailyBudget(snap.txns, snap.loans, now),
		Deadlines:   s.deadlineFeed(snap, now),
		GeneratedAt: now,
	}
	s.metrics.IncrEngineEvaluation("balance")
	s.metrics.IncrEngineEvaluation("summary")
	s.metrics.IncrEngineEvaluation("daily_budget")
	s.metrics.RecordRequestDuration("dashboard", time.Since(start))

	s.derived.Set(key, dash)
	return dash, nil
}

// GetDailyBudget recomputes only the daily budget figure.
func (s *DashboardService) GetDailyBudget(ctx context.Context, userID string) (*domain.DailyBudget, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.GetDailyBudget")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var txns []domain.Transaction
	var loans []domain.Loan

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.store.ListTransactions(gctx, userID, port.TransactionFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		loans, err = s.store.ListLoans(gctx, userID, port.LoanFilter{Status: domain.LoanOutstanding})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	budget := engine.DailyBudget(txns, loans, time.Now().UTC())
	s.metrics.IncrEngineEvaluation("daily_budget")
	return &budget, nil
}

// GetDeadlines returns the urgency-classified deadline feed on its own,
// for the screen's periodic display refresh.
func (s *DashboardService) GetDeadlines(ctx context.Context, userID string) ([]domain.DeadlineItem, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.GetDeadlines")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	snap, err := s.fetchSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.deadlineFeed(snap, time.Now().UTC()), nil
}

// deadlineFeed classifies outstanding loan deadlines and active investment
// maturities, most urgent first.
func (s *DashboardService) deadlineFeed(snap *snapshot, now time.Time) []domain.DeadlineItem {
	items := make([]domain.DeadlineItem, 0, len(snap.loans)+len(snap.investments))

	for _, l := range snap.loans {
		if l.Status != domain.LoanOutstanding || l.Deadline == nil {
			continue
		}
		label := "Loan"
		if l.Contact != "" {
			label = "Loan: " + l.Contact
		}
		items = append(items, domain.DeadlineItem{
			ID:             l.ID,
			Kind:           "loan",
			Label:          label,
			Amount:         l.Amount,
			Currency:       l.Currency,
			Deadline:       *l.Deadline,
			DeadlineStatus: engine.EvaluateDeadline(*l.Deadline, now, l.Date),
		})
	}

	for _, inv := range snap.investments {
		if inv.MaturityDate == nil {
			continue
		}
		items = append(items, domain.DeadlineItem{
			ID:             inv.ID,
			Kind:           "investment",
			Label:          inv.Name,
			Amount:         inv.CurrentValue,
			Currency:       inv.Currency,
			Deadline:       *inv.MaturityDate,
			DeadlineStatus: engine.EvaluateDeadline(*inv.MaturityDate, now, inv.PurchaseDate),
		})
	}

	s.metrics.IncrEngineEvaluation("deadline")

	// Most urgent first: fewest days remaining at the top.
	sort.Slice(items, func(i, j int) bool {
		return items[i].DaysRemaining < items[j].DaysRemaining
	})
	return items
}
