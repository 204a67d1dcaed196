package service

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
	"github.com/Harmonic/harmonic/pkg/metriccard"
)

const trendDays = 7

// DashboardService aggregates roster metrics into metric cards
type DashboardService struct {
	profiles    domain.ProfileRepository
	assessments domain.AssessmentRepository
	logger      logger.Logger
	now         func() time.Time
}

func NewDashboardService(profiles domain.ProfileRepository, assessments domain.AssessmentRepository, logger logger.Logger) *DashboardService {
	return &DashboardService{
		profiles:    profiles,
		assessments: assessments,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *DashboardService) Cards(ctx context.Context, actorID string) ([]metriccard.Card, error) {
	_, filter, err := resolveStaff(ctx, s.profiles, actorID)
	if err != nil {
		return nil, err
	}

	today := truncateDay(s.now())
	// two weeks so the last seven days can be compared with the seven before
	since := today.AddDate(0, 0, -(2*trendDays - 1))

	var (
		clients   int
		completed int
		daily     []domain.DailyCount
		states    []domain.StateCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = s.profiles.CountClients(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = s.assessments.CountCompleted(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = s.assessments.DailyCompletions(gctx, filter, since)
		return err
	})
	g.Go(func() error {
		var err error
		states, err = s.assessments.DominantStateCounts(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.WithField("actor_id", actorID).WithField("error", err.Error()).Error("Failed to load dashboard metrics")
		return nil, err
	}

	series := dailySeries(daily, since, 2*trendDays)
	previous, current := sum(series[:trendDays]), sum(series[trendDays:])

	weekly := metriccard.Card{
		Title: "Assessments (7 days)",
		Value: metriccard.FormatNumber(current),
		Icon:  "calendar",
		Color: "indigo",
		Trend: metriccard.Points(series[trendDays:]...),
	}
	weekly.Change = weekChange(previous, current)

	dominant := metriccard.Card{
		Title: "Top Harmonic State",
		Value: "None yet",
		Icon:  "activity",
		Color: "purple",
	}
	if len(states) > 0 {
		dominant.Value = states[0].State
	}

	return []metriccard.Card{
		{
			Title: "Total Clients",
			Value: metriccard.FormatNumber(float64(clients)),
			Icon:  "users",
			Color: "blue",
		},
		{
			Title: "Completed Assessments",
			Value: metriccard.FormatNumber(float64(completed)),
			Icon:  "check-circle",
			Color: "green",
		},
		weekly,
		dominant,
	}, nil
}

// dailySeries spreads counts over days consecutive days starting at since,
// filling days without completions with zero
func dailySeries(counts []domain.DailyCount, since time.Time, days int) []float64 {
	series := make([]float64, days)
	for _, c := range counts {
		idx := int(truncateDay(c.Day).Sub(since).Hours() / 24)
		if idx >= 0 && idx < days {
			series[idx] += float64(c.Count)
		}
	}
	return series
}

// weekChange is nil when there is nothing to compare against
func weekChange(previous, current float64) *metriccard.Change {
	if previous == 0 {
		return nil
	}
	pct := math.Round((current-previous)/previous*1000) / 10
	change := &metriccard.Change{Value: math.Abs(pct), Type: metriccard.ChangeIncrease, Period: "vs last week"}
	if pct < 0 {
		change.Type = metriccard.ChangeDecrease
	}
	return change
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
