package domain

import (
	"context"

	"github.com/Harmonic/harmonic/pkg/metriccard"
)

//go:generate mockgen -destination mocks/mock_dashboard_service.go -package mocks github.com/Harmonic/harmonic/internal/domain DashboardService

type DashboardService interface {
	Cards(ctx context.Context, actorID string) ([]metriccard.Card, error)
}
