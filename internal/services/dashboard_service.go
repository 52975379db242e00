package services

import (
	"context"
	"time"

	resp "mangadesk/internal/models/response_models"
	"mangadesk/internal/repositories"
	"mangadesk/pkg/utils"
)

type DashboardService interface {
	BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
}

func NewDashboardService(repo repositories.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

// normalizeRange ensures sane defaults and ordering
func normalizeRange(r resp.TimeRange) resp.TimeRange {
	out := r
	if out.Interval == "" {
		out.Interval = "day"
	}
	if out.End.IsZero() {
		out.End = time.Now().UTC()
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -30) // last 30 days default
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	return out
}

func (s *dashboardService) BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error) {
	rng = normalizeRange(rng)
	now := time.Now()

	totalAccounts, err := s.repo.CountTotalAccounts(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	newAccounts, err := s.repo.CountNewAccounts(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	activeSubs, err := s.repo.CountActiveSubscribers(ctx, now)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	banned, err := s.repo.CountBannedAccounts(ctx, now)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	totalManga, err := s.repo.CountTotalManga(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	totalChapters, err := s.repo.CountTotalChapters(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	totalViews, err := s.repo.SumViews(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	series, err := s.repo.NewAccountsSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	points := make([]resp.SeriesPoint, 0, len(series))
	for _, row := range series {
		points = append(points, resp.SeriesPoint{Bucket: row.Bucket, Value: row.Count})
	}

	topRows, err := s.repo.TopManga(ctx, 10)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	top := make([]resp.TopMangaItem, 0, len(topRows))
	for _, row := range topRows {
		top = append(top, resp.TopMangaItem{
			MangaID:   row.MangaID,
			Title:     row.Title,
			ViewCount: row.ViewCount,
		})
	}

	return &resp.DashboardReport{
		Range: rng,
		KPIs: resp.KPIBlock{
			TotalAccounts:     totalAccounts,
			NewAccounts:       newAccounts,
			ActiveSubscribers: activeSubs,
			BannedAccounts:    banned,
			TotalManga:        totalManga,
			TotalChapters:     totalChapters,
			TotalViews:        totalViews,
		},
		NewAccounts: resp.CountSeries{Points: points},
		TopManga:    top,
	}, nil
}
