package response_models

import (
	"time"
)

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// "day" | "week" | "month"
	Interval string `json:"interval"`
	Timezone string `json:"timezone,omitempty"`
}

type KPIBlock struct {
	TotalAccounts     int64 `json:"total_accounts"`
	NewAccounts       int64 `json:"new_accounts"`
	ActiveSubscribers int64 `json:"active_subscribers"`
	BannedAccounts    int64 `json:"banned_accounts"`
	TotalManga        int64 `json:"total_manga"`
	TotalChapters     int64 `json:"total_chapters"`
	TotalViews        int64 `json:"total_views"`
}

type SeriesPoint struct {
	Bucket time.Time `json:"bucket"`
	Value  int64     `json:"value"`
}

type CountSeries struct {
	Points []SeriesPoint `json:"points"`
}

type TopMangaItem struct {
	MangaID   string `json:"manga_id"`
	Title     string `json:"title"`
	ViewCount int64  `json:"view_count"`
}

type DashboardReport struct {
	Range       TimeRange      `json:"range"`
	KPIs        KPIBlock       `json:"kpis"`
	NewAccounts CountSeries    `json:"new_accounts_series"`
	TopManga    []TopMangaItem `json:"top_manga"`
}
