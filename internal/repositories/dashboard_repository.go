package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "mangadesk/internal/models/db_models"
)

type DashboardRepository interface {
	CountTotalAccounts(ctx context.Context) (int64, error)
	CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error)
	CountActiveSubscribers(ctx context.Context, at time.Time) (int64, error)
	CountBannedAccounts(ctx context.Context, at time.Time) (int64, error)
	CountTotalManga(ctx context.Context) (int64, error)
	CountTotalChapters(ctx context.Context) (int64, error)
	SumViews(ctx context.Context) (int64, error)

	NewAccountsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketCount, error)
	TopManga(ctx context.Context, limit int) ([]TopMangaRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------

type BucketCount struct {
	Bucket time.Time `gorm:"column:bucket"`
	Count  int64     `gorm:"column:count"`
}

type TopMangaRow struct {
	MangaID   string `gorm:"column:manga_id"`
	Title     string `gorm:"column:title"`
	ViewCount int64  `gorm:"column:view_count"`
}

func (d *dashboardRepository) CountTotalAccounts(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&dbm.Account{}).Count(&count).Error
	return count, err
}

func (d *dashboardRepository) CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&dbm.Account{}).
		Where("created_at >= ? AND created_at < ?", start.Unix(), end.Unix()).
		Count(&count).Error
	return count, err
}

// The SQL mirror of Account.SubscriptionActive: subscribed with an end date
// strictly in the future.
func (d *dashboardRepository) CountActiveSubscribers(ctx context.Context, at time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&dbm.Account{}).
		Where("subscription_status = ? AND subscription_end IS NOT NULL AND subscription_end > ?",
			dbm.SubStatusSubscribed, at.Unix()).
		Count(&count).Error
	return count, err
}

func (d *dashboardRepository) CountBannedAccounts(ctx context.Context, at time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&dbm.Account{}).
		Where("banned_until IS NOT NULL AND banned_until > ?", at.Unix()).
		Count(&count).Error
	return count, err
}

func (d *dashboardRepository) CountTotalManga(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&dbm.Manga{}).Count(&count).Error
	return count, err
}

func (d *dashboardRepository) CountTotalChapters(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&dbm.Chapter{}).Count(&count).Error
	return count, err
}

func (d *dashboardRepository) SumViews(ctx context.Context) (int64, error) {
	var sum int64
	err := d.db.WithContext(ctx).Model(&dbm.Manga{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&sum).Error
	return sum, err
}

func (d *dashboardRepository) NewAccountsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketCount, error) {
	if tz == "" {
		tz = "UTC"
	}
	var rows []BucketCount
	err := d.db.WithContext(ctx).Raw(`
		SELECT date_trunc(?, to_timestamp(created_at) AT TIME ZONE ?) AS bucket,
		       COUNT(*) AS count
		FROM accounts
		WHERE created_at >= ? AND created_at < ? AND deleted_at IS NULL
		GROUP BY bucket
		ORDER BY bucket`,
		interval, tz, start.Unix(), end.Unix(),
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *dashboardRepository) TopManga(ctx context.Context, limit int) ([]TopMangaRow, error) {
	var rows []TopMangaRow
	err := d.db.WithContext(ctx).Raw(`
		SELECT id AS manga_id, title, view_count
		FROM manga
		WHERE deleted_at IS NULL
		ORDER BY view_count DESC
		LIMIT ?`, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
