package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangadesk/internal/models/db_models"
)

type CurationRepository interface {
	InsertEntry(ctx context.Context, entry *db_models.CarouselEntry) error
	GetEntryByID(ctx context.Context, id string) (*db_models.CarouselEntry, error)
	ListEntries(ctx context.Context, activeOnly bool) ([]db_models.CarouselEntry, error)
	UpdateEntry(ctx context.Context, entry *db_models.CarouselEntry) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

type curationRepository struct {
	db *gorm.DB
}

func NewCurationRepository(db *gorm.DB) CurationRepository {
	return &curationRepository{db: db}
}

func (c *curationRepository) InsertEntry(ctx context.Context, entry *db_models.CarouselEntry) error {
	return c.db.WithContext(ctx).Create(entry).Error
}

func (c *curationRepository) GetEntryByID(ctx context.Context, id string) (*db_models.CarouselEntry, error) {
	var entry db_models.CarouselEntry
	err := c.db.WithContext(ctx).
		Preload("Manga").
		First(&entry, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}

func (c *curationRepository) ListEntries(ctx context.Context, activeOnly bool) ([]db_models.CarouselEntry, error) {
	var entries []db_models.CarouselEntry
	q := c.db.WithContext(ctx).Preload("Manga").Order("position ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *curationRepository) UpdateEntry(ctx context.Context, entry *db_models.CarouselEntry) error {
	return c.db.WithContext(ctx).Save(entry).Error
}

func (c *curationRepository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return c.db.WithContext(ctx).Delete(&db_models.CarouselEntry{}, "id = ?", id).Error
}
