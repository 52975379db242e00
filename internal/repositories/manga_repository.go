package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangadesk/internal/models/db_models"
)

type MangaRepository interface {
	Insert(ctx context.Context, manga *db_models.Manga) error
	GetByID(ctx context.Context, id string) (*db_models.Manga, error)
	GetByIDWithChapters(ctx context.Context, id string) (*db_models.Manga, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.Manga, error)
	SearchByTitle(ctx context.Context, title string, page, pageSize int) ([]db_models.Manga, error)
	ListByGenre(ctx context.Context, genreID string, page, pageSize int) ([]db_models.Manga, error)
	Update(ctx context.Context, manga *db_models.Manga) error
	ReplaceGenres(ctx context.Context, manga *db_models.Manga, genres []db_models.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID, by int64) error
	TopByViews(ctx context.Context, limit int) ([]db_models.Manga, error)
}

type mangaRepository struct {
	db *gorm.DB
}

func NewMangaRepository(db *gorm.DB) MangaRepository {
	return &mangaRepository{db: db}
}

func (m *mangaRepository) Insert(ctx context.Context, manga *db_models.Manga) error {
	return m.db.WithContext(ctx).Create(manga).Error
}

func (m *mangaRepository) GetByID(ctx context.Context, id string) (*db_models.Manga, error) {
	var manga db_models.Manga
	err := m.db.WithContext(ctx).
		Preload("Genres").
		First(&manga, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &manga, nil
}

func (m *mangaRepository) GetByIDWithChapters(ctx context.Context, id string) (*db_models.Manga, error) {
	var manga db_models.Manga
	err := m.db.WithContext(ctx).
		Preload("Genres").
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		First(&manga, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &manga, nil
}

func (m *mangaRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Manga, error) {
	var manga []db_models.Manga
	offset := (page - 1) * pageSize
	err := m.db.WithContext(ctx).
		Preload("Genres").
		Order("updated_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&manga).Error
	if err != nil {
		return nil, err
	}
	return manga, nil
}

func (m *mangaRepository) SearchByTitle(ctx context.Context, title string, page, pageSize int) ([]db_models.Manga, error) {
	var manga []db_models.Manga
	offset := (page - 1) * pageSize
	pattern := "%" + title + "%"
	err := m.db.WithContext(ctx).
		Preload("Genres").
		Where("title ILIKE ? OR alt_title ILIKE ?", pattern, pattern).
		Offset(offset).Limit(pageSize).
		Find(&manga).Error
	if err != nil {
		return nil, err
	}
	return manga, nil
}

func (m *mangaRepository) ListByGenre(ctx context.Context, genreID string, page, pageSize int) ([]db_models.Manga, error) {
	var manga []db_models.Manga
	offset := (page - 1) * pageSize
	err := m.db.WithContext(ctx).
		Preload("Genres").
		Joins("JOIN manga_genres ON manga_genres.manga_id = manga.id").
		Where("manga_genres.genre_id = ?", genreID).
		Offset(offset).Limit(pageSize).
		Find(&manga).Error
	if err != nil {
		return nil, err
	}
	return manga, nil
}

func (m *mangaRepository) Update(ctx context.Context, manga *db_models.Manga) error {
	return m.db.WithContext(ctx).Save(manga).Error
}

func (m *mangaRepository) ReplaceGenres(ctx context.Context, manga *db_models.Manga, genres []db_models.Genre) error {
	return m.db.WithContext(ctx).Model(manga).Association("Genres").Replace(genres)
}

func (m *mangaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.db.WithContext(ctx).Delete(&db_models.Manga{}, "id = ?", id).Error
}

func (m *mangaRepository) IncrementViews(ctx context.Context, id uuid.UUID, by int64) error {
	return m.db.WithContext(ctx).
		Model(&db_models.Manga{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", by)).Error
}

func (m *mangaRepository) TopByViews(ctx context.Context, limit int) ([]db_models.Manga, error) {
	var manga []db_models.Manga
	err := m.db.WithContext(ctx).
		Order("view_count DESC").
		Limit(limit).
		Find(&manga).Error
	if err != nil {
		return nil, err
	}
	return manga, nil
}
