package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mangadesk/internal/models/db_models"
)

type GenreRepository interface {
	CreateGenre(ctx context.Context, genre db_models.Genre) error
	GetGenreByID(ctx context.Context, genreID string) (*db_models.Genre, error)
	GetGenresByIDs(ctx context.Context, ids []string) ([]db_models.Genre, error)
	GetAllGenres(ctx context.Context, page, pageSize int) ([]db_models.Genre, error)
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

type genreRepository struct {
	db *gorm.DB
}

func (g *genreRepository) CreateGenre(ctx context.Context, genre db_models.Genre) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return tx.WithContext(ctx).Create(&genre).Error
	})
}

func (g *genreRepository) GetGenreByID(ctx context.Context, genreID string) (*db_models.Genre, error) {
	var genre db_models.Genre
	err := g.db.WithContext(ctx).Where("id = ?", genreID).First(&genre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &genre, nil
}

func (g *genreRepository) GetGenresByIDs(ctx context.Context, ids []string) ([]db_models.Genre, error) {
	var genres []db_models.Genre
	err := g.db.WithContext(ctx).Where("id IN ?", ids).Find(&genres).Error
	if err != nil {
		return nil, err
	}
	return genres, nil
}

func (g *genreRepository) GetAllGenres(ctx context.Context, page, pageSize int) ([]db_models.Genre, error) {
	var genres []db_models.Genre
	err := g.db.WithContext(ctx).Scopes(func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}).Order("name ASC").Find(&genres).Error
	if err != nil {
		return nil, err
	}
	return genres, nil
}
