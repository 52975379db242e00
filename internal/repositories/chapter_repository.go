package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangadesk/internal/models/db_models"
)

type ChapterRepository interface {
	Insert(ctx context.Context, chapter *db_models.Chapter) error
	GetByID(ctx context.Context, id string) (*db_models.Chapter, error)
	GetByIDWithPages(ctx context.Context, id string) (*db_models.Chapter, error)
	ListByManga(ctx context.Context, mangaID uuid.UUID) ([]db_models.Chapter, error)
	Update(ctx context.Context, chapter *db_models.Chapter) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error

	InsertPage(ctx context.Context, page *db_models.Page) error
	ReorderPages(ctx context.Context, chapterID uuid.UUID, pageIDs []string) error
	DeletePages(ctx context.Context, chapterID uuid.UUID) error
}

type chapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (c *chapterRepository) Insert(ctx context.Context, chapter *db_models.Chapter) error {
	return c.db.WithContext(ctx).Create(chapter).Error
}

func (c *chapterRepository) GetByID(ctx context.Context, id string) (*db_models.Chapter, error) {
	var chapter db_models.Chapter
	err := c.db.WithContext(ctx).First(&chapter, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &chapter, nil
}

func (c *chapterRepository) GetByIDWithPages(ctx context.Context, id string) (*db_models.Chapter, error) {
	var chapter db_models.Chapter
	err := c.db.WithContext(ctx).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("index ASC")
		}).
		First(&chapter, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &chapter, nil
}

func (c *chapterRepository) ListByManga(ctx context.Context, mangaID uuid.UUID) ([]db_models.Chapter, error) {
	var chapters []db_models.Chapter
	err := c.db.WithContext(ctx).
		Where("manga_id = ?", mangaID).
		Order("number ASC").
		Find(&chapters).Error
	if err != nil {
		return nil, err
	}
	return chapters, nil
}

func (c *chapterRepository) Update(ctx context.Context, chapter *db_models.Chapter) error {
	return c.db.WithContext(ctx).Save(chapter).Error
}

func (c *chapterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("chapter_id = ?", id).Delete(&db_models.Page{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Chapter{}, "id = ?", id).Error
	})
}

func (c *chapterRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return c.db.WithContext(ctx).
		Model(&db_models.Chapter{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (c *chapterRepository) InsertPage(ctx context.Context, page *db_models.Page) error {
	return c.db.WithContext(ctx).Create(page).Error
}

func (c *chapterRepository) ReorderPages(ctx context.Context, chapterID uuid.UUID, pageIDs []string) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, pageID := range pageIDs {
			res := tx.Model(&db_models.Page{}).
				Where("id = ? AND chapter_id = ?", pageID, chapterID).
				UpdateColumn("index", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (c *chapterRepository) DeletePages(ctx context.Context, chapterID uuid.UUID) error {
	return c.db.WithContext(ctx).
		Unscoped().
		Where("chapter_id = ?", chapterID).
		Delete(&db_models.Page{}).Error
}
