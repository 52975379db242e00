package db_models

import (
	"github.com/google/uuid"
)

type Chapter struct {
	BaseModel
	MangaID    uuid.UUID `gorm:"index:idx_manga_chapter,unique"`
	Number     float64   `gorm:"index:idx_manga_chapter,unique"` // 10.5 for extras
	Title      string
	ReleasedAt int64
	ViewCount  int64 `gorm:"default:0"`
	IsPremium  bool  `gorm:"default:false"`

	Pages []Page `gorm:"foreignKey:ChapterID"`
}

// Page is one image asset of a chapter, ordered by Index.
type Page struct {
	BaseModel
	ChapterID uuid.UUID `gorm:"index"`
	Index     int
	ImageURL  string
	ImagePath string // object storage key, kept for deletion
}
