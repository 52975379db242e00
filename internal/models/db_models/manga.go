package db_models

import (
	"gorm.io/datatypes"
)

type MangaStatus string

const (
	MangaStatusOngoing   MangaStatus = "ongoing"
	MangaStatusCompleted MangaStatus = "completed"
	MangaStatusHiatus    MangaStatus = "hiatus"
)

type Manga struct {
	BaseModel
	Title       string `gorm:"index"`
	AltTitle    string
	Description string
	Author      string
	Status      MangaStatus `gorm:"default:ongoing;index"`

	CoverURL     string
	ThumbnailURL string
	ViewCount    int64 `gorm:"default:0;index"`

	Genres   []Genre   `gorm:"many2many:manga_genres"`
	Chapters []Chapter `gorm:"foreignKey:MangaID"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

func (Manga) TableName() string { return "manga" }
