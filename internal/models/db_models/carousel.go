package db_models

import (
	"github.com/google/uuid"
)

// CarouselEntry is one curated slot on the reader home screen.
type CarouselEntry struct {
	BaseModel
	MangaID  uuid.UUID `gorm:"index"`
	ImageURL string
	Caption  string
	Position int  `gorm:"index"`
	IsActive bool `gorm:"default:true"`

	Manga Manga `gorm:"foreignKey:MangaID"`
}
