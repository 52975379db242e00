package request_models

import "github.com/google/uuid"

type CreateCarouselEntryRequest struct {
	MangaID  uuid.UUID `json:"manga_id" binding:"required"`
	ImageURL string    `json:"image_url"`
	Caption  string    `json:"caption"`
	Position int       `json:"position" binding:"gte=0"`
}

type UpdateCarouselEntryRequest struct {
	ID       uuid.UUID `json:"id" binding:"required"`
	ImageURL string    `json:"image_url"`
	Caption  string    `json:"caption"`
	Position int       `json:"position" binding:"gte=0"`
	IsActive bool      `json:"is_active"`
}

type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
	Slug string `json:"slug" binding:"required,min=1,max=50"`
}
