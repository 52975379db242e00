package request_models

import "github.com/google/uuid"

type CreateChapterRequest struct {
	MangaID   uuid.UUID `json:"manga_id" binding:"required"`
	Number    float64   `json:"number" binding:"required,gte=0"`
	Title     string    `json:"title"`
	IsPremium bool      `json:"is_premium"`
}

type UpdateChapterRequest struct {
	ID        uuid.UUID `json:"id" binding:"required"`
	Number    float64   `json:"number" binding:"required,gte=0"`
	Title     string    `json:"title"`
	IsPremium bool      `json:"is_premium"`
}

type ReorderPagesRequest struct {
	ChapterID uuid.UUID `json:"chapter_id" binding:"required"`
	PageIDs   []string  `json:"page_ids" binding:"required,min=1"`
}
