package request_models

import "github.com/google/uuid"

type CreateMangaRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	AltTitle    string   `json:"alt_title"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Status      string   `json:"status" binding:"omitempty,oneof=ongoing completed hiatus"`
	GenreIDs    []string `json:"genre_ids"`
}

type UpdateMangaRequest struct {
	ID          uuid.UUID `json:"id" binding:"required"`
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	AltTitle    string    `json:"alt_title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Status      string    `json:"status" binding:"omitempty,oneof=ongoing completed hiatus"`
	GenreIDs    []string  `json:"genre_ids"`
}
