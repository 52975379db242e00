package services

import (
	"context"
	"log"

	"mangadesk/internal/models/db_models"
	"mangadesk/internal/models/request_models"
	"mangadesk/internal/models/response_models"
	"mangadesk/internal/repositories"
	"mangadesk/pkg/utils"
)

type GenreServiceInterface interface {
	GetAllGenres(ctx context.Context, page, pageSize int) ([]response_models.GenreResponse, error)
	CreateGenre(ctx context.Context, request request_models.CreateGenreRequest) error
}

type GenreService struct {
	genreRepo repositories.GenreRepository
}

func NewGenreService(genreRepo repositories.GenreRepository) GenreServiceInterface {
	return &GenreService{genreRepo: genreRepo}
}

func (g *GenreService) GetAllGenres(ctx context.Context, page, pageSize int) ([]response_models.GenreResponse, error) {
	genres, err := g.genreRepo.GetAllGenres(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing genres: %v", err)
		return nil, utils.ErrDatabaseError
	}

	if len(genres) == 0 {
		return []response_models.GenreResponse{}, nil
	}

	out := make([]response_models.GenreResponse, 0, len(genres))
	for _, genre := range genres {
		out = append(out, response_models.GenreResponse{
			ID:   genre.ID.String(),
			Name: genre.Name,
			Slug: genre.Slug,
		})
	}
	return out, nil
}

func (g *GenreService) CreateGenre(ctx context.Context, request request_models.CreateGenreRequest) error {
	genre := db_models.Genre{
		Name: request.Name,
		Slug: request.Slug,
	}
	if err := g.genreRepo.CreateGenre(ctx, genre); err != nil {
		log.Printf("Error creating genre: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}
