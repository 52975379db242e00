package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"mangadesk/internal/models/db_models"
	"mangadesk/internal/models/request_models"
	"mangadesk/internal/models/response_models"
	"mangadesk/internal/repositories"
	"mangadesk/pkg/utils"
)

type MangaServiceInterface interface {
	GetMangaById(ctx context.Context, id string) (*response_models.MangaResponse, error)
	ListManga(ctx context.Context, page, pageSize int) ([]response_models.MangaResponse, error)
	SearchManga(ctx context.Context, title string, page, pageSize int) ([]response_models.MangaResponse, error)
	ListMangaByGenre(ctx context.Context, genreID string, page, pageSize int) ([]response_models.MangaResponse, error)
	CreateManga(ctx context.Context, request request_models.CreateMangaRequest) (*response_models.MangaResponse, error)
	UpdateManga(ctx context.Context, request request_models.UpdateMangaRequest) error
	DeleteManga(ctx context.Context, id uuid.UUID) error
	SetCover(ctx context.Context, id string, coverURL, thumbnailURL string) error
}

type MangaService struct {
	mangaRepository repositories.MangaRepository
	genreRepository repositories.GenreRepository
}

func NewMangaService(mangaRepository repositories.MangaRepository, genreRepository repositories.GenreRepository) MangaServiceInterface {
	return &MangaService{
		mangaRepository: mangaRepository,
		genreRepository: genreRepository,
	}
}

func (m *MangaService) GetMangaById(ctx context.Context, id string) (*response_models.MangaResponse, error) {
	manga, err := m.mangaRepository.GetByIDWithChapters(ctx, id)
	if err != nil {
		log.Printf("Error fetching manga: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if manga == nil {
		return nil, utils.ErrMangaNotFound
	}

	return toMangaResponse(manga), nil
}

func (m *MangaService) ListManga(ctx context.Context, page, pageSize int) ([]response_models.MangaResponse, error) {
	manga, err := m.mangaRepository.List(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing manga: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return toMangaResponses(manga), nil
}

func (m *MangaService) SearchManga(ctx context.Context, title string, page, pageSize int) ([]response_models.MangaResponse, error) {
	manga, err := m.mangaRepository.SearchByTitle(ctx, title, page, pageSize)
	if err != nil {
		log.Printf("Error searching manga: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return toMangaResponses(manga), nil
}

func (m *MangaService) ListMangaByGenre(ctx context.Context, genreID string, page, pageSize int) ([]response_models.MangaResponse, error) {
	genre, err := m.genreRepository.GetGenreByID(ctx, genreID)
	if err != nil {
		log.Printf("Error fetching genre: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if genre == nil {
		return nil, utils.ErrGenreNotFound
	}

	manga, err := m.mangaRepository.ListByGenre(ctx, genreID, page, pageSize)
	if err != nil {
		log.Printf("Error listing manga by genre: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return toMangaResponses(manga), nil
}

func (m *MangaService) CreateManga(ctx context.Context, request request_models.CreateMangaRequest) (*response_models.MangaResponse, error) {
	genres, err := m.resolveGenres(ctx, request.GenreIDs)
	if err != nil {
		return nil, err
	}

	status := db_models.MangaStatus(request.Status)
	if status == "" {
		status = db_models.MangaStatusOngoing
	}

	manga := &db_models.Manga{
		Title:       request.Title,
		AltTitle:    request.AltTitle,
		Description: request.Description,
		Author:      request.Author,
		Status:      status,
		Genres:      genres,
	}

	if err := m.mangaRepository.Insert(ctx, manga); err != nil {
		log.Printf("Error creating manga: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return toMangaResponse(manga), nil
}

func (m *MangaService) UpdateManga(ctx context.Context, request request_models.UpdateMangaRequest) error {
	existing, err := m.mangaRepository.GetByID(ctx, request.ID.String())
	if err != nil {
		log.Printf("Error fetching manga: %v", err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrMangaNotFound
	}

	genres, err := m.resolveGenres(ctx, request.GenreIDs)
	if err != nil {
		return err
	}

	existing.Title = request.Title
	existing.AltTitle = request.AltTitle
	existing.Description = request.Description
	existing.Author = request.Author
	if request.Status != "" {
		existing.Status = db_models.MangaStatus(request.Status)
	}

	if err := m.mangaRepository.Update(ctx, existing); err != nil {
		log.Printf("Error updating manga: %v", err)
		return utils.ErrDatabaseError
	}

	if err := m.mangaRepository.ReplaceGenres(ctx, existing, genres); err != nil {
		log.Printf("Error updating manga genres: %v", err)
		return utils.ErrDatabaseError
	}

	return nil
}

func (m *MangaService) DeleteManga(ctx context.Context, id uuid.UUID) error {
	existing, err := m.mangaRepository.GetByID(ctx, id.String())
	if err != nil {
		log.Printf("Error fetching manga: %v", err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrMangaNotFound
	}

	if err := m.mangaRepository.Delete(ctx, id); err != nil {
		log.Printf("Error deleting manga: %v", err)
		return utils.ErrDatabaseError
	}

	return nil
}

func (m *MangaService) SetCover(ctx context.Context, id string, coverURL, thumbnailURL string) error {
	existing, err := m.mangaRepository.GetByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching manga: %v", err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrMangaNotFound
	}

	existing.CoverURL = coverURL
	existing.ThumbnailURL = thumbnailURL
	if err := m.mangaRepository.Update(ctx, existing); err != nil {
		log.Printf("Error updating manga cover: %v", err)
		return utils.ErrDatabaseError
	}

	return nil
}

func (m *MangaService) resolveGenres(ctx context.Context, ids []string) ([]db_models.Genre, error) {
	if len(ids) == 0 {
		return []db_models.Genre{}, nil
	}
	genres, err := m.genreRepository.GetGenresByIDs(ctx, ids)
	if err != nil {
		log.Printf("Error resolving genres: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if len(genres) != len(ids) {
		return nil, utils.ErrGenreNotFound
	}
	return genres, nil
}

func toMangaResponse(manga *db_models.Manga) *response_models.MangaResponse {
	genres := make([]string, 0, len(manga.Genres))
	for _, g := range manga.Genres {
		genres = append(genres, g.Name)
	}

	return &response_models.MangaResponse{
		ID:           manga.ID.String(),
		Title:        manga.Title,
		AltTitle:     manga.AltTitle,
		Description:  manga.Description,
		Author:       manga.Author,
		Status:       string(manga.Status),
		CoverURL:     manga.CoverURL,
		ThumbnailURL: manga.ThumbnailURL,
		ViewCount:    manga.ViewCount,
		Genres:       genres,
		ChapterCount: len(manga.Chapters),
	}
}

func toMangaResponses(manga []db_models.Manga) []response_models.MangaResponse {
	if len(manga) == 0 {
		return []response_models.MangaResponse{}
	}
	out := make([]response_models.MangaResponse, 0, len(manga))
	for i := range manga {
		out = append(out, *toMangaResponse(&manga[i]))
	}
	return out
}
