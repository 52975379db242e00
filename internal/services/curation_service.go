package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"mangadesk/internal/models/db_models"
	"mangadesk/internal/models/request_models"
	"mangadesk/internal/models/response_models"
	"mangadesk/internal/repositories"
	"mangadesk/pkg/utils"
)

const (
	carouselCacheKey = "curation:carousel"
	popularCacheKey  = "curation:popular"
	curationCacheTTL = 5 * time.Minute
	popularListSize  = 10
)

type CurationServiceInterface interface {
	GetCarousel(ctx context.Context) ([]response_models.CarouselEntryResponse, error)
	GetPopular(ctx context.Context) ([]response_models.MangaResponse, error)
	CreateEntry(ctx context.Context, request request_models.CreateCarouselEntryRequest) error
	UpdateEntry(ctx context.Context, request request_models.UpdateCarouselEntryRequest) error
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context) ([]response_models.CarouselEntryResponse, error)
}

type CurationService struct {
	curationRepo repositories.CurationRepository
	mangaRepo    repositories.MangaRepository
	cache        *redis.Client
}

func NewCurationService(curationRepo repositories.CurationRepository, mangaRepo repositories.MangaRepository, cache *redis.Client) CurationServiceInterface {
	return &CurationService{
		curationRepo: curationRepo,
		mangaRepo:    mangaRepo,
		cache:        cache,
	}
}

// GetCarousel serves the reader home carousel. Cache errors degrade to a
// direct database read.
func (s *CurationService) GetCarousel(ctx context.Context) ([]response_models.CarouselEntryResponse, error) {
	var cached []response_models.CarouselEntryResponse
	if s.cacheGet(ctx, carouselCacheKey, &cached) {
		return cached, nil
	}

	entries, err := s.curationRepo.ListEntries(ctx, true)
	if err != nil {
		log.Printf("Error listing carousel entries: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := toCarouselResponses(entries)
	s.cacheSet(ctx, carouselCacheKey, out)
	return out, nil
}

func (s *CurationService) GetPopular(ctx context.Context) ([]response_models.MangaResponse, error) {
	var cached []response_models.MangaResponse
	if s.cacheGet(ctx, popularCacheKey, &cached) {
		return cached, nil
	}

	manga, err := s.mangaRepo.TopByViews(ctx, popularListSize)
	if err != nil {
		log.Printf("Error loading popular manga: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := toMangaResponses(manga)
	s.cacheSet(ctx, popularCacheKey, out)
	return out, nil
}

func (s *CurationService) CreateEntry(ctx context.Context, request request_models.CreateCarouselEntryRequest) error {
	manga, err := s.mangaRepo.GetByID(ctx, request.MangaID.String())
	if err != nil {
		log.Printf("Error fetching manga: %v", err)
		return utils.ErrDatabaseError
	}
	if manga == nil {
		return utils.ErrMangaNotFound
	}

	imageURL := request.ImageURL
	if imageURL == "" {
		imageURL = manga.CoverURL
	}

	entry := &db_models.CarouselEntry{
		MangaID:  request.MangaID,
		ImageURL: imageURL,
		Caption:  request.Caption,
		Position: request.Position,
		IsActive: true,
	}
	if err := s.curationRepo.InsertEntry(ctx, entry); err != nil {
		log.Printf("Error creating carousel entry: %v", err)
		return utils.ErrDatabaseError
	}

	s.invalidate(ctx)
	return nil
}

func (s *CurationService) UpdateEntry(ctx context.Context, request request_models.UpdateCarouselEntryRequest) error {
	entry, err := s.curationRepo.GetEntryByID(ctx, request.ID.String())
	if err != nil {
		log.Printf("Error fetching carousel entry: %v", err)
		return utils.ErrDatabaseError
	}
	if entry == nil {
		return utils.ErrCarouselNotFound
	}

	entry.ImageURL = request.ImageURL
	entry.Caption = request.Caption
	entry.Position = request.Position
	entry.IsActive = request.IsActive

	if err := s.curationRepo.UpdateEntry(ctx, entry); err != nil {
		log.Printf("Error updating carousel entry: %v", err)
		return utils.ErrDatabaseError
	}

	s.invalidate(ctx)
	return nil
}

func (s *CurationService) DeleteEntry(ctx context.Context, id string) error {
	entry, err := s.curationRepo.GetEntryByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching carousel entry: %v", err)
		return utils.ErrDatabaseError
	}
	if entry == nil {
		return utils.ErrCarouselNotFound
	}

	if err := s.curationRepo.DeleteEntry(ctx, entry.ID); err != nil {
		log.Printf("Error deleting carousel entry: %v", err)
		return utils.ErrDatabaseError
	}

	s.invalidate(ctx)
	return nil
}

func (s *CurationService) ListEntries(ctx context.Context) ([]response_models.CarouselEntryResponse, error) {
	entries, err := s.curationRepo.ListEntries(ctx, false)
	if err != nil {
		log.Printf("Error listing carousel entries: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return toCarouselResponses(entries), nil
}

func (s *CurationService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Cache read failed for %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		log.Printf("Cache decode failed for %s: %v", key, err)
		return false
	}
	return true
}

func (s *CurationService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, curationCacheTTL).Err(); err != nil {
		log.Printf("Cache write failed for %s: %v", key, err)
	}
}

func (s *CurationService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, carouselCacheKey, popularCacheKey).Err(); err != nil {
		log.Printf("Cache invalidation failed: %v", err)
	}
}

func toCarouselResponses(entries []db_models.CarouselEntry) []response_models.CarouselEntryResponse {
	out := make([]response_models.CarouselEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, response_models.CarouselEntryResponse{
			ID:         e.ID.String(),
			MangaID:    e.MangaID.String(),
			MangaTitle: e.Manga.Title,
			ImageURL:   e.ImageURL,
			Caption:    e.Caption,
			Position:   e.Position,
			IsActive:   e.IsActive,
		})
	}
	return out
}
