package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"mangadesk/internal/models/db_models"
	"mangadesk/internal/models/request_models"
	"mangadesk/internal/models/response_models"
	"mangadesk/internal/repositories"
	"mangadesk/pkg/utils"
)

type ChapterServiceInterface interface {
	CreateChapter(ctx context.Context, request request_models.CreateChapterRequest) (*response_models.ChapterResponse, error)
	UpdateChapter(ctx context.Context, request request_models.UpdateChapterRequest) error
	DeleteChapter(ctx context.Context, id uuid.UUID) error
	ListChapters(ctx context.Context, mangaID uuid.UUID) ([]response_models.ChapterResponse, error)
	// ReadChapter gates premium content behind the shared subscription
	// predicate and the device policy's suspension check, and counts the view.
	ReadChapter(ctx context.Context, chapterID, accountID string) (*response_models.ChapterResponse, error)
	ReorderPages(ctx context.Context, request request_models.ReorderPagesRequest) error
}

type ChapterService struct {
	chapterRepo repositories.ChapterRepository
	mangaRepo   repositories.MangaRepository
	accountRepo repositories.AccountRepository
	policy      DevicePolicyServiceInterface
}

func NewChapterService(
	chapterRepo repositories.ChapterRepository,
	mangaRepo repositories.MangaRepository,
	accountRepo repositories.AccountRepository,
	policy DevicePolicyServiceInterface) ChapterServiceInterface {
	return &ChapterService{
		chapterRepo: chapterRepo,
		mangaRepo:   mangaRepo,
		accountRepo: accountRepo,
		policy:      policy,
	}
}

func (c *ChapterService) CreateChapter(ctx context.Context, request request_models.CreateChapterRequest) (*response_models.ChapterResponse, error) {
	manga, err := c.mangaRepo.GetByID(ctx, request.MangaID.String())
	if err != nil {
		log.Printf("Error fetching manga: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if manga == nil {
		return nil, utils.ErrMangaNotFound
	}

	chapter := &db_models.Chapter{
		MangaID:    request.MangaID,
		Number:     request.Number,
		Title:      request.Title,
		ReleasedAt: time.Now().Unix(),
		IsPremium:  request.IsPremium,
	}
	if err := c.chapterRepo.Insert(ctx, chapter); err != nil {
		log.Printf("Error creating chapter: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return toChapterResponse(chapter, false), nil
}

func (c *ChapterService) UpdateChapter(ctx context.Context, request request_models.UpdateChapterRequest) error {
	existing, err := c.chapterRepo.GetByID(ctx, request.ID.String())
	if err != nil {
		log.Printf("Error fetching chapter: %v", err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrChapterNotFound
	}

	existing.Number = request.Number
	existing.Title = request.Title
	existing.IsPremium = request.IsPremium

	if err := c.chapterRepo.Update(ctx, existing); err != nil {
		log.Printf("Error updating chapter: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (c *ChapterService) DeleteChapter(ctx context.Context, id uuid.UUID) error {
	existing, err := c.chapterRepo.GetByID(ctx, id.String())
	if err != nil {
		log.Printf("Error fetching chapter: %v", err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrChapterNotFound
	}

	if err := c.chapterRepo.Delete(ctx, id); err != nil {
		log.Printf("Error deleting chapter: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (c *ChapterService) ListChapters(ctx context.Context, mangaID uuid.UUID) ([]response_models.ChapterResponse, error) {
	manga, err := c.mangaRepo.GetByID(ctx, mangaID.String())
	if err != nil {
		log.Printf("Error fetching manga: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if manga == nil {
		return nil, utils.ErrMangaNotFound
	}

	chapters, err := c.chapterRepo.ListByManga(ctx, mangaID)
	if err != nil {
		log.Printf("Error listing chapters: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ChapterResponse, 0, len(chapters))
	for i := range chapters {
		out = append(out, *toChapterResponse(&chapters[i], false))
	}
	return out, nil
}

func (c *ChapterService) ReadChapter(ctx context.Context, chapterID, accountID string) (*response_models.ChapterResponse, error) {
	chapter, err := c.chapterRepo.GetByIDWithPages(ctx, chapterID)
	if err != nil {
		log.Printf("Error fetching chapter: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if chapter == nil {
		return nil, utils.ErrChapterNotFound
	}

	status, err := c.policy.CheckSuspension(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if status.Suspended {
		return nil, utils.ErrAccountSuspended
	}

	if chapter.IsPremium {
		account, err := c.accountRepo.FindById(ctx, accountID)
		if err != nil {
			log.Printf("Error loading account %s: %v", accountID, err)
			return nil, utils.ErrDatabaseError
		}
		if account == nil {
			return nil, utils.ErrAccountNotFound
		}
		if !account.SubscriptionActive(time.Now()) {
			return nil, utils.ErrSubscriptionNeeded
		}
	}

	if err := c.chapterRepo.IncrementViews(ctx, chapter.ID); err != nil {
		log.Printf("Error incrementing chapter views: %v", err)
	}
	if err := c.mangaRepo.IncrementViews(ctx, chapter.MangaID, 1); err != nil {
		log.Printf("Error incrementing manga views: %v", err)
	}

	return toChapterResponse(chapter, true), nil
}

func (c *ChapterService) ReorderPages(ctx context.Context, request request_models.ReorderPagesRequest) error {
	existing, err := c.chapterRepo.GetByID(ctx, request.ChapterID.String())
	if err != nil {
		log.Printf("Error fetching chapter: %v", err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrChapterNotFound
	}

	if err := c.chapterRepo.ReorderPages(ctx, request.ChapterID, request.PageIDs); err != nil {
		log.Printf("Error reordering pages: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func toChapterResponse(chapter *db_models.Chapter, withPages bool) *response_models.ChapterResponse {
	resp := &response_models.ChapterResponse{
		ID:         chapter.ID.String(),
		MangaID:    chapter.MangaID.String(),
		Number:     chapter.Number,
		Title:      chapter.Title,
		ReleasedAt: chapter.ReleasedAt,
		ViewCount:  chapter.ViewCount,
		IsPremium:  chapter.IsPremium,
	}
	if withPages {
		pages := make([]response_models.PageResponse, 0, len(chapter.Pages))
		for _, p := range chapter.Pages {
			pages = append(pages, response_models.PageResponse{
				ID:       p.ID.String(),
				Index:    p.Index,
				ImageURL: p.ImageURL,
			})
		}
		resp.Pages = pages
	}
	return resp
}
