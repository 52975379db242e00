package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"mangadesk/internal/infra"
	"mangadesk/internal/models/db_models"
	"mangadesk/internal/models/response_models"
	"mangadesk/internal/repositories"
	"mangadesk/pkg/imaging"
	"mangadesk/pkg/utils"
)

const thumbnailMaxWidth = 320

type UploadServiceInterface interface {
	UploadCover(ctx context.Context, mangaID string, contentType string, data []byte) (*response_models.UploadResponse, error)
	UploadPage(ctx context.Context, chapterID string, index int, contentType string, data []byte) (*response_models.UploadResponse, error)
	DeleteChapterAssets(ctx context.Context, chapterID string) error
}

type UploadService struct {
	store       infra.ObjectStore
	mangaSvc    MangaServiceInterface
	chapterRepo repositories.ChapterRepository
}

func NewUploadService(store infra.ObjectStore, mangaSvc MangaServiceInterface, chapterRepo repositories.ChapterRepository) UploadServiceInterface {
	return &UploadService{
		store:       store,
		mangaSvc:    mangaSvc,
		chapterRepo: chapterRepo,
	}
}

// UploadCover stores the original cover plus a width-capped thumbnail and
// records both URLs on the manga.
func (u *UploadService) UploadCover(ctx context.Context, mangaID string, contentType string, data []byte) (*response_models.UploadResponse, error) {
	if !supportedImageType(contentType) {
		return nil, utils.ErrInvalidImage
	}

	thumb, err := imaging.Thumbnail(data, thumbnailMaxWidth)
	if err != nil {
		log.Printf("Error building thumbnail: %v", err)
		return nil, utils.ErrInvalidImage
	}

	stamp := time.Now().Unix()
	coverPath := fmt.Sprintf("covers/%s/%d", mangaID, stamp)
	coverURL, err := u.store.Upload(ctx, coverPath, contentType, bytes.NewReader(data))
	if err != nil {
		log.Printf("Error uploading cover: %v", err)
		return nil, utils.ErrStorageError
	}

	thumbPath := fmt.Sprintf("covers/%s/%d_thumb", mangaID, stamp)
	thumbURL, err := u.store.Upload(ctx, thumbPath, "image/jpeg", bytes.NewReader(thumb))
	if err != nil {
		log.Printf("Error uploading thumbnail: %v", err)
		return nil, utils.ErrStorageError
	}

	if err := u.mangaSvc.SetCover(ctx, mangaID, coverURL, thumbURL); err != nil {
		return nil, err
	}

	return &response_models.UploadResponse{
		URL:          coverURL,
		ThumbnailURL: thumbURL,
		Path:         coverPath,
	}, nil
}

func (u *UploadService) UploadPage(ctx context.Context, chapterID string, index int, contentType string, data []byte) (*response_models.UploadResponse, error) {
	if !supportedImageType(contentType) {
		return nil, utils.ErrInvalidImage
	}

	chapter, err := u.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		log.Printf("Error fetching chapter: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if chapter == nil {
		return nil, utils.ErrChapterNotFound
	}

	path := fmt.Sprintf("chapters/%s/%d_%s", chapterID, index, uuid.New().String())
	url, err := u.store.Upload(ctx, path, contentType, bytes.NewReader(data))
	if err != nil {
		log.Printf("Error uploading page: %v", err)
		return nil, utils.ErrStorageError
	}

	page := &db_models.Page{
		ChapterID: chapter.ID,
		Index:     index,
		ImageURL:  url,
		ImagePath: path,
	}
	if err := u.chapterRepo.InsertPage(ctx, page); err != nil {
		log.Printf("Error recording page: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.UploadResponse{URL: url, Path: path}, nil
}

// DeleteChapterAssets removes the stored objects for a chapter's pages and
// then the page rows. Storage deletes are best effort; a missing object must
// not block the database cleanup.
func (u *UploadService) DeleteChapterAssets(ctx context.Context, chapterID string) error {
	chapter, err := u.chapterRepo.GetByIDWithPages(ctx, chapterID)
	if err != nil {
		log.Printf("Error fetching chapter: %v", err)
		return utils.ErrDatabaseError
	}
	if chapter == nil {
		return utils.ErrChapterNotFound
	}

	for _, page := range chapter.Pages {
		if page.ImagePath == "" {
			continue
		}
		if err := u.store.Delete(ctx, page.ImagePath); err != nil {
			log.Printf("Error deleting object %s: %v", page.ImagePath, err)
		}
	}

	if err := u.chapterRepo.DeletePages(ctx, chapter.ID); err != nil {
		log.Printf("Error deleting pages: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func supportedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png":
		return true
	}
	return false
}
