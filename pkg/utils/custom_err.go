package utils

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrMangaNotFound      = errors.New("manga not found")
	ErrChapterNotFound    = errors.New("chapter not found")
	ErrGenreNotFound      = errors.New("genre not found")
	ErrCarouselNotFound   = errors.New("carousel entry not found")
	ErrDeviceNotFound     = errors.New("device not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrSubscriptionNeeded = errors.New("active subscription required")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrInvalidImage       = errors.New("invalid or unsupported image")
	ErrDatabaseError      = errors.New("database error")
	ErrStorageError       = errors.New("object storage error")
)
