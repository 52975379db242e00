package utils

import (
	"errors"
	"math/rand"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	displayIDMin = 10000
	displayIDMax = 99999
)

// RandomDisplayID picks a candidate 5-digit public identifier. Uniqueness is
// enforced by the database; callers retry on unique-violation.
func RandomDisplayID() int {
	return displayIDMin + rand.Intn(displayIDMax-displayIDMin+1)
}

// IsUniqueViolation reports whether err is a unique constraint failure,
// either gorm's translated form or a raw lib/pq SQLSTATE 23505 from the
// seeding and migration tooling.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
