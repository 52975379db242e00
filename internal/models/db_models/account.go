package db_models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubStatusSubscribed    SubscriptionStatus = "subscribed"
	SubStatusNotSubscribed SubscriptionStatus = "not_subscribed"
)

type Account struct {
	BaseModel
	AuthUID     string `gorm:"uniqueIndex"` // identity provider subject, opaque
	DisplayID   int    `gorm:"uniqueIndex"` // 5-digit public identifier, assigned once
	Email       string `gorm:"index"`
	DisplayName string
	Role        string `gorm:"default:user"` // "user" | "admin"
	// Set for admin accounts only; reader identities come from the external
	// identity provider and carry no password here.
	PasswordHash string

	SubscriptionStatus SubscriptionStatus `gorm:"default:not_subscribed"`
	SubscriptionStart  *int64
	SubscriptionEnd    *int64

	XP int64 `gorm:"default:0"`

	BannedUntil       *int64
	BanReason         *string
	ViolationCount    int `gorm:"default:0"`
	LastViolationDate *int64

	Devices []Device `gorm:"foreignKey:AccountID"`
}

// SubscriptionActive is the single subscription predicate shared by every
// call site (content gating, listings, dashboard). An end date in the past
// means inactive even while the stored status still says subscribed.
func (a *Account) SubscriptionActive(now time.Time) bool {
	if a.SubscriptionStatus != SubStatusSubscribed {
		return false
	}
	if a.SubscriptionEnd == nil {
		return false
	}
	return time.Unix(*a.SubscriptionEnd, 0).After(now)
}

// Banned reports whether the account has a ban that is still in force.
// Expired bans are cleared lazily by the device policy service, not here.
func (a *Account) Banned(now time.Time) bool {
	if a.BannedUntil == nil {
		return false
	}
	return time.Unix(*a.BannedUntil, 0).After(now)
}
