package db_models

import (
	"github.com/google/uuid"
)

// Device is one client device bound to an Account. The device identifier is
// generated client-side and treated as an opaque bearer of device identity;
// there is no cryptographic verification.
type Device struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index:idx_account_device,unique"`
	DeviceID  string    `gorm:"index:idx_account_device,unique"`

	Name       string `gorm:"default:Unknown Device"`
	FirstSeen  int64
	LastSeen   int64
	LastIP     string
	LoginCount int64 `gorm:"default:0"`
	IsActive   bool  `gorm:"default:true;index"`

	Account Account `gorm:"foreignKey:AccountID"`
}
