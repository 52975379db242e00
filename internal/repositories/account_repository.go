package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mangadesk/internal/models/db_models"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	FindById(ctx context.Context, id string) (*db_models.Account, error)
	FindByAuthUID(ctx context.Context, authUID string) (*db_models.Account, error)
	FindByDisplayID(ctx context.Context, displayID int) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.Account, error)
	Update(ctx context.Context, account *db_models.Account) error
	// UpdateBanFields writes only the ban columns; nil pointers clear them.
	UpdateBanFields(ctx context.Context, id string, bannedUntil *int64, banReason *string, violationCount int, lastViolation *int64) error
	CountDevices(ctx context.Context, id string) (int64, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Create(account).Error
}

func (a *accountRepository) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByAuthUID(ctx context.Context, authUID string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "auth_uid = ?", authUID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByDisplayID(ctx context.Context, displayID int) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "display_id = ?", displayID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Account, error) {
	var accounts []db_models.Account
	offset := (page - 1) * pageSize
	err := a.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (a *accountRepository) Update(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Save(account).Error
}

func (a *accountRepository) UpdateBanFields(ctx context.Context, id string, bannedUntil *int64, banReason *string, violationCount int, lastViolation *int64) error {
	return a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"banned_until":        bannedUntil,
			"ban_reason":          banReason,
			"violation_count":     violationCount,
			"last_violation_date": lastViolation,
		}).Error
}

func (a *accountRepository) CountDevices(ctx context.Context, id string) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&db_models.Device{}).
		Where("account_id = ?", id).
		Count(&count).Error
	return count, err
}
