package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangadesk/internal/models/db_models"
)

type DeviceRepository interface {
	ListActive(ctx context.Context, accountID uuid.UUID) ([]db_models.Device, error)
	ListAll(ctx context.Context, accountID uuid.UUID) ([]db_models.Device, error)
	Insert(ctx context.Context, device *db_models.Device) error
	// Touch updates last-seen, origin and bumps the login counter by one.
	Touch(ctx context.Context, id uuid.UUID, lastSeen int64, lastIP string) error
	DeleteByDeviceID(ctx context.Context, accountID uuid.UUID, deviceID string) error
	DeleteAll(ctx context.Context, accountID uuid.UUID) error
}

type deviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

func (d *deviceRepository) ListActive(ctx context.Context, accountID uuid.UUID) ([]db_models.Device, error) {
	var devices []db_models.Device
	err := d.db.WithContext(ctx).
		Where("account_id = ? AND is_active = ?", accountID, true).
		Order("first_seen ASC").
		Find(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

func (d *deviceRepository) ListAll(ctx context.Context, accountID uuid.UUID) ([]db_models.Device, error) {
	var devices []db_models.Device
	err := d.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("first_seen ASC").
		Find(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

func (d *deviceRepository) Insert(ctx context.Context, device *db_models.Device) error {
	return d.db.WithContext(ctx).Create(device).Error
}

func (d *deviceRepository) Touch(ctx context.Context, id uuid.UUID, lastSeen int64, lastIP string) error {
	return d.db.WithContext(ctx).
		Model(&db_models.Device{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_seen":   lastSeen,
			"last_ip":     lastIP,
			"login_count": gorm.Expr("login_count + 1"),
		}).Error
}

func (d *deviceRepository) DeleteByDeviceID(ctx context.Context, accountID uuid.UUID, deviceID string) error {
	res := d.db.WithContext(ctx).
		Unscoped().
		Where("account_id = ? AND device_id = ?", accountID, deviceID).
		Delete(&db_models.Device{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (d *deviceRepository) DeleteAll(ctx context.Context, accountID uuid.UUID) error {
	err := d.db.WithContext(ctx).
		Unscoped().
		Where("account_id = ?", accountID).
		Delete(&db_models.Device{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
