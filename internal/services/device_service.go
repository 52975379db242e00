package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"mangadesk/internal/models/db_models"
	"mangadesk/internal/models/response_models"
	"mangadesk/internal/repositories"
	"mangadesk/pkg/utils"
)

// LoginDecision is the outcome of a device verification. When Allowed is
// false the ban fields describe the suspension the client must surface.
type LoginDecision struct {
	Allowed           bool
	IsNewDevice       bool
	ActiveDeviceCount int
	MaxDevices        int
	BannedUntil       int64
	Reason            string
	ViolationCount    int
}

type SuspensionStatus struct {
	Suspended      bool
	BannedUntil    int64
	Reason         string
	ViolationCount int
}

type DevicePolicyServiceInterface interface {
	EvaluateLogin(ctx context.Context, accountID, deviceID, deviceName, originIP string) (*LoginDecision, error)
	CheckSuspension(ctx context.Context, accountID string) (*SuspensionStatus, error)
	GetDevices(ctx context.Context, accountID string) ([]response_models.DeviceResponse, error)
	RemoveDevice(ctx context.Context, accountID, deviceID string) error
	ClearAllDevices(ctx context.Context, accountID string) error
}

type DevicePolicyService struct {
	accountRepo repositories.AccountRepository
	deviceRepo  repositories.DeviceRepository
	cfg         PolicyConfig
}

func NewDevicePolicyService(accountRepo repositories.AccountRepository, deviceRepo repositories.DeviceRepository, cfg PolicyConfig) DevicePolicyServiceInterface {
	return &DevicePolicyService{
		accountRepo: accountRepo,
		deviceRepo:  deviceRepo,
		cfg:         cfg,
	}
}

// EvaluateLogin decides whether a login from deviceID is allowed, registers
// new devices under the cap and bans the account on a cap violation. The
// count-then-insert step is not wrapped in a transaction, so two concurrent
// first logins from distinct new devices can both land; that matches the
// behavior reader clients have always seen.
func (d *DevicePolicyService) EvaluateLogin(ctx context.Context, accountID, deviceID, deviceName, originIP string) (*LoginDecision, error) {
	account, err := d.accountRepo.FindById(ctx, accountID)
	if err != nil {
		log.Printf("Error loading account %s: %v", accountID, err)
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	now := time.Now()

	switch evaluateBan(account.BannedUntil, now) {
	case banActive:
		return d.deniedDecision(account), nil
	case banExpired:
		if err := d.clearBan(ctx, account); err != nil {
			return nil, err
		}
	}

	devices, err := d.deviceRepo.ListActive(ctx, account.ID)
	if err != nil {
		log.Printf("Error listing devices for account %s: %v", accountID, err)
		return nil, utils.ErrDatabaseError
	}

	outcome := evaluateDevices(devices, deviceID, d.cfg.MaxDevices)

	if outcome.Known != nil {
		if err := d.deviceRepo.Touch(ctx, outcome.Known.ID, now.Unix(), originIP); err != nil {
			log.Printf("Error touching device %s: %v", deviceID, err)
			return nil, utils.ErrDatabaseError
		}
		return &LoginDecision{
			Allowed:           true,
			IsNewDevice:       false,
			ActiveDeviceCount: outcome.ActiveCount,
			MaxDevices:        d.cfg.MaxDevices,
		}, nil
	}

	if outcome.Violation {
		bannedUntil := now.Add(d.cfg.BanDuration).Unix()
		reason := ViolationReason
		lastViolation := now.Unix()
		violationCount := account.ViolationCount + 1

		err := d.accountRepo.UpdateBanFields(ctx, accountID, &bannedUntil, &reason, violationCount, &lastViolation)
		if err != nil {
			log.Printf("Error banning account %s: %v", accountID, err)
			return nil, utils.ErrDatabaseError
		}

		return &LoginDecision{
			Allowed:        false,
			MaxDevices:     d.cfg.MaxDevices,
			BannedUntil:    bannedUntil,
			Reason:         reason,
			ViolationCount: violationCount,
		}, nil
	}

	name := deviceName
	if name == "" {
		name = "Unknown Device"
	}
	device := &db_models.Device{
		AccountID:  account.ID,
		DeviceID:   deviceID,
		Name:       name,
		FirstSeen:  now.Unix(),
		LastSeen:   now.Unix(),
		LastIP:     originIP,
		LoginCount: 1,
		IsActive:   true,
	}
	if err := d.deviceRepo.Insert(ctx, device); err != nil {
		log.Printf("Error registering device %s: %v", deviceID, err)
		return nil, utils.ErrDatabaseError
	}

	return &LoginDecision{
		Allowed:           true,
		IsNewDevice:       true,
		ActiveDeviceCount: outcome.ActiveCount + 1,
		MaxDevices:        d.cfg.MaxDevices,
	}, nil
}

// CheckSuspension answers "is this account currently banned" without a
// device context. Expired bans are cleared here too, so an account behaves
// as unbanned the instant the ban time elapses even though no background
// sweep exists.
func (d *DevicePolicyService) CheckSuspension(ctx context.Context, accountID string) (*SuspensionStatus, error) {
	account, err := d.accountRepo.FindById(ctx, accountID)
	if err != nil {
		log.Printf("Error loading account %s: %v", accountID, err)
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	switch evaluateBan(account.BannedUntil, time.Now()) {
	case banActive:
		status := &SuspensionStatus{
			Suspended:      true,
			BannedUntil:    *account.BannedUntil,
			ViolationCount: account.ViolationCount,
		}
		if account.BanReason != nil {
			status.Reason = *account.BanReason
		}
		return status, nil
	case banExpired:
		if err := d.clearBan(ctx, account); err != nil {
			return nil, err
		}
	}

	return &SuspensionStatus{Suspended: false}, nil
}

func (d *DevicePolicyService) GetDevices(ctx context.Context, accountID string) ([]response_models.DeviceResponse, error) {
	account, err := d.accountRepo.FindById(ctx, accountID)
	if err != nil {
		log.Printf("Error loading account %s: %v", accountID, err)
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	devices, err := d.deviceRepo.ListAll(ctx, account.ID)
	if err != nil {
		log.Printf("Error listing devices for account %s: %v", accountID, err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.DeviceResponse, 0, len(devices))
	for _, dev := range devices {
		out = append(out, response_models.DeviceResponse{
			DeviceID:   dev.DeviceID,
			Name:       dev.Name,
			FirstSeen:  dev.FirstSeen,
			LastSeen:   dev.LastSeen,
			LastIP:     dev.LastIP,
			LoginCount: dev.LoginCount,
			IsActive:   dev.IsActive,
		})
	}
	return out, nil
}

// RemoveDevice deletes the record outright. No cap or ban logic runs here;
// removal is an explicit administrative action.
func (d *DevicePolicyService) RemoveDevice(ctx context.Context, accountID, deviceID string) error {
	account, err := d.accountRepo.FindById(ctx, accountID)
	if err != nil {
		log.Printf("Error loading account %s: %v", accountID, err)
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	if err := d.deviceRepo.DeleteByDeviceID(ctx, account.ID, deviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrDeviceNotFound
		}
		log.Printf("Error deleting device %s: %v", deviceID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (d *DevicePolicyService) ClearAllDevices(ctx context.Context, accountID string) error {
	account, err := d.accountRepo.FindById(ctx, accountID)
	if err != nil {
		log.Printf("Error loading account %s: %v", accountID, err)
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	if err := d.deviceRepo.DeleteAll(ctx, account.ID); err != nil {
		log.Printf("Error clearing devices for account %s: %v", accountID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (d *DevicePolicyService) deniedDecision(account *db_models.Account) *LoginDecision {
	decision := &LoginDecision{
		Allowed:        false,
		MaxDevices:     d.cfg.MaxDevices,
		BannedUntil:    *account.BannedUntil,
		ViolationCount: account.ViolationCount,
	}
	if account.BanReason != nil {
		decision.Reason = *account.BanReason
	}
	return decision
}

func (d *DevicePolicyService) clearBan(ctx context.Context, account *db_models.Account) error {
	err := d.accountRepo.UpdateBanFields(ctx, account.ID.String(), nil, nil, account.ViolationCount, account.LastViolationDate)
	if err != nil {
		log.Printf("Error clearing expired ban for account %s: %v", account.ID, err)
		return utils.ErrDatabaseError
	}
	account.BannedUntil = nil
	account.BanReason = nil
	return nil
}
