package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"mangadesk/internal/models/db_models"
	"mangadesk/pkg/utils"
)

// Mocks

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByAuthUID(ctx context.Context, authUID string) (*db_models.Account, error) {
	args := m.Called(ctx, authUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByDisplayID(ctx context.Context, displayID int) (*db_models.Account, error) {
	args := m.Called(ctx, displayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Account, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *db_models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateBanFields(ctx context.Context, id string, bannedUntil *int64, banReason *string, violationCount int, lastViolation *int64) error {
	args := m.Called(ctx, id, bannedUntil, banReason, violationCount, lastViolation)
	return args.Error(0)
}

func (m *MockAccountRepository) CountDevices(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockDeviceRepository struct {
	mock.Mock
}

func (m *MockDeviceRepository) ListActive(ctx context.Context, accountID uuid.UUID) ([]db_models.Device, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Device), args.Error(1)
}

func (m *MockDeviceRepository) ListAll(ctx context.Context, accountID uuid.UUID) ([]db_models.Device, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Device), args.Error(1)
}

func (m *MockDeviceRepository) Insert(ctx context.Context, device *db_models.Device) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}

func (m *MockDeviceRepository) Touch(ctx context.Context, id uuid.UUID, lastSeen int64, lastIP string) error {
	args := m.Called(ctx, id, lastSeen, lastIP)
	return args.Error(0)
}

func (m *MockDeviceRepository) DeleteByDeviceID(ctx context.Context, accountID uuid.UUID, deviceID string) error {
	args := m.Called(ctx, accountID, deviceID)
	return args.Error(0)
}

func (m *MockDeviceRepository) DeleteAll(ctx context.Context, accountID uuid.UUID) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// Helpers

func testPolicyConfig() PolicyConfig {
	return PolicyConfig{MaxDevices: 3, BanDuration: 7 * 24 * time.Hour}
}

func testAccount() *db_models.Account {
	acc := &db_models.Account{}
	acc.ID = uuid.New()
	acc.AuthUID = "auth-uid-1"
	acc.DisplayID = 12345
	return acc
}

func activeDevices(accountID uuid.UUID, deviceIDs ...string) []db_models.Device {
	out := make([]db_models.Device, 0, len(deviceIDs))
	for _, id := range deviceIDs {
		dev := db_models.Device{
			AccountID: accountID,
			DeviceID:  id,
			Name:      "Device " + id,
			IsActive:  true,
		}
		dev.ID = uuid.New()
		out = append(out, dev)
	}
	return out
}

// Tests

func TestEvaluateLoginBannedAccountDenied(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	account := testAccount()
	bannedUntil := time.Now().Add(48 * time.Hour).Unix()
	reason := ViolationReason
	account.BannedUntil = &bannedUntil
	account.BanReason = &reason
	account.ViolationCount = 2

	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)

	decision, err := service.EvaluateLogin(context.Background(), account.ID.String(), "device-x", "", "10.0.0.1")
	assert.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, bannedUntil, decision.BannedUntil)
	assert.Equal(t, ViolationReason, decision.Reason)
	assert.Equal(t, 2, decision.ViolationCount)

	// A banned login must not touch or register anything.
	mockDevices.AssertNotCalled(t, "ListActive", mock.Anything, mock.Anything)
	mockDevices.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockAccounts.AssertNotCalled(t, "UpdateBanFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockAccounts.AssertExpectations(t)
}

func TestEvaluateLoginExpiredBanClearedThenAllowed(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	account := testAccount()
	bannedUntil := time.Now().Add(-time.Hour).Unix()
	reason := ViolationReason
	lastViolation := time.Now().Add(-8 * 24 * time.Hour).Unix()
	account.BannedUntil = &bannedUntil
	account.BanReason = &reason
	account.ViolationCount = 1
	account.LastViolationDate = &lastViolation

	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)
	// Ban columns cleared; the violation history survives.
	mockAccounts.On("UpdateBanFields", mock.Anything, account.ID.String(),
		(*int64)(nil), (*string)(nil), 1, &lastViolation).Return(nil)
	mockDevices.On("ListActive", mock.Anything, account.ID).Return([]db_models.Device{}, nil)
	mockDevices.On("Insert", mock.Anything, mock.MatchedBy(func(dev *db_models.Device) bool {
		return dev.DeviceID == "device-a" && dev.IsActive && dev.LoginCount == 1
	})).Return(nil)

	decision, err := service.EvaluateLogin(context.Background(), account.ID.String(), "device-a", "Pixel 9", "10.0.0.1")
	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.True(t, decision.IsNewDevice)
	assert.Equal(t, 1, decision.ActiveDeviceCount)

	mockAccounts.AssertExpectations(t)
	mockDevices.AssertExpectations(t)
}

func TestEvaluateLoginKnownDeviceTouched(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	account := testAccount()
	devices := activeDevices(account.ID, "device-a", "device-b", "device-c")

	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)
	mockDevices.On("ListActive", mock.Anything, account.ID).Return(devices, nil)
	mockDevices.On("Touch", mock.Anything, devices[1].ID, mock.Anything, "10.0.0.2").Return(nil)

	decision, err := service.EvaluateLogin(context.Background(), account.ID.String(), "device-b", "", "10.0.0.2")
	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.False(t, decision.IsNewDevice)
	assert.Equal(t, 3, decision.ActiveDeviceCount)

	// Re-login from a known device never registers a new row, even at the cap.
	mockDevices.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockAccounts.AssertNotCalled(t, "UpdateBanFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockAccounts.AssertExpectations(t)
	mockDevices.AssertExpectations(t)
}

func TestEvaluateLoginNewDeviceUnderCap(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	account := testAccount()
	devices := activeDevices(account.ID, "device-a", "device-b")

	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)
	mockDevices.On("ListActive", mock.Anything, account.ID).Return(devices, nil)
	mockDevices.On("Insert", mock.Anything, mock.MatchedBy(func(dev *db_models.Device) bool {
		return dev.AccountID == account.ID && dev.DeviceID == "device-c" && dev.Name == "iPad"
	})).Return(nil)

	decision, err := service.EvaluateLogin(context.Background(), account.ID.String(), "device-c", "iPad", "10.0.0.3")
	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.True(t, decision.IsNewDevice)
	assert.Equal(t, 3, decision.ActiveDeviceCount)
	assert.Equal(t, 3, decision.MaxDevices)

	mockAccounts.AssertExpectations(t)
	mockDevices.AssertExpectations(t)
}

func TestEvaluateLoginFourthDeviceBansAccount(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	account := testAccount()
	account.ViolationCount = 0
	devices := activeDevices(account.ID, "device-a", "device-b", "device-c")

	before := time.Now()
	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)
	mockDevices.On("ListActive", mock.Anything, account.ID).Return(devices, nil)
	mockAccounts.On("UpdateBanFields", mock.Anything, account.ID.String(),
		mock.MatchedBy(func(bannedUntil *int64) bool {
			if bannedUntil == nil {
				return false
			}
			expected := before.Add(7 * 24 * time.Hour).Unix()
			return *bannedUntil >= expected && *bannedUntil <= expected+5
		}),
		mock.MatchedBy(func(reason *string) bool {
			return reason != nil && *reason == ViolationReason
		}),
		1, mock.Anything).Return(nil)

	decision, err := service.EvaluateLogin(context.Background(), account.ID.String(), "device-d", "Fourth", "10.0.0.4")
	assert.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ViolationReason, decision.Reason)
	assert.Equal(t, 1, decision.ViolationCount)
	assert.Greater(t, decision.BannedUntil, time.Now().Unix())

	// The offending device is never registered.
	mockDevices.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockAccounts.AssertExpectations(t)
	mockDevices.AssertExpectations(t)
}

func TestEvaluateLoginUnknownAccount(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	mockAccounts.On("FindById", mock.Anything, "missing").Return(nil, nil)

	decision, err := service.EvaluateLogin(context.Background(), "missing", "device-a", "", "")
	assert.Nil(t, decision)
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestCheckSuspensionActiveBan(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	account := testAccount()
	bannedUntil := time.Now().Add(24 * time.Hour).Unix()
	reason := ViolationReason
	account.BannedUntil = &bannedUntil
	account.BanReason = &reason
	account.ViolationCount = 3

	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)

	status, err := service.CheckSuspension(context.Background(), account.ID.String())
	assert.NoError(t, err)
	assert.True(t, status.Suspended)
	assert.Equal(t, bannedUntil, status.BannedUntil)
	assert.Equal(t, ViolationReason, status.Reason)
	assert.Equal(t, 3, status.ViolationCount)
}

func TestCheckSuspensionExpiredBanCleared(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	account := testAccount()
	bannedUntil := time.Now().Add(-time.Minute).Unix()
	reason := ViolationReason
	account.BannedUntil = &bannedUntil
	account.BanReason = &reason
	account.ViolationCount = 1

	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)
	mockAccounts.On("UpdateBanFields", mock.Anything, account.ID.String(),
		(*int64)(nil), (*string)(nil), 1, (*int64)(nil)).Return(nil)

	status, err := service.CheckSuspension(context.Background(), account.ID.String())
	assert.NoError(t, err)
	assert.False(t, status.Suspended)
	assert.Zero(t, status.BannedUntil)

	mockAccounts.AssertExpectations(t)
}

func TestCheckSuspensionNotBanned(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	account := testAccount()
	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)

	status, err := service.CheckSuspension(context.Background(), account.ID.String())
	assert.NoError(t, err)
	assert.False(t, status.Suspended)
	mockAccounts.AssertNotCalled(t, "UpdateBanFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveDeviceNotFound(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	account := testAccount()
	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)
	mockDevices.On("DeleteByDeviceID", mock.Anything, account.ID, "gone").Return(gorm.ErrRecordNotFound)

	err := service.RemoveDevice(context.Background(), account.ID.String(), "gone")
	assert.ErrorIs(t, err, utils.ErrDeviceNotFound)
}

func TestRemoveDeviceFreesSlotForNewLogin(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	account := testAccount()
	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)
	mockDevices.On("DeleteByDeviceID", mock.Anything, account.ID, "device-a").Return(nil)

	err := service.RemoveDevice(context.Background(), account.ID.String(), "device-a")
	assert.NoError(t, err)

	// With one slot freed, the next new device fits under the cap again.
	remaining := activeDevices(account.ID, "device-b", "device-c")
	mockDevices.On("ListActive", mock.Anything, account.ID).Return(remaining, nil)
	mockDevices.On("Insert", mock.Anything, mock.Anything).Return(nil)

	decision, err := service.EvaluateLogin(context.Background(), account.ID.String(), "device-d", "", "")
	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.True(t, decision.IsNewDevice)
	assert.Equal(t, 3, decision.ActiveDeviceCount)
}

func TestClearAllDevices(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	account := testAccount()
	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)
	mockDevices.On("DeleteAll", mock.Anything, account.ID).Return(nil)

	err := service.ClearAllDevices(context.Background(), account.ID.String())
	assert.NoError(t, err)
	mockDevices.AssertExpectations(t)
}

func TestGetDevicesIncludesInactive(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockDevices := new(MockDeviceRepository)
	service := NewDevicePolicyService(mockAccounts, mockDevices, testPolicyConfig())

	account := testAccount()
	all := activeDevices(account.ID, "device-a", "device-b")
	all[1].IsActive = false

	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)
	mockDevices.On("ListAll", mock.Anything, account.ID).Return(all, nil)

	out, err := service.GetDevices(context.Background(), account.ID.String())
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "device-a", out[0].DeviceID)
	assert.False(t, out[1].IsActive)
}
