package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mangadesk/internal/models/response_models"
	"mangadesk/internal/services"
	"mangadesk/pkg/utils"
)

type MockDevicePolicyService struct {
	mock.Mock
}

func (m *MockDevicePolicyService) EvaluateLogin(ctx context.Context, accountID, deviceID, deviceName, originIP string) (*services.LoginDecision, error) {
	args := m.Called(ctx, accountID, deviceID, deviceName, originIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginDecision), args.Error(1)
}

func (m *MockDevicePolicyService) CheckSuspension(ctx context.Context, accountID string) (*services.SuspensionStatus, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SuspensionStatus), args.Error(1)
}

func (m *MockDevicePolicyService) GetDevices(ctx context.Context, accountID string) ([]response_models.DeviceResponse, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response_models.DeviceResponse), args.Error(1)
}

func (m *MockDevicePolicyService) RemoveDevice(ctx context.Context, accountID, deviceID string) error {
	args := m.Called(ctx, accountID, deviceID)
	return args.Error(0)
}

func (m *MockDevicePolicyService) ClearAllDevices(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func newDeviceRouter(service services.DevicePolicyServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewDeviceController(service)
	r := gin.New()
	r.POST("/device/verify-device", controller.VerifyDevice)
	r.POST("/device/check-suspension", controller.CheckSuspension)
	r.POST("/device/get-devices", controller.GetDevices)
	r.POST("/device/delete-device", controller.DeleteDevice)
	r.POST("/device/clear-devices", controller.ClearDevices)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body map[string]interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func readerToken(t *testing.T, accountID uuid.UUID) string {
	token, err := utils.CreateToken(accountID, "user", time.Hour)
	assert.NoError(t, err)
	return token
}

func TestVerifyDeviceAllowed(t *testing.T) {
	mockService := new(MockDevicePolicyService)
	router := newDeviceRouter(mockService)

	accountID := uuid.New()
	mockService.On("EvaluateLogin", mock.Anything, accountID.String(), "device-1", "Pixel 9", mock.Anything).
		Return(&services.LoginDecision{
			Allowed:           true,
			IsNewDevice:       true,
			ActiveDeviceCount: 2,
			MaxDevices:        3,
		}, nil)

	w, body := postJSON(t, router, "/device/verify-device", map[string]interface{}{
		"token":      readerToken(t, accountID),
		"deviceId":   "device-1",
		"deviceName": "Pixel 9",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["banned"])
	assert.Equal(t, float64(2), body["activeDeviceCount"])
	assert.Equal(t, float64(3), body["maxDevices"])
	assert.Equal(t, true, body["isNewDevice"])
}

func TestVerifyDeviceBanned(t *testing.T) {
	mockService := new(MockDevicePolicyService)
	router := newDeviceRouter(mockService)

	accountID := uuid.New()
	bannedUntil := time.Now().Add(7 * 24 * time.Hour).Unix()
	mockService.On("EvaluateLogin", mock.Anything, accountID.String(), "device-4", "", mock.Anything).
		Return(&services.LoginDecision{
			Allowed:        false,
			BannedUntil:    bannedUntil,
			Reason:         services.ViolationReason,
			ViolationCount: 1,
		}, nil)

	w, body := postJSON(t, router, "/device/verify-device", map[string]interface{}{
		"token":    readerToken(t, accountID),
		"deviceId": "device-4",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, true, body["banned"])
	assert.Equal(t, float64(bannedUntil), body["bannedUntil"])
	assert.Equal(t, "Maximum device limit exceeded", body["reason"])
	assert.Equal(t, float64(1), body["violationCount"])
	assert.NotContains(t, body, "success")
}

func TestVerifyDeviceBadToken(t *testing.T) {
	mockService := new(MockDevicePolicyService)
	router := newDeviceRouter(mockService)

	w, body := postJSON(t, router, "/device/verify-device", map[string]interface{}{
		"token":    "not-a-jwt",
		"deviceId": "device-1",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", body["error"])
	mockService.AssertNotCalled(t, "EvaluateLogin", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyDeviceMissingFields(t *testing.T) {
	mockService := new(MockDevicePolicyService)
	router := newDeviceRouter(mockService)

	w, body := postJSON(t, router, "/device/verify-device", map[string]interface{}{
		"deviceId": "device-1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "required")
}

func TestCheckSuspensionByUserID(t *testing.T) {
	mockService := new(MockDevicePolicyService)
	router := newDeviceRouter(mockService)

	accountID := uuid.New().String()
	bannedUntil := time.Now().Add(time.Hour).Unix()
	mockService.On("CheckSuspension", mock.Anything, accountID).Return(&services.SuspensionStatus{
		Suspended:      true,
		BannedUntil:    bannedUntil,
		Reason:         services.ViolationReason,
		ViolationCount: 2,
	}, nil)

	w, body := postJSON(t, router, "/device/check-suspension", map[string]interface{}{
		"userId": accountID,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["suspended"])
	assert.Equal(t, float64(bannedUntil), body["bannedUntil"])
	assert.Equal(t, float64(2), body["violationCount"])
}

func TestCheckSuspensionNotSuspended(t *testing.T) {
	mockService := new(MockDevicePolicyService)
	router := newDeviceRouter(mockService)

	accountID := uuid.New().String()
	mockService.On("CheckSuspension", mock.Anything, accountID).Return(&services.SuspensionStatus{Suspended: false}, nil)

	w, body := postJSON(t, router, "/device/check-suspension", map[string]interface{}{
		"userId": accountID,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["suspended"])
	assert.NotContains(t, body, "bannedUntil")
}

func TestGetDevicesShape(t *testing.T) {
	mockService := new(MockDevicePolicyService)
	router := newDeviceRouter(mockService)

	accountID := uuid.New().String()
	mockService.On("GetDevices", mock.Anything, accountID).Return([]response_models.DeviceResponse{
		{DeviceID: "device-1", Name: "Pixel 9", FirstSeen: 100, LastSeen: 200, LastIP: "10.0.0.1", LoginCount: 4, IsActive: true},
	}, nil)

	w, body := postJSON(t, router, "/device/get-devices", map[string]interface{}{
		"userId": accountID,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	devices := body["devices"].([]interface{})
	assert.Len(t, devices, 1)
	first := devices[0].(map[string]interface{})
	assert.Equal(t, "device-1", first["deviceId"])
	assert.Equal(t, "Pixel 9", first["name"])
	assert.Equal(t, float64(100), first["firstSeen"])
	assert.Equal(t, float64(4), first["loginCount"])
	assert.Equal(t, true, first["isActive"])
}

func TestDeleteDeviceNotFound(t *testing.T) {
	mockService := new(MockDevicePolicyService)
	router := newDeviceRouter(mockService)

	accountID := uuid.New()
	mockService.On("RemoveDevice", mock.Anything, accountID.String(), "gone").Return(utils.ErrDeviceNotFound)

	w, body := postJSON(t, router, "/device/delete-device", map[string]interface{}{
		"token":    readerToken(t, accountID),
		"deviceId": "gone",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "device not found", body["error"])
}

func TestClearDevices(t *testing.T) {
	mockService := new(MockDevicePolicyService)
	router := newDeviceRouter(mockService)

	accountID := uuid.New().String()
	mockService.On("ClearAllDevices", mock.Anything, accountID).Return(nil)

	w, body := postJSON(t, router, "/device/clear-devices", map[string]interface{}{
		"userId": accountID,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
}
