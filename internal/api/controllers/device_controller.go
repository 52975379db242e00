package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mangadesk/internal/models/request_models"
	"mangadesk/internal/services"
	"mangadesk/pkg/utils"
)

// DeviceController speaks the wire format the reader apps already ship with:
// flat JSON bodies, camelCase fields, no envelope. Keep these shapes stable.
type DeviceController struct {
	deviceService services.DevicePolicyServiceInterface
}

func NewDeviceController(deviceService services.DevicePolicyServiceInterface) *DeviceController {
	return &DeviceController{
		deviceService: deviceService,
	}
}

// VerifyDevice godoc
// @Summary Verify a device at login
// @Description Checks the device against the account's device cap and ban state
// @Tags Devices
// @Accept json
// @Produce json
// @Param request body request_models.VerifyDeviceRequest true "Device verification payload"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /device/verify-device [post]
func (d *DeviceController) VerifyDevice(c *gin.Context) {
	var req request_models.VerifyDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token and deviceId are required"})
		return
	}

	claims, err := utils.ValidateToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	decision, err := d.deviceService.EvaluateLogin(
		c.Request.Context(), claims.UserID, req.DeviceID, req.DeviceName, c.ClientIP())
	if err != nil {
		d.respondDeviceError(c, err)
		return
	}

	if !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{
			"banned":         true,
			"bannedUntil":    decision.BannedUntil,
			"reason":         decision.Reason,
			"violationCount": decision.ViolationCount,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"banned":            false,
		"activeDeviceCount": decision.ActiveDeviceCount,
		"maxDevices":        decision.MaxDevices,
		"isNewDevice":       decision.IsNewDevice,
	})
}

// CheckSuspension godoc
// @Summary Check whether an account is suspended
// @Tags Devices
// @Accept json
// @Produce json
// @Param request body request_models.CheckSuspensionRequest true "Suspension check payload"
// @Success 200 {object} map[string]interface{}
// @Router /device/check-suspension [post]
func (d *DeviceController) CheckSuspension(c *gin.Context) {
	var req request_models.CheckSuspensionRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Token == "" && req.UserID == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token or userId is required"})
		return
	}

	userID := req.UserID
	if req.Token != "" {
		claims, err := utils.ValidateToken(req.Token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		userID = claims.UserID
	}

	status, err := d.deviceService.CheckSuspension(c.Request.Context(), userID)
	if err != nil {
		d.respondDeviceError(c, err)
		return
	}

	if status.Suspended {
		c.JSON(http.StatusOK, gin.H{
			"suspended":      true,
			"bannedUntil":    status.BannedUntil,
			"reason":         status.Reason,
			"violationCount": status.ViolationCount,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suspended": false})
}

// GetDevices godoc
// @Summary List every device registered to an account
// @Tags Devices
// @Accept json
// @Produce json
// @Param request body request_models.GetDevicesRequest true "Device list payload"
// @Success 200 {object} map[string]interface{}
// @Router /device/get-devices [post]
func (d *DeviceController) GetDevices(c *gin.Context) {
	var req request_models.GetDevicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	devices, err := d.deviceService.GetDevices(c.Request.Context(), req.UserID)
	if err != nil {
		d.respondDeviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

// DeleteDevice godoc
// @Summary Remove one device from the caller's account
// @Tags Devices
// @Accept json
// @Produce json
// @Param request body request_models.DeleteDeviceRequest true "Device removal payload"
// @Success 200 {object} map[string]interface{}
// @Router /device/delete-device [post]
func (d *DeviceController) DeleteDevice(c *gin.Context) {
	var req request_models.DeleteDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token and deviceId are required"})
		return
	}

	claims, err := utils.ValidateToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if err := d.deviceService.RemoveDevice(c.Request.Context(), claims.UserID, req.DeviceID); err != nil {
		d.respondDeviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearDevices godoc
// @Summary Remove every device from an account
// @Tags Devices
// @Accept json
// @Produce json
// @Param request body request_models.ClearDevicesRequest true "Device clear payload"
// @Success 200 {object} map[string]interface{}
// @Router /device/clear-devices [post]
func (d *DeviceController) ClearDevices(c *gin.Context) {
	var req request_models.ClearDevicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	if err := d.deviceService.ClearAllDevices(c.Request.Context(), req.UserID); err != nil {
		d.respondDeviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (d *DeviceController) respondDeviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
	case errors.Is(err, utils.ErrDeviceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
