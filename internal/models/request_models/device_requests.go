package request_models

// Device endpoints take an operation-specific JSON body; the token carries the
// caller's identity, userId variants exist for admin tooling.

type VerifyDeviceRequest struct {
	Token      string `json:"token" binding:"required"`
	DeviceID   string `json:"deviceId" binding:"required"`
	DeviceName string `json:"deviceName"`
}

type CheckSuspensionRequest struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type GetDevicesRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type DeleteDeviceRequest struct {
	Token    string `json:"token" binding:"required"`
	DeviceID string `json:"deviceId" binding:"required"`
}

type ClearDevicesRequest struct {
	UserID string `json:"userId" binding:"required"`
}
