package response_models

// DeviceResponse mirrors what reader clients persisted before the rewrite:
// timestamps as unix seconds, deviceId exactly as the client supplied it.
type DeviceResponse struct {
	DeviceID   string `json:"deviceId"`
	Name       string `json:"name"`
	FirstSeen  int64  `json:"firstSeen"`
	LastSeen   int64  `json:"lastSeen"`
	LastIP     string `json:"lastIp"`
	LoginCount int64  `json:"loginCount"`
	IsActive   bool   `json:"isActive"`
}
