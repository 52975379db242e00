package response_models

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type AccountResponse struct {
	ID                 string `json:"id"`
	DisplayID          int    `json:"display_id"`
	Email              string `json:"email,omitempty"`
	DisplayName        string `json:"display_name"`
	Role               string `json:"role"`
	SubscriptionStatus string `json:"subscription_status"`
	SubscriptionStart  *int64 `json:"subscription_start,omitempty"`
	SubscriptionEnd    *int64 `json:"subscription_end,omitempty"`
	SubscriptionActive bool   `json:"subscription_active"`
	XP                 int64  `json:"xp"`
	BannedUntil        *int64 `json:"banned_until,omitempty"`
	BanReason          string `json:"ban_reason,omitempty"`
	ViolationCount     int    `json:"violation_count"`
	DeviceCount        int    `json:"device_count"`
}
