package request_models

type SetXPRequest struct {
	AccountID string `json:"account_id" binding:"required"`
	XP        int64  `json:"xp" binding:"gte=0"`
}

type GrantSubscriptionRequest struct {
	AccountID string `json:"account_id" binding:"required"`
	StartsAt  int64  `json:"starts_at" binding:"required"`
	EndsAt    int64  `json:"ends_at" binding:"required,gtfield=StartsAt"`
}

type RevokeSubscriptionRequest struct {
	AccountID string `json:"account_id" binding:"required"`
}

type LiftBanRequest struct {
	AccountID string `json:"account_id" binding:"required"`
}
