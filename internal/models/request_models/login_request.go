package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type ExchangeTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
