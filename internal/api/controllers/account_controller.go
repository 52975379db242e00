package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mangadesk/internal/models/request_models"
	"mangadesk/internal/models/response_models"
	"mangadesk/internal/services"
	"mangadesk/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Login godoc
// @Summary Login to the admin dashboard
// @Description Authenticate an admin and return a token
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /accounts/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := a.accountService.AdminLogin(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.AdminLoginResponse{Token: token}, "Login successful")
}

// ExchangeToken godoc
// @Summary Exchange a reader identity token for an account
// @Description Creates the account on first authentication and returns it
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.ExchangeTokenRequest true "Identity token payload"
// @Success 200 {object} utils.APIResponse
// @Router /accounts/exchange [post]
func (a *AccountController) ExchangeToken(c *gin.Context) {
	var req request_models.ExchangeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	claims, err := utils.ValidateToken(req.Token)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	account, err := a.accountService.EnsureAccount(c.Request.Context(), claims.UserID, "", "")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c,
		gin.H{"id": account.ID.String(), "display_id": account.DisplayID},
		"Account ready")
}

// GetAccount godoc
// @Summary Get one account
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (a *AccountController) GetAccount(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Account ID is required")
		return
	}

	account, err := a.accountService.GetAccount(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Account fetched successfully")
}

// ListAccounts godoc
// @Summary List accounts
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts [get]
func (a *AccountController) ListAccounts(c *gin.Context) {
	page, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}

	accounts, err := a.accountService.ListAccounts(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, accounts, "Accounts fetched successfully")
}

// SetXP godoc
// @Summary Set an account's experience points
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.SetXPRequest true "XP payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/xp [put]
func (a *AccountController) SetXP(c *gin.Context) {
	var req request_models.SetXPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.SetXP(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "XP updated successfully")
}

// GrantSubscription godoc
// @Summary Grant a subscription window to an account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.GrantSubscriptionRequest true "Subscription payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/subscription [put]
func (a *AccountController) GrantSubscription(c *gin.Context) {
	var req request_models.GrantSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.GrantSubscription(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Subscription granted successfully")
}

// RevokeSubscription godoc
// @Summary Revoke an account's subscription
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.RevokeSubscriptionRequest true "Revoke payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/subscription [delete]
func (a *AccountController) RevokeSubscription(c *gin.Context) {
	var req request_models.RevokeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.RevokeSubscription(c.Request.Context(), req.AccountID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Subscription revoked successfully")
}

// LiftBan godoc
// @Summary Lift an account's ban
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LiftBanRequest true "Lift ban payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/ban [delete]
func (a *AccountController) LiftBan(c *gin.Context) {
	var req request_models.LiftBanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.LiftBan(c.Request.Context(), req.AccountID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Ban lifted successfully")
}

func parsePaging(c *gin.Context) (int, int, bool) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return 0, 0, false
	}

	return page, pageSize, true
}
