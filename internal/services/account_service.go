package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"mangadesk/internal/models/db_models"
	"mangadesk/internal/models/request_models"
	"mangadesk/internal/models/response_models"
	"mangadesk/internal/repositories"
	"mangadesk/pkg/utils"
)

const displayIDAttempts = 5

type AccountServiceInterface interface {
	AdminLogin(ctx context.Context, request request_models.LoginRequest) (string, error)
	EnsureAccount(ctx context.Context, authUID, email, displayName string) (*db_models.Account, error)
	GetAccount(ctx context.Context, id string) (*response_models.AccountResponse, error)
	ListAccounts(ctx context.Context, page, pageSize int) ([]response_models.AccountResponse, error)
	SetXP(ctx context.Context, request request_models.SetXPRequest) error
	GrantSubscription(ctx context.Context, request request_models.GrantSubscriptionRequest) error
	RevokeSubscription(ctx context.Context, accountID string) error
	LiftBan(ctx context.Context, accountID string) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

func (a *AccountService) AdminLogin(ctx context.Context, request request_models.LoginRequest) (string, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		log.Printf("Error loading account by email: %v", err)
		return "", utils.ErrDatabaseError
	}
	if account == nil || account.Role != "admin" {
		return "", utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role, time.Hour)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

// EnsureAccount creates the account row on first authentication, assigning
// a unique 5-digit display identifier. Display IDs are random, unique and
// never reused; collisions retry against the unique index.
func (a *AccountService) EnsureAccount(ctx context.Context, authUID, email, displayName string) (*db_models.Account, error) {
	existing, err := a.accountRepo.FindByAuthUID(ctx, authUID)
	if err != nil {
		log.Printf("Error looking up account %s: %v", authUID, err)
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return existing, nil
	}

	for attempt := 0; attempt < displayIDAttempts; attempt++ {
		account := &db_models.Account{
			AuthUID:            authUID,
			DisplayID:          utils.RandomDisplayID(),
			Email:              email,
			DisplayName:        displayName,
			Role:               "user",
			SubscriptionStatus: db_models.SubStatusNotSubscribed,
		}
		err := a.accountRepo.Insert(ctx, account)
		if err == nil {
			return account, nil
		}
		if utils.IsUniqueViolation(err) {
			continue
		}
		log.Printf("Error creating account %s: %v", authUID, err)
		return nil, utils.ErrDatabaseError
	}

	log.Printf("Exhausted display ID attempts for account %s", authUID)
	return nil, utils.ErrDatabaseError
}

// GetAccount resolves either the primary key or, for all-digit input, the
// public 5-digit display identifier support staff see in the apps.
func (a *AccountService) GetAccount(ctx context.Context, id string) (*response_models.AccountResponse, error) {
	var account *db_models.Account
	var err error
	if displayID, convErr := strconv.Atoi(id); convErr == nil {
		account, err = a.accountRepo.FindByDisplayID(ctx, displayID)
	} else {
		account, err = a.accountRepo.FindById(ctx, id)
	}
	if err != nil {
		log.Printf("Error loading account %s: %v", id, err)
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	deviceCount, err := a.accountRepo.CountDevices(ctx, account.ID.String())
	if err != nil {
		log.Printf("Error counting devices for account %s: %v", id, err)
		return nil, utils.ErrDatabaseError
	}

	resp := toAccountResponse(account)
	resp.DeviceCount = int(deviceCount)
	return resp, nil
}

func (a *AccountService) ListAccounts(ctx context.Context, page, pageSize int) ([]response_models.AccountResponse, error) {
	accounts, err := a.accountRepo.List(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing accounts: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, *toAccountResponse(&accounts[i]))
	}
	return out, nil
}

func (a *AccountService) SetXP(ctx context.Context, request request_models.SetXPRequest) error {
	account, err := a.loadAccount(ctx, request.AccountID)
	if err != nil {
		return err
	}

	account.XP = request.XP
	if err := a.accountRepo.Update(ctx, account); err != nil {
		log.Printf("Error updating XP for account %s: %v", request.AccountID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) GrantSubscription(ctx context.Context, request request_models.GrantSubscriptionRequest) error {
	account, err := a.loadAccount(ctx, request.AccountID)
	if err != nil {
		return err
	}

	account.SubscriptionStatus = db_models.SubStatusSubscribed
	account.SubscriptionStart = &request.StartsAt
	account.SubscriptionEnd = &request.EndsAt
	if err := a.accountRepo.Update(ctx, account); err != nil {
		log.Printf("Error granting subscription for account %s: %v", request.AccountID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) RevokeSubscription(ctx context.Context, accountID string) error {
	account, err := a.loadAccount(ctx, accountID)
	if err != nil {
		return err
	}

	account.SubscriptionStatus = db_models.SubStatusNotSubscribed
	account.SubscriptionStart = nil
	account.SubscriptionEnd = nil
	if err := a.accountRepo.Update(ctx, account); err != nil {
		log.Printf("Error revoking subscription for account %s: %v", accountID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

// LiftBan clears the ban outright. Violation history stays on the account.
func (a *AccountService) LiftBan(ctx context.Context, accountID string) error {
	account, err := a.loadAccount(ctx, accountID)
	if err != nil {
		return err
	}

	err = a.accountRepo.UpdateBanFields(ctx, accountID, nil, nil, account.ViolationCount, account.LastViolationDate)
	if err != nil {
		log.Printf("Error lifting ban for account %s: %v", accountID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) loadAccount(ctx context.Context, id string) (*db_models.Account, error) {
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		log.Printf("Error loading account %s: %v", id, err)
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return account, nil
}

func toAccountResponse(account *db_models.Account) *response_models.AccountResponse {
	resp := &response_models.AccountResponse{
		ID:                 account.ID.String(),
		DisplayID:          account.DisplayID,
		Email:              account.Email,
		DisplayName:        account.DisplayName,
		Role:               account.Role,
		SubscriptionStatus: string(account.SubscriptionStatus),
		SubscriptionStart:  account.SubscriptionStart,
		SubscriptionEnd:    account.SubscriptionEnd,
		SubscriptionActive: account.SubscriptionActive(time.Now()),
		XP:                 account.XP,
		BannedUntil:        account.BannedUntil,
		ViolationCount:     account.ViolationCount,
	}
	if account.BanReason != nil {
		resp.BanReason = *account.BanReason
	}
	return resp
}
