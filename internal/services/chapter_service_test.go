package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mangadesk/internal/models/db_models"
	"mangadesk/internal/models/request_models"
	"mangadesk/internal/models/response_models"
	"mangadesk/pkg/utils"
)

type MockChapterRepository struct {
	mock.Mock
}

func (m *MockChapterRepository) Insert(ctx context.Context, chapter *db_models.Chapter) error {
	args := m.Called(ctx, chapter)
	return args.Error(0)
}

func (m *MockChapterRepository) GetByID(ctx context.Context, id string) (*db_models.Chapter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Chapter), args.Error(1)
}

func (m *MockChapterRepository) GetByIDWithPages(ctx context.Context, id string) (*db_models.Chapter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Chapter), args.Error(1)
}

func (m *MockChapterRepository) ListByManga(ctx context.Context, mangaID uuid.UUID) ([]db_models.Chapter, error) {
	args := m.Called(ctx, mangaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Chapter), args.Error(1)
}

func (m *MockChapterRepository) Update(ctx context.Context, chapter *db_models.Chapter) error {
	args := m.Called(ctx, chapter)
	return args.Error(0)
}

func (m *MockChapterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChapterRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChapterRepository) InsertPage(ctx context.Context, page *db_models.Page) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *MockChapterRepository) ReorderPages(ctx context.Context, chapterID uuid.UUID, pageIDs []string) error {
	args := m.Called(ctx, chapterID, pageIDs)
	return args.Error(0)
}

func (m *MockChapterRepository) DeletePages(ctx context.Context, chapterID uuid.UUID) error {
	args := m.Called(ctx, chapterID)
	return args.Error(0)
}

type MockDevicePolicyService struct {
	mock.Mock
}

func (m *MockDevicePolicyService) EvaluateLogin(ctx context.Context, accountID, deviceID, deviceName, originIP string) (*LoginDecision, error) {
	args := m.Called(ctx, accountID, deviceID, deviceName, originIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LoginDecision), args.Error(1)
}

func (m *MockDevicePolicyService) CheckSuspension(ctx context.Context, accountID string) (*SuspensionStatus, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SuspensionStatus), args.Error(1)
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

func testChapter(premium bool) *db_models.Chapter {
	ch := &db_models.Chapter{
		MangaID:   uuid.New(),
		Number:    12,
		Title:     "The Siege",
		IsPremium: premium,
	}
	ch.ID = uuid.New()
	page := db_models.Page{ChapterID: ch.ID, Index: 0, ImageURL: "https://cdn.example.com/p0.jpg"}
	page.ID = uuid.New()
	ch.Pages = []db_models.Page{page}
	return ch
}

func newChapterServiceForTest(chapters *MockChapterRepository, manga *MockMangaRepository, accounts *MockAccountRepository, policy *MockDevicePolicyService) ChapterServiceInterface {
	return NewChapterService(chapters, manga, accounts, policy)
}

func TestReadChapterFreeContent(t *testing.T) {
	mockChapters := new(MockChapterRepository)
	mockManga := new(MockMangaRepository)
	mockAccounts := new(MockAccountRepository)
	mockPolicy := new(MockDevicePolicyService)
	service := newChapterServiceForTest(mockChapters, mockManga, mockAccounts, mockPolicy)

	chapter := testChapter(false)
	accountID := uuid.New().String()

	mockChapters.On("GetByIDWithPages", mock.Anything, chapter.ID.String()).Return(chapter, nil)
	mockPolicy.On("CheckSuspension", mock.Anything, accountID).Return(&SuspensionStatus{Suspended: false}, nil)
	mockChapters.On("IncrementViews", mock.Anything, chapter.ID).Return(nil)
	mockManga.On("IncrementViews", mock.Anything, chapter.MangaID, int64(1)).Return(nil)

	resp, err := service.ReadChapter(context.Background(), chapter.ID.String(), accountID)
	assert.NoError(t, err)
	assert.Len(t, resp.Pages, 1)
	assert.Equal(t, "https://cdn.example.com/p0.jpg", resp.Pages[0].ImageURL)

	// Free chapters never load the account.
	mockAccounts.AssertNotCalled(t, "FindById", mock.Anything, mock.Anything)
}

func TestReadChapterSuspendedAccount(t *testing.T) {
	mockChapters := new(MockChapterRepository)
	mockManga := new(MockMangaRepository)
	mockAccounts := new(MockAccountRepository)
	mockPolicy := new(MockDevicePolicyService)
	service := newChapterServiceForTest(mockChapters, mockManga, mockAccounts, mockPolicy)

	chapter := testChapter(false)
	accountID := uuid.New().String()

	mockChapters.On("GetByIDWithPages", mock.Anything, chapter.ID.String()).Return(chapter, nil)
	mockPolicy.On("CheckSuspension", mock.Anything, accountID).Return(&SuspensionStatus{
		Suspended:   true,
		BannedUntil: time.Now().Add(24 * time.Hour).Unix(),
		Reason:      ViolationReason,
	}, nil)

	_, err := service.ReadChapter(context.Background(), chapter.ID.String(), accountID)
	assert.ErrorIs(t, err, utils.ErrAccountSuspended)
	mockChapters.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}

func TestReadChapterPremiumRequiresActiveSubscription(t *testing.T) {
	mockChapters := new(MockChapterRepository)
	mockManga := new(MockMangaRepository)
	mockAccounts := new(MockAccountRepository)
	mockPolicy := new(MockDevicePolicyService)
	service := newChapterServiceForTest(mockChapters, mockManga, mockAccounts, mockPolicy)

	chapter := testChapter(true)
	account := testAccount()

	// Status still says subscribed but the end date is in the past.
	past := time.Now().Add(-time.Hour).Unix()
	account.SubscriptionStatus = db_models.SubStatusSubscribed
	account.SubscriptionEnd = &past

	mockChapters.On("GetByIDWithPages", mock.Anything, chapter.ID.String()).Return(chapter, nil)
	mockPolicy.On("CheckSuspension", mock.Anything, account.ID.String()).Return(&SuspensionStatus{Suspended: false}, nil)
	mockAccounts.On("FindById", mock.Anything, account.ID.String()).Return(account, nil)

	_, err := service.ReadChapter(context.Background(), chapter.ID.String(), account.ID.String())
	assert.ErrorIs(t, err, utils.ErrSubscriptionNeeded)

	// An active subscription opens the chapter.
	future := time.Now().Add(24 * time.Hour).Unix()
	account.SubscriptionEnd = &future
	mockChapters.On("IncrementViews", mock.Anything, chapter.ID).Return(nil)
	mockManga.On("IncrementViews", mock.Anything, chapter.MangaID, int64(1)).Return(nil)

	resp, err := service.ReadChapter(context.Background(), chapter.ID.String(), account.ID.String())
	assert.NoError(t, err)
	assert.True(t, resp.IsPremium)
	assert.Len(t, resp.Pages, 1)
}

func TestReadChapterNotFound(t *testing.T) {
	mockChapters := new(MockChapterRepository)
	mockManga := new(MockMangaRepository)
	mockAccounts := new(MockAccountRepository)
	mockPolicy := new(MockDevicePolicyService)
	service := newChapterServiceForTest(mockChapters, mockManga, mockAccounts, mockPolicy)

	id := uuid.New().String()
	mockChapters.On("GetByIDWithPages", mock.Anything, id).Return(nil, nil)

	_, err := service.ReadChapter(context.Background(), id, uuid.New().String())
	assert.ErrorIs(t, err, utils.ErrChapterNotFound)
	mockPolicy.AssertNotCalled(t, "CheckSuspension", mock.Anything, mock.Anything)
}

func TestCreateChapterUnknownManga(t *testing.T) {
	mockChapters := new(MockChapterRepository)
	mockManga := new(MockMangaRepository)
	mockAccounts := new(MockAccountRepository)
	mockPolicy := new(MockDevicePolicyService)
	service := newChapterServiceForTest(mockChapters, mockManga, mockAccounts, mockPolicy)

	id := uuid.New()
	mockManga.On("GetByID", mock.Anything, id.String()).Return(nil, nil)

	_, err := service.CreateChapter(context.Background(), request_models.CreateChapterRequest{
		MangaID: id, Number: 1, Title: "Opening",
	})
	assert.ErrorIs(t, err, utils.ErrMangaNotFound)
	mockChapters.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
