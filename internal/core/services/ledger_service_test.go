package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/felix-harvey/microfinancial-sub002/internal/apperrors"
	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	portssvc "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/services"
	"github.com/felix-harvey/microfinancial-sub002/internal/core/services"
	"github.com/felix-harvey/microfinancial-sub002/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.LedgerSvcFacade

	assetAccount   domain.Account
	expenseAccount domain.Account
	userID         string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewLedgerService(suite.mockJournalRepo, suite.mockAccountRepo, "PHP")

	suite.userID = uuid.NewString()
	suite.assetAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1001",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "5001",
		AccountType: domain.Expense,
		IsActive:    true,
	}
}

func (suite *LedgerServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Office rent",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(1200)},
			{AccountID: suite.assetAccount.AccountID, Credit: decimal.NewFromInt(1200)},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.expenseAccount.AccountID: suite.expenseAccount,
		suite.assetAccount.AccountID:   suite.assetAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.expenseAccount.AccountID, suite.assetAccount.AccountID}).Return(accountsMap, nil).Once()

	var capturedChanges map[string]decimal.Decimal
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(3).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.JournalID)
	suite.NotEmpty(entry.EntryRef)
	suite.Equal(domain.Posted, entry.Status)
	suite.Equal("PHP", entry.CurrencyCode)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)

	suite.True(capturedChanges[suite.expenseAccount.AccountID].Equal(decimal.NewFromInt(1200)))
	suite.True(capturedChanges[suite.assetAccount.AccountID].Equal(decimal.NewFromInt(-1200)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(1200)},
			{AccountID: suite.assetAccount.AccountID, Credit: decimal.NewFromInt(1100)},
		},
	}

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_SingleLine() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_SingleAccount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.expenseAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinAccounts)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.expenseAccount
	inactive.IsActive = false
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: inactive.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.assetAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	accountsMap := map[string]domain.Account{
		inactive.AccountID:           inactive,
		suite.assetAccount.AccountID: suite.assetAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetEntryByID_WithLines() {
	ctx := context.Background()
	journalID := uuid.NewString()
	entry := &domain.JournalEntry{JournalID: journalID, EntryRef: "JE-1", Status: domain.Posted}
	lines := []domain.JournalEntryLine{
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(10)},
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.assetAccount.AccountID, Credit: decimal.NewFromInt(10)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, journalID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).Return(lines, nil).Once()

	got, err := suite.service.GetEntryByID(ctx, journalID)

	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)
}

func (suite *LedgerServiceTestSuite) TestGetEntryByID_NotFound() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, journalID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetEntryByID(ctx, journalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
