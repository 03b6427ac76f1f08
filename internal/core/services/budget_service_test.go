package services_test

import (
	"context"
	"testing"

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

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo *MockBudgetRepository
	service        portssvc.BudgetSvcFacade
	creatorID      string
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo)
	suite.creatorID = uuid.NewString()
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_FullAllocationAvailable() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Title:           "Q2 Operations",
		AllocatedAmount: decimal.NewFromInt(250000),
	}

	var saved domain.BudgetProposal
	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.BudgetProposal")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.BudgetProposal)
		}).
		Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, req, suite.creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.NotEmpty(budget.BudgetID)
	// A fresh proposal has nothing spent, so remaining equals the allocation.
	suite.True(saved.SpentAmount.IsZero())
	suite.True(saved.RemainingAmount.Equal(saved.AllocatedAmount))
	suite.True(saved.RemainingAmount.Equal(saved.AllocatedAmount.Sub(saved.SpentAmount)))
	suite.Equal(suite.creatorID, saved.CreatedBy)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_RejectsNonPositiveAllocation() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Title:           "Empty envelope",
		AllocatedAmount: decimal.Zero,
	}

	budget, err := suite.service.CreateBudget(ctx, req, suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(budget)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
