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

type DisbursementServiceTestSuite struct {
	suite.Suite
	mockDisbursementRepo *MockDisbursementRepository
	mockBudgetRepo       *MockBudgetRepository
	service              portssvc.DisbursementSvcFacade
	userID               string
}

func (suite *DisbursementServiceTestSuite) SetupTest() {
	suite.mockDisbursementRepo = new(MockDisbursementRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.service = services.NewDisbursementService(suite.mockDisbursementRepo, suite.mockBudgetRepo)
	suite.userID = uuid.NewString()
}

func (suite *DisbursementServiceTestSuite) TestCreateRequest_Success() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	req := dto.CreateDisbursementRequest{
		RequestID:        "REQ-100",
		Description:      "March payroll",
		Amount:           decimal.NewFromInt(250000),
		Department:       "HR Payroll",
		BudgetProposalID: &budgetID,
		Beneficiaries:    []dto.BeneficiaryRequest{{EmployeeID: "EMP-1", Name: "A. Reyes"}},
	}

	suite.mockDisbursementRepo.On("FindRequestByID", ctx, "REQ-100").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(&domain.BudgetProposal{BudgetID: budgetID}, nil).Once()

	var created domain.DisbursementRequest
	suite.mockDisbursementRepo.On("CreateRequest", ctx, mock.AnythingOfType("domain.DisbursementRequest")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(domain.DisbursementRequest)
		}).
		Return(nil).Once()

	request, err := suite.service.CreateRequest(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RequestPending, request.Status)
	suite.Equal("REQ-100", created.RequestID)
	suite.Require().Len(created.Beneficiaries, 1)
	suite.Equal("EMP-1", created.Beneficiaries[0].EmployeeID)
	suite.NotEmpty(created.DisbursementID)
	suite.mockDisbursementRepo.AssertExpectations(suite.T())
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *DisbursementServiceTestSuite) TestCreateRequest_DuplicateRequestID() {
	ctx := context.Background()
	req := dto.CreateDisbursementRequest{
		RequestID:   "REQ-100",
		Description: "March payroll",
		Amount:      decimal.NewFromInt(100),
		Department:  "HR Payroll",
	}

	suite.mockDisbursementRepo.On("FindRequestByID", ctx, "REQ-100").
		Return(&domain.DisbursementRequest{RequestID: "REQ-100"}, nil).Once()

	_, err := suite.service.CreateRequest(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockDisbursementRepo.AssertNotCalled(suite.T(), "CreateRequest", mock.Anything, mock.Anything)
}

func (suite *DisbursementServiceTestSuite) TestCreateRequest_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateDisbursementRequest{
		RequestID:   "REQ-101",
		Description: "Nothing",
		Amount:      decimal.Zero,
		Department:  "Facilities",
	}

	_, err := suite.service.CreateRequest(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DisbursementServiceTestSuite) TestCreateRequest_UnknownBudget() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	req := dto.CreateDisbursementRequest{
		RequestID:        "REQ-102",
		Description:      "Loan release",
		Amount:           decimal.NewFromInt(5000),
		Department:       "Core Budget",
		BudgetProposalID: &budgetID,
	}

	suite.mockDisbursementRepo.On("FindRequestByID", ctx, "REQ-102").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateRequest(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DisbursementServiceTestSuite) TestListRequests_StatusFilter() {
	ctx := context.Background()
	statusStr := "PENDING"
	pending := domain.RequestPending

	suite.mockDisbursementRepo.On("ListRequests", ctx, &pending, 20, 0).
		Return([]domain.DisbursementRequest{{RequestID: "REQ-1"}}, nil).Once()

	got, err := suite.service.ListRequests(ctx, dto.ListDisbursementsParams{Status: &statusStr})

	suite.Require().NoError(err)
	suite.Len(got, 1)
}

func TestDisbursementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DisbursementServiceTestSuite))
}
