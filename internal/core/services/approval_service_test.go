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
	portsrepo "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/repositories"
	portssvc "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/services"
	"github.com/felix-harvey/microfinancial-sub002/internal/core/services"
)

type ApprovalServiceTestSuite struct {
	suite.Suite
	mockDisbursementRepo *MockDisbursementRepository
	mockAccountRepo      *MockAccountRepository
	mockDispatcher       *MockPayrollDispatcher
	mockNotificationSvc  *MockNotificationService
	service              portssvc.ApprovalSvc

	salariesAccount domain.Account
	expensesAccount domain.Account
	loansAccount    domain.Account
	cashAccount     domain.Account
	approverID      string
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockDisbursementRepo = new(MockDisbursementRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockDispatcher = new(MockPayrollDispatcher)
	suite.mockNotificationSvc = new(MockNotificationService)

	suite.service = services.NewApprovalService(
		suite.mockDisbursementRepo,
		suite.mockAccountRepo,
		services.NewPolicyTable(nil),
		suite.mockDispatcher,
		suite.mockNotificationSvc,
		"PHP",
		"HR Payroll",
	)

	suite.approverID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1001",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.expensesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "5001",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	suite.salariesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "5002",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	suite.loansAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1201",
		AccountType: domain.Asset,
		IsActive:    true,
	}
}

func (suite *ApprovalServiceTestSuite) pendingRequest(department string) *domain.DisbursementRequest {
	return &domain.DisbursementRequest{
		DisbursementID: uuid.NewString(),
		RequestID:      "REQ-" + uuid.NewString(),
		Description:    "March disbursement",
		Amount:         decimal.NewFromInt(50000),
		Department:     department,
		Status:         domain.RequestPending,
	}
}

func (suite *ApprovalServiceTestSuite) TestApprove_PayrollRequestPostsAndDispatches() {
	ctx := context.Background()
	batchRef := "BATCH-2025-03"
	request := suite.pendingRequest("HR Payroll")
	request.ExternalReference = &batchRef
	request.Beneficiaries = []domain.BeneficiaryRecord{
		{EmployeeID: "EMP-1", Name: "A. Reyes"},
		{EmployeeID: "EMP-2"},
	}
	budgetID := uuid.NewString()
	request.BudgetProposalID = &budgetID

	suite.mockDisbursementRepo.On("FindPendingByRequestID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "5002").Return(&suite.salariesAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1001").Return(&suite.cashAccount, nil).Once()

	var captured portsrepo.ApproveRequestParams
	suite.mockDisbursementRepo.On("ApproveRequest", ctx, mock.AnythingOfType("repositories.ApproveRequestParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.ApproveRequestParams)
		}).
		Return(nil).Once()
	var dispatched portssvc.PayrollDispatchInput
	suite.mockDispatcher.On("DispatchBatchResult", ctx, mock.AnythingOfType("services.PayrollDispatchInput")).
		Run(func(args mock.Arguments) {
			dispatched = args.Get(1).(portssvc.PayrollDispatchInput)
		}).
		Return(nil).Once()
	suite.mockNotificationSvc.On("Notify", ctx, (*string)(nil), domain.NotificationSuccess, mock.Anything, mock.Anything).Once()

	approved, entry, err := suite.service.Approve(ctx, request.RequestID, suite.approverID)

	suite.Require().NoError(err)
	suite.Require().NotNil(approved)
	suite.Require().NotNil(entry)
	suite.Equal(domain.RequestApproved, approved.Status)
	suite.Require().NotNil(approved.ApprovedBy)
	suite.Equal(suite.approverID, *approved.ApprovedBy)
	suite.NotNil(approved.DateApproved)

	// The posted entry debits salaries and credits cash, balanced on the request amount.
	suite.Require().Len(captured.Lines, 2)
	suite.Equal(suite.salariesAccount.AccountID, captured.Lines[0].AccountID)
	suite.True(captured.Lines[0].Debit.Equal(request.Amount))
	suite.Equal(suite.cashAccount.AccountID, captured.Lines[1].AccountID)
	suite.True(captured.Lines[1].Credit.Equal(request.Amount))
	suite.Contains(captured.Entry.Description, "Auto-generated: ")

	// Budget deduction carried into the atomic write.
	suite.Require().NotNil(captured.Deduction)
	suite.Equal(budgetID, captured.Deduction.BudgetID)
	suite.True(captured.Deduction.Amount.Equal(request.Amount))

	// Salaries balance rises, cash balance falls.
	suite.True(captured.BalanceChanges[suite.salariesAccount.AccountID].Equal(request.Amount))
	suite.True(captured.BalanceChanges[suite.cashAccount.AccountID].Equal(request.Amount.Neg()))

	// The external payroll system settles against the request id, not the
	// internal journal reference.
	suite.Equal(batchRef, dispatched.BatchReference)
	suite.Equal(request.RequestID, dispatched.PaymentReference)
	suite.Len(dispatched.Beneficiaries, 2)

	suite.mockDisbursementRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockDispatcher.AssertExpectations(suite.T())
	suite.mockNotificationSvc.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApprove_LoanKeywordRoutesToReceivable() {
	ctx := context.Background()
	request := suite.pendingRequest("Core Budget")
	request.Description = "Emergency Loan release"

	suite.mockDisbursementRepo.On("FindPendingByRequestID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1201").Return(&suite.loansAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1001").Return(&suite.cashAccount, nil).Once()
	suite.mockDisbursementRepo.On("ApproveRequest", ctx, mock.AnythingOfType("repositories.ApproveRequestParams")).Return(nil).Once()
	suite.mockNotificationSvc.On("Notify", ctx, (*string)(nil), domain.NotificationSuccess, mock.Anything, mock.Anything).Once()

	_, entry, err := suite.service.Approve(ctx, request.RequestID, suite.approverID)

	suite.Require().NoError(err)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(suite.loansAccount.AccountID, entry.Lines[0].AccountID)
	// No beneficiaries and not payroll, so no callback fires.
	suite.mockDispatcher.AssertNotCalled(suite.T(), "DispatchBatchResult", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApprove_NoBudgetSkipsDeduction() {
	ctx := context.Background()
	request := suite.pendingRequest("Facilities")

	suite.mockDisbursementRepo.On("FindPendingByRequestID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "5001").Return(&suite.expensesAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1001").Return(&suite.cashAccount, nil).Once()

	var captured portsrepo.ApproveRequestParams
	suite.mockDisbursementRepo.On("ApproveRequest", ctx, mock.AnythingOfType("repositories.ApproveRequestParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.ApproveRequestParams)
		}).
		Return(nil).Once()
	suite.mockNotificationSvc.On("Notify", ctx, (*string)(nil), domain.NotificationSuccess, mock.Anything, mock.Anything).Once()

	_, _, err := suite.service.Approve(ctx, request.RequestID, suite.approverID)

	suite.Require().NoError(err)
	suite.Nil(captured.Deduction)
}

func (suite *ApprovalServiceTestSuite) TestApprove_InsufficientBudget() {
	ctx := context.Background()
	request := suite.pendingRequest("HR Payroll")
	budgetID := uuid.NewString()
	request.BudgetProposalID = &budgetID

	suite.mockDisbursementRepo.On("FindPendingByRequestID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "5002").Return(&suite.salariesAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1001").Return(&suite.cashAccount, nil).Once()
	suite.mockDisbursementRepo.On("ApproveRequest", ctx, mock.AnythingOfType("repositories.ApproveRequestParams")).
		Return(apperrors.ErrInsufficientBudget).Once()

	_, _, err := suite.service.Approve(ctx, request.RequestID, suite.approverID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientBudget)
	// Nothing committed, so no side effects fire.
	suite.mockDispatcher.AssertNotCalled(suite.T(), "DispatchBatchResult", mock.Anything, mock.Anything)
	suite.mockNotificationSvc.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApprove_AlreadyDecided() {
	ctx := context.Background()
	requestID := "REQ-decided"

	suite.mockDisbursementRepo.On("FindPendingByRequestID", ctx, requestID).
		Return(nil, apperrors.ErrRequestNotPending).Once()

	_, _, err := suite.service.Approve(ctx, requestID, suite.approverID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRequestNotPending)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApprove_DecisionRaceLostAtWrite() {
	ctx := context.Background()
	request := suite.pendingRequest("Facilities")

	suite.mockDisbursementRepo.On("FindPendingByRequestID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "5001").Return(&suite.expensesAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1001").Return(&suite.cashAccount, nil).Once()
	// A concurrent decision wins between the read and the guarded write.
	suite.mockDisbursementRepo.On("ApproveRequest", ctx, mock.AnythingOfType("repositories.ApproveRequestParams")).
		Return(apperrors.ErrRequestNotPending).Once()

	_, _, err := suite.service.Approve(ctx, request.RequestID, suite.approverID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRequestNotPending)
	suite.mockNotificationSvc.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApprove_DispatchFailureDoesNotFailApproval() {
	ctx := context.Background()
	batchRef := "BATCH-ERR"
	request := suite.pendingRequest("HR Payroll")
	request.ExternalReference = &batchRef
	request.Beneficiaries = []domain.BeneficiaryRecord{{EmployeeID: "EMP-1"}}

	suite.mockDisbursementRepo.On("FindPendingByRequestID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "5002").Return(&suite.salariesAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1001").Return(&suite.cashAccount, nil).Once()
	suite.mockDisbursementRepo.On("ApproveRequest", ctx, mock.AnythingOfType("repositories.ApproveRequestParams")).Return(nil).Once()
	suite.mockDispatcher.On("DispatchBatchResult", ctx, mock.AnythingOfType("services.PayrollDispatchInput")).
		Return(apperrors.ErrCallbackDelivery).Once()
	suite.mockNotificationSvc.On("Notify", ctx, (*string)(nil), domain.NotificationSuccess, mock.Anything, mock.Anything).Once()

	approved, _, err := suite.service.Approve(ctx, request.RequestID, suite.approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.RequestApproved, approved.Status)
	suite.mockDispatcher.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApprove_PayrollWithoutExternalReferenceSkipsDispatch() {
	ctx := context.Background()
	request := suite.pendingRequest("HR Payroll")
	request.Beneficiaries = []domain.BeneficiaryRecord{{EmployeeID: "EMP-1"}}

	suite.mockDisbursementRepo.On("FindPendingByRequestID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "5002").Return(&suite.salariesAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1001").Return(&suite.cashAccount, nil).Once()
	suite.mockDisbursementRepo.On("ApproveRequest", ctx, mock.AnythingOfType("repositories.ApproveRequestParams")).Return(nil).Once()
	suite.mockNotificationSvc.On("Notify", ctx, (*string)(nil), domain.NotificationSuccess, mock.Anything, mock.Anything).Once()

	_, _, err := suite.service.Approve(ctx, request.RequestID, suite.approverID)

	suite.Require().NoError(err)
	suite.mockDispatcher.AssertNotCalled(suite.T(), "DispatchBatchResult", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestReject_Success() {
	ctx := context.Background()
	request := suite.pendingRequest("Core Budget")
	reason := "Duplicate of REQ-544"

	suite.mockDisbursementRepo.On("FindPendingByRequestID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockDisbursementRepo.On("RejectRequest", ctx, request.RequestID, suite.approverID, reason, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotificationSvc.On("Notify", ctx, (*string)(nil), domain.NotificationWarning, mock.Anything, mock.Anything).Once()

	rejected, err := suite.service.Reject(ctx, request.RequestID, suite.approverID, reason)

	suite.Require().NoError(err)
	suite.Equal(domain.RequestRejected, rejected.Status)
	suite.Require().NotNil(rejected.RejectionReason)
	suite.Equal(reason, *rejected.RejectionReason)
	// The decider is recorded on the row, so reads agree with this response.
	suite.Require().NotNil(rejected.ApprovedBy)
	suite.Equal(suite.approverID, *rejected.ApprovedBy)
	// Rejection never touches accounts or the ledger.
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything)
	suite.mockDisbursementRepo.AssertNotCalled(suite.T(), "ApproveRequest", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestReject_MissingReason() {
	ctx := context.Background()

	_, err := suite.service.Reject(ctx, "REQ-1", suite.approverID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDisbursementRepo.AssertNotCalled(suite.T(), "FindPendingByRequestID", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestReject_AlreadyDecided() {
	ctx := context.Background()
	request := suite.pendingRequest("Core Budget")

	suite.mockDisbursementRepo.On("FindPendingByRequestID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockDisbursementRepo.On("RejectRequest", ctx, request.RequestID, suite.approverID, "late", mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrRequestNotPending).Once()

	_, err := suite.service.Reject(ctx, request.RequestID, suite.approverID, "late")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRequestNotPending)
	suite.mockNotificationSvc.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
