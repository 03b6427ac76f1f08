package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	portssvc "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/services"
	"github.com/felix-harvey/microfinancial-sub002/internal/core/services"
	"github.com/felix-harvey/microfinancial-sub002/internal/dto"
)

type NotificationServiceTestSuite struct {
	suite.Suite
	mockRepo *MockNotificationRepository
	service  portssvc.NotificationSvcFacade
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockNotificationRepository)
	suite.service = services.NewNotificationService(suite.mockRepo)
}

func (suite *NotificationServiceTestSuite) TestNotify_Records() {
	ctx := context.Background()

	var saved domain.Notification
	suite.mockRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Notification)
		}).
		Return(nil).Once()

	suite.service.Notify(ctx, nil, domain.NotificationSuccess, "Disbursement approved", "Request REQ-1 was approved.")

	suite.NotEmpty(saved.NotificationID)
	suite.Nil(saved.UserID)
	suite.Equal(domain.NotificationSuccess, saved.Type)
	suite.False(saved.IsRead)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestNotify_SwallowsRepoError() {
	ctx := context.Background()

	suite.mockRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).
		Return(errors.New("connection refused")).Once()

	// No panic, no error surfaces.
	suite.service.Notify(ctx, nil, domain.NotificationWarning, "Disbursement rejected", "Request REQ-2 was rejected.")

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestListNotifications_DefaultLimit() {
	ctx := context.Background()
	userID := "user-1"
	expected := []domain.Notification{{NotificationID: "n-1"}}

	suite.mockRepo.On("ListNotifications", ctx, &userID, 20, 0).Return(expected, nil).Once()

	got, err := suite.service.ListNotifications(ctx, &userID, dto.ListNotificationsParams{})

	suite.Require().NoError(err)
	suite.Equal(expected, got)
}

func (suite *NotificationServiceTestSuite) TestMarkRead() {
	ctx := context.Background()

	suite.mockRepo.On("MarkNotificationRead", ctx, "n-1").Return(nil).Once()

	err := suite.service.MarkRead(ctx, "n-1")
	suite.NoError(err)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
