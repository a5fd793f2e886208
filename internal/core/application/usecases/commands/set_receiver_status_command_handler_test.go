package commands_test

import (
	"context"
	"errors"
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCRMSync struct{ mock.Mock }

func (m *MockCRMSync) PushOrderStatus(ctx context.Context, bookingRef, status string) error {
	args := m.Called(ctx, bookingRef, status)
	return args.Error(0)
}

func statusCommand(t *testing.T, orderID, receiverID kernel.UUID, status string) commands.SetReceiverStatusCommand {
	t.Helper()
	cmd, err := commands.NewSetReceiverStatusCommand(commands.SetReceiverStatusParams{
		OrderID:    orderID,
		ReceiverID: receiverID,
		Status:     status,
		Note:       "departed origin port",
		Actor:      "ops",
	})
	require.NoError(t, err)
	return cmd
}

func TestSetReceiverStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	receiver := createTestReceiver(t, 10)
	testOrder := createTestOrder(t, receiver)
	cmd := statusCommand(t, testOrder.ID(), receiver.ID(), "In Transit")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockTrackingPublisher)
	crm := new(MockCRMSync)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, testOrder, false).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("PublishOrderChanged", ctx, mock.AnythingOfType("ports.OrderChangedEvent")).
		Return(nil)
	crm.On("PushOrderStatus", ctx, "BK-100200", "In Transit").Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetReceiverStatusCommandHandler(factory, publisher, crm, discardLogger())
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ReceiverInTransit, receiver.Status())
	assert.Equal(t, order.InTransit, testOrder.Status())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
	crm.AssertExpectations(t)
}

func TestSetReceiverStatusCommandHandler_Handle_CRMFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()

	receiver := createTestReceiver(t, 10)
	testOrder := createTestOrder(t, receiver)
	cmd := statusCommand(t, testOrder.ID(), receiver.ID(), "Delivered")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockTrackingPublisher)
	crm := new(MockCRMSync)

	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil)
	orderRepo.On("Update", ctx, testOrder, false).Return(nil)
	publisher.On("PublishOrderChanged", ctx, mock.AnythingOfType("ports.OrderChangedEvent")).
		Return(nil)
	crm.On("PushOrderStatus", ctx, "BK-100200", "Delivered").
		Return(errors.New("crm gateway timeout"))

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetReceiverStatusCommandHandler(factory, publisher, crm, discardLogger())
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	crm.AssertExpectations(t)
}

func TestSetReceiverStatusCommandHandler_Handle_UnknownReceiver(t *testing.T) {
	ctx := t.Context()

	receiver := createTestReceiver(t, 10)
	testOrder := createTestOrder(t, receiver)
	cmd := statusCommand(t, testOrder.ID(), kernel.NewUUID(), "In Transit")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockTrackingPublisher)
	crm := new(MockCRMSync)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetReceiverStatusCommandHandler(factory, publisher, crm, discardLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "PublishOrderChanged")
	crm.AssertNotCalled(t, "PushOrderStatus")
}

func TestSetReceiverStatusCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	receiver := createTestReceiver(t, 10)
	testOrder := createTestOrder(t, receiver)
	cmd := statusCommand(t, testOrder.ID(), receiver.ID(), "In Transit")

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(errors.New("connection refused")).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetReceiverStatusCommandHandler(
		factory, new(MockTrackingPublisher), new(MockCRMSync), discardLogger())
	err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "connection refused")
	uow.AssertNotCalled(t, "Rollback", ctx)
}

func TestSetReceiverStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.SetReceiverStatusCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)

	handler := commands.NewSetReceiverStatusCommandHandler(
		factory, new(MockTrackingPublisher), new(MockCRMSync), discardLogger())
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrSetReceiverStatusCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestNewSetReceiverStatusCommand(t *testing.T) {
	t.Run("should reject a status outside the vocabulary", func(t *testing.T) {
		_, err := commands.NewSetReceiverStatusCommand(commands.SetReceiverStatusParams{
			OrderID:    kernel.NewUUID(),
			ReceiverID: kernel.NewUUID(),
			Status:     "Teleported",
			Actor:      "ops",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "status")
	})

	t.Run("should collect every missing field", func(t *testing.T) {
		_, err := commands.NewSetReceiverStatusCommand(commands.SetReceiverStatusParams{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "orderId")
		assert.Contains(t, err.Error(), "receiverId")
		assert.Contains(t, err.Error(), "actor")
	})
}
