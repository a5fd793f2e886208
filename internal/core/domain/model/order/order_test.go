package order_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRoute() order.Route {
	return order.Route{
		Origin:        "North Port",
		LoadingPoint:  "Berth 4",
		Destination:   "Inland Depot",
		DeliveryPoint: "Warehouse 7",
	}
}

func createValidOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "BK-100200", validRoute(), "", nil)
	require.NoError(t, err)
	return o
}

func createReceiverWithItem(t *testing.T, totalNumber int) *order.Receiver {
	t.Helper()
	r, err := order.NewReceiver(
		kernel.NewUUID(), "Acme Importers", "+65 6100 2000", "1 Quay Rd", "ops@acme.test",
		nil, nil, order.FullDelivery,
	)
	require.NoError(t, err)

	ref, err := kernel.NewItemRef(0, 0)
	require.NoError(t, err)
	item, err := order.NewItem(
		kernel.NewUUID(), ref, "Machinery", "Pumps", "Crated",
		"North Port", "Warehouse 7", totalNumber, 1200,
	)
	require.NoError(t, err)
	require.NoError(t, r.AddItem(item))
	return r
}

func TestNewOrder(t *testing.T) {
	t.Run("should create an order in Created status", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, "BK-100200", validRoute(), "fragile", []string{"doc-1"})

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "BK-100200", o.BookingRef())
		assert.Equal(t, order.Created, o.Status())
		assert.Zero(t, o.TotalAssignedQty())
		assert.Nil(t, o.Sender())
		assert.Empty(t, o.Receivers())
	})

	t.Run("should reject a malformed booking reference", func(t *testing.T) {
		testCases := []struct {
			name string
			ref  string
		}{
			{"empty", ""},
			{"too short", "BK-1"},
			{"lowercase", "bk-100200"},
			{"spaces", "BK 100200"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := order.NewOrder(kernel.NewUUID(), tc.ref, validRoute(), "", nil)
				require.Error(t, err)
			})
		}
	})

	t.Run("should reject an incomplete route", func(t *testing.T) {
		route := validRoute()
		route.Destination = ""

		_, err := order.NewOrder(kernel.NewUUID(), "BK-100200", route, "", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "destination")
	})
}

func TestAttachSender(t *testing.T) {
	o := createValidOrder(t)
	sender, err := order.NewSender(
		kernel.NewUUID(), order.RoleSender, "Globex", "+65 6100 3000", "2 Hill St", "ship@globex.test")
	require.NoError(t, err)

	require.NoError(t, o.AttachSender(sender))
	assert.Equal(t, sender, o.Sender())

	err = o.AttachSender(sender)
	assert.ErrorIs(t, err, order.ErrSenderAlreadyAttached)
}

func TestReplaceParties(t *testing.T) {
	o := createValidOrder(t)
	first := createReceiverWithItem(t, 10)
	second := createReceiverWithItem(t, 5)
	at := time.Now()

	err := o.ReplaceParties([]*order.Receiver{first, second}, "ops", at)

	require.NoError(t, err)
	assert.Len(t, o.Receivers(), 2)
	assert.Equal(t, order.Created, o.Status())

	// One tracking event per recorded party.
	events := o.PendingTracking()
	require.Len(t, events, 2)
	assert.True(t, events[0].ReceiverID().IsEqual(first.ID()))
	assert.True(t, events[1].ReceiverID().IsEqual(second.ID()))
}

func TestAssignContainers(t *testing.T) {
	at := time.Now()

	t.Run("should accumulate quantity and containers on the target receiver only", func(t *testing.T) {
		o := createValidOrder(t)
		first := createReceiverWithItem(t, 10)
		second := createReceiverWithItem(t, 5)
		require.NoError(t, o.ReplaceParties([]*order.Receiver{first, second}, "ops", at))

		err := o.AssignContainers(first.ID(), 0, []string{"CONT-1", "CONT-2"}, 10, "ops", at)

		require.NoError(t, err)
		assert.Equal(t, 10, first.QtyDelivered())
		assert.Equal(t, []string{"CONT-1", "CONT-2"}, first.Containers())
		assert.Equal(t, 10, first.Items()[0].AssignedQty())

		assert.Zero(t, second.QtyDelivered())
		assert.Empty(t, second.Containers())

		assert.Equal(t, 10, o.TotalAssignedQty())
	})

	t.Run("should reject quantity beyond the receiver's requested total", func(t *testing.T) {
		o := createValidOrder(t)
		receiver := createReceiverWithItem(t, 5)
		require.NoError(t, o.ReplaceParties([]*order.Receiver{receiver}, "ops", at))

		err := o.AssignContainers(receiver.ID(), 0, []string{"CONT-1"}, 6, "ops", at)

		assert.ErrorIs(t, err, order.ErrOverAssignment)
		assert.Zero(t, receiver.QtyDelivered())
		assert.Zero(t, o.TotalAssignedQty())
	})

	t.Run("should union container numbers across assignments", func(t *testing.T) {
		o := createValidOrder(t)
		receiver := createReceiverWithItem(t, 10)
		require.NoError(t, o.ReplaceParties([]*order.Receiver{receiver}, "ops", at))

		require.NoError(t, o.AssignContainers(receiver.ID(), 0, []string{"CONT-1"}, 4, "ops", at))
		require.NoError(t, o.AssignContainers(receiver.ID(), 0, []string{"CONT-1", "CONT-2"}, 4, "ops", at))

		assert.Equal(t, []string{"CONT-1", "CONT-2"}, receiver.Containers())
		assert.Equal(t, 8, receiver.QtyDelivered())
	})

	t.Run("should fail for an unknown receiver", func(t *testing.T) {
		o := createValidOrder(t)
		receiver := createReceiverWithItem(t, 10)
		require.NoError(t, o.ReplaceParties([]*order.Receiver{receiver}, "ops", at))

		err := o.AssignContainers(kernel.NewUUID(), 0, []string{"CONT-1"}, 1, "ops", at)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "receiver")
	})
}

func TestSetReceiverStatus(t *testing.T) {
	at := time.Now()

	t.Run("should move the receiver and recompute the overall status", func(t *testing.T) {
		o := createValidOrder(t)
		first := createReceiverWithItem(t, 10)
		second := createReceiverWithItem(t, 5)
		require.NoError(t, o.ReplaceParties([]*order.Receiver{first, second}, "ops", at))

		err := o.SetReceiverStatus(first.ID(), order.ReceiverInTransit, "departed", "ops", at)

		require.NoError(t, err)
		assert.Equal(t, order.ReceiverInTransit, first.Status())
		assert.Equal(t, order.InTransit, o.Status())
	})

	t.Run("one cancelled receiver cancels the order", func(t *testing.T) {
		o := createValidOrder(t)
		first := createReceiverWithItem(t, 10)
		second := createReceiverWithItem(t, 5)
		require.NoError(t, o.ReplaceParties([]*order.Receiver{first, second}, "ops", at))
		require.NoError(t, o.SetReceiverStatus(second.ID(), order.ReceiverCompleted, "", "ops", at))

		require.NoError(t, o.SetReceiverStatus(first.ID(), order.ReceiverCancelled, "", "ops", at))

		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should record the tracking event with the note", func(t *testing.T) {
		o := createValidOrder(t)
		receiver := createReceiverWithItem(t, 10)
		require.NoError(t, o.ReplaceParties([]*order.Receiver{receiver}, "ops", at))
		before := len(o.PendingTracking())

		require.NoError(t, o.SetReceiverStatus(receiver.ID(), order.ReceiverLoaded, "loaded at berth", "ops", at))

		events := o.PendingTracking()
		require.Len(t, events, before+1)
		last := events[len(events)-1]
		assert.Equal(t, order.ReceiverLoaded, last.Status())
		assert.Equal(t, "loaded at berth", last.Note())
		assert.Equal(t, "ops", last.Actor())
	})
}

func TestAggregateStatus(t *testing.T) {
	testCases := []struct {
		name     string
		statuses []order.ReceiverStatus
		expected order.Status
	}{
		{"no receivers", nil, order.Created},
		{"all created", []order.ReceiverStatus{order.ReceiverCreated, order.ReceiverBookingConfirmed}, order.Created},
		{"one moving", []order.ReceiverStatus{order.ReceiverCreated, order.ReceiverInTransit}, order.InTransit},
		{"furthest delivered", []order.ReceiverStatus{order.ReceiverInTransit, order.ReceiverDelivered}, order.Delivered},
		{"furthest completed", []order.ReceiverStatus{order.ReceiverDelivered, order.ReceiverCompleted}, order.Completed},
		{"cancelled absorbs", []order.ReceiverStatus{order.ReceiverCompleted, order.ReceiverCancelled}, order.Cancelled},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, order.AggregateStatus(tc.statuses))
		})
	}
}

func TestApplyPatch(t *testing.T) {
	t.Run("should patch only the provided fields", func(t *testing.T) {
		o := createValidOrder(t)
		newDestination := "Southern Depot"
		newRemarks := "handle with care"

		err := o.ApplyPatch(order.OrderPatch{
			Destination: &newDestination,
			Remarks:     &newRemarks,
		})

		require.NoError(t, err)
		assert.Equal(t, "Southern Depot", o.Route().Destination)
		assert.Equal(t, "North Port", o.Route().Origin)
		assert.Equal(t, "handle with care", o.Remarks())
	})

	t.Run("should reject a patch that empties a route point", func(t *testing.T) {
		o := createValidOrder(t)
		empty := ""

		err := o.ApplyPatch(order.OrderPatch{Origin: &empty})

		require.Error(t, err)
		assert.Equal(t, "North Port", o.Route().Origin)
	})
}
