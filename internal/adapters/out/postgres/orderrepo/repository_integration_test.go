package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for the order
// repository using PostgreSQL containers to verify persistence of the full
// party graph.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	// TranslateError is required so unique violations surface as
	// gorm.ErrDuplicatedKey, matching the production connection.
	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.SenderDTO{},
		&orderrepo.ReceiverDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.TransportDTO{},
		&orderrepo.TrackingEventDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, senders, receivers, items, transports, tracking_events").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("BK-100200", 2)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertRowCount(&orderrepo.OrderDTO{}, 1)
	suite.assertRowCount(&orderrepo.SenderDTO{}, 1)
	suite.assertRowCount(&orderrepo.ReceiverDTO{}, 2)
	suite.assertRowCount(&orderrepo.ItemDTO{}, 2)
	suite.assertRowCount(&orderrepo.TrackingEventDTO{}, 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateBookingRef_ReturnsConflict() {
	ctx := context.Background()

	first := suite.createTestOrder("BK-100200", 1)
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	duplicate := suite.createTestOrder("BK-100200", 1)

	err := suite.repository.Add(ctx, duplicate)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.assertRowCount(&orderrepo.OrderDTO{}, 1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsFullGraph() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder("BK-100300", 2)
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.True(originalOrder.ID().IsEqual(retrievedOrder.ID()))
	suite.Equal("BK-100300", retrievedOrder.BookingRef())
	suite.Equal(order.Created, retrievedOrder.Status())
	suite.Equal("North Port", retrievedOrder.Route().Origin)
	suite.Equal("Inland Depot", retrievedOrder.Route().Destination)

	suite.Require().NotNil(retrievedOrder.Sender())
	suite.Equal("Globex", retrievedOrder.Sender().Name())
	suite.Equal(order.RoleSender, retrievedOrder.Sender().Role())

	suite.Require().Len(retrievedOrder.Receivers(), 2)
	for position, receiver := range retrievedOrder.Receivers() {
		expected := originalOrder.Receivers()[position]
		suite.True(expected.ID().IsEqual(receiver.ID()))
		suite.Equal(expected.Name(), receiver.Name())
		suite.Require().Len(receiver.Items(), 1)
		suite.Equal(expected.Items()[0].Category(), receiver.Items()[0].Category())
		suite.Equal(expected.Items()[0].TotalNumber(), receiver.Items()[0].TotalNumber())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByBookingRef_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder("BK-100400", 1)
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.GetByBookingRef(ctx, "BK-100400")
	suite.Require().NoError(err)
	suite.True(originalOrder.ID().IsEqual(retrievedOrder.ID()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedOrder, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AssignmentState_Persisted() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder("BK-100500", 1)
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	// Work on a freshly loaded aggregate, the way the handlers do.
	loaded, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	receiver := loaded.Receivers()[0]
	suite.Require().NoError(loaded.AssignContainers(
		receiver.ID(), 0, []string{"CONT-1001", "CONT-1002"}, 4, "ops", time.Now()))

	suite.tracker.On("TrackAggregate", loaded.ID(), loaded).Once()
	suite.Require().NoError(suite.repository.Update(ctx, loaded, false))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(4, retrievedOrder.TotalAssignedQty())
	suite.Equal(4, retrievedOrder.Receivers()[0].QtyDelivered())
	suite.ElementsMatch(
		[]string{"CONT-1001", "CONT-1002"},
		retrievedOrder.Receivers()[0].Containers(),
	)
	suite.Equal(4, retrievedOrder.Receivers()[0].Items()[0].AssignedQty())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReceiverStatus_AppendsTracking() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder("BK-100600", 1)
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	loaded, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	receiver := loaded.Receivers()[0]
	suite.Require().NoError(loaded.SetReceiverStatus(
		receiver.ID(), order.ReceiverInTransit, "departed origin port", "ops", time.Now()))

	suite.tracker.On("TrackAggregate", loaded.ID(), loaded).Once()
	suite.Require().NoError(suite.repository.Update(ctx, loaded, false))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ReceiverInTransit, retrievedOrder.Receivers()[0].Status())
	suite.Equal(order.InTransit, retrievedOrder.Status())

	// One tracking row from creation, one from the transition.
	suite.assertRowCount(&orderrepo.TrackingEventDTO{}, 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplaceParties_RebuildsGraph() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder("BK-100700", 1)
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	loaded, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	replacements := []*order.Receiver{
		suite.createReceiverWithItem("Border Traders", 0, 6),
		suite.createReceiverWithItem("Inland Wholesale", 1, 3),
	}
	suite.Require().NoError(loaded.ReplaceParties(replacements, "ops", time.Now()))

	suite.tracker.On("TrackAggregate", loaded.ID(), loaded).Once()
	suite.Require().NoError(suite.repository.Update(ctx, loaded, true))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Require().Len(retrievedOrder.Receivers(), 2)
	suite.Equal("Border Traders", retrievedOrder.Receivers()[0].Name())
	suite.Equal("Inland Wholesale", retrievedOrder.Receivers()[1].Name())
	suite.assertRowCount(&orderrepo.ReceiverDTO{}, 2)
	suite.assertRowCount(&orderrepo.ItemDTO{}, 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	nonExistentOrder := suite.createTestOrder("BK-100800", 1)

	err := suite.repository.Update(ctx, nonExistentOrder, false)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates an order with a sender and the requested number of
// receivers, each carrying one cargo line of ten units.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(bookingRef string, receiverCount int) *order.Order {
	route := order.Route{
		Origin:      "North Port",
		Destination: "Inland Depot",
	}
	testOrder, err := order.NewOrder(kernel.NewUUID(), bookingRef, route, "", nil)
	suite.Require().NoError(err)

	sender, err := order.NewSender(
		kernel.NewUUID(), order.RoleSender, "Globex", "+65 6100 3000", "9 Harbour Way", "")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AttachSender(sender))

	receivers := make([]*order.Receiver, 0, receiverCount)
	names := []string{"Acme Importers", "Border Traders", "Inland Wholesale"}
	for i := 0; i < receiverCount; i++ {
		receivers = append(receivers, suite.createReceiverWithItem(names[i], i, 10))
	}
	suite.Require().NoError(testOrder.ReplaceParties(receivers, "ops", time.Now()))

	return testOrder
}

// createReceiverWithItem creates a shipping party holding one cargo line.
func (suite *OrderRepositoryIntegrationTestSuite) createReceiverWithItem(
	name string, partySeq, totalNumber int,
) *order.Receiver {
	receiver, err := order.NewReceiver(
		kernel.NewUUID(), name, "+65 6100 2000", "1 Quay Rd", "",
		nil, nil, order.FullDelivery,
	)
	suite.Require().NoError(err)

	ref, err := kernel.NewItemRef(partySeq, 0)
	suite.Require().NoError(err)
	item, err := order.NewItem(
		kernel.NewUUID(), ref, "Machinery", "Pumps", "Crated",
		"", "", totalNumber, 500,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(receiver.AddItem(item))

	return receiver
}

// assertRowCount verifies the number of rows behind the given model.
func (suite *OrderRepositoryIntegrationTestSuite) assertRowCount(model interface{}, expected int) {
	var count int64
	err := suite.db.Model(model).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
