package containerrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/containerrepo"
	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"
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

// ContainerRepositoryIntegrationTestSuite provides integration tests for the
// container repository using PostgreSQL containers, covering the master row,
// detail records, and the append-only status ledger.
type ContainerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *containerrepo.GormContainerRepository
	tracker    *MockAggregateTracker
}

func (suite *ContainerRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
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
	suite.container = pgContainer

	// Get connection string and connect to database
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	// TranslateError is required so unique violations surface as
	// gorm.ErrDuplicatedKey, matching the production connection.
	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&containerrepo.ContainerDTO{},
		&containerrepo.StatusEventDTO{},
		&containerrepo.PurchaseDetailDTO{},
		&containerrepo.HireDetailDTO{},
	))
}

func (suite *ContainerRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE containers, container_events, purchase_details, hire_details").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = containerrepo.NewGormContainerRepository(suite.db, suite.tracker)
}

func (suite *ContainerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ContainerRepositoryIntegrationTestSuite) TestAdd_OwnedContainer_Success() {
	ctx := context.Background()

	testContainer := suite.createOwnedContainer("CONT-1001")

	suite.tracker.On("TrackAggregate", testContainer.ID(), testContainer).Once()

	err := suite.repository.Add(ctx, testContainer)
	suite.Require().NoError(err)

	suite.assertRowCount(&containerrepo.ContainerDTO{}, 1)
	suite.assertRowCount(&containerrepo.PurchaseDetailDTO{}, 1)
	suite.assertRowCount(&containerrepo.HireDetailDTO{}, 0)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ContainerRepositoryIntegrationTestSuite) TestAdd_DuplicateNumber_ReturnsConflict() {
	ctx := context.Background()

	first := suite.createOwnedContainer("CONT-1001")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	duplicate := suite.createOwnedContainer("CONT-1001")

	err := suite.repository.Add(ctx, duplicate)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.assertRowCount(&containerrepo.ContainerDTO{}, 1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ContainerRepositoryIntegrationTestSuite) TestGetByNumber_HiredContainer_RoundTrips() {
	ctx := context.Background()

	original := suite.createHiredContainer("CONT-2001", "2025-01-01", "2025-12-31")
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.GetByNumber(ctx, "CONT-2001")
	suite.Require().NoError(err)

	suite.True(original.ID().IsEqual(retrieved.ID()))
	suite.Equal("CONT-2001", retrieved.Number())
	suite.Equal(container.HiredIn, retrieved.OwnerType())
	suite.Require().NotNil(retrieved.Hire())
	suite.Equal("Oceanic Leasing", retrieved.Hire().Hirer())
	suite.Require().NotNil(retrieved.Hire().EndDate())
	suite.Equal("2025-12-31", retrieved.Hire().EndDate().String())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ContainerRepositoryIntegrationTestSuite) TestAppendEvent_LedgerGrowsInOrder() {
	ctx := context.Background()

	testContainer := suite.createOwnedContainer("CONT-1001")
	suite.tracker.On("TrackAggregate", testContainer.ID(), testContainer).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testContainer))

	occurredAt := time.Now()
	first, err := testContainer.RecordEvent("North Port", container.InTransit, "", "ops", occurredAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AppendEvent(ctx, testContainer.ID(), first))

	second, err := testContainer.RecordEvent("", container.Cleared, "", "ops", occurredAt.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AppendEvent(ctx, testContainer.ID(), second))

	retrieved, err := suite.repository.Get(ctx, testContainer.ID())
	suite.Require().NoError(err)

	suite.Require().Len(retrieved.Events(), 2)
	suite.Equal(1, retrieved.Events()[0].Seq())
	suite.Equal("North Port", retrieved.Events()[0].Location())
	suite.Equal(container.InTransit, retrieved.Events()[0].Availability())
	suite.Equal(2, retrieved.Events()[1].Seq())
	suite.Equal(container.Cleared, retrieved.Events()[1].Availability())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ContainerRepositoryIntegrationTestSuite) TestAppendEvent_DuplicateSeq_ReturnsConflict() {
	ctx := context.Background()

	testContainer := suite.createOwnedContainer("CONT-1001")
	suite.tracker.On("TrackAggregate", testContainer.ID(), testContainer).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testContainer))

	event, err := testContainer.RecordEvent("North Port", container.InTransit, "", "ops", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AppendEvent(ctx, testContainer.ID(), event))

	// A second writer issuing the same sequence loses on the composite key.
	err = suite.repository.AppendEvent(ctx, testContainer.ID(), event)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.assertRowCount(&containerrepo.StatusEventDTO{}, 1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ContainerRepositoryIntegrationTestSuite) TestGetByNumbers_PreservesRequestOrder() {
	ctx := context.Background()

	first := suite.createOwnedContainer("CONT-1001")
	second := suite.createOwnedContainer("CONT-1002")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.tracker.On("TrackAggregate", second.ID(), second).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	containers, err := suite.repository.GetByNumbers(ctx, []string{"CONT-1002", "CONT-1001"})
	suite.Require().NoError(err)

	suite.Require().Len(containers, 2)
	suite.Equal("CONT-1002", containers[0].Number())
	suite.Equal("CONT-1001", containers[1].Number())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ContainerRepositoryIntegrationTestSuite) TestGetByNumbers_MissingNumber_ReturnsNotFoundError() {
	ctx := context.Background()

	first := suite.createOwnedContainer("CONT-1001")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	containers, err := suite.repository.GetByNumbers(ctx, []string{"CONT-1001", "CONT-9999"})

	suite.Nil(containers)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Contains(err.Error(), "CONT-9999")
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ContainerRepositoryIntegrationTestSuite) TestUpdateMaster_StatusOverride_RoundTrips() {
	ctx := context.Background()

	testContainer := suite.createOwnedContainer("CONT-1001")
	suite.tracker.On("TrackAggregate", testContainer.ID(), testContainer).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testContainer))

	loaded, err := suite.repository.Get(ctx, testContainer.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.SetStatusOverride(container.UnderRepair))

	suite.tracker.On("TrackAggregate", loaded.ID(), loaded).Once()
	suite.Require().NoError(suite.repository.UpdateMaster(ctx, loaded))

	retrieved, err := suite.repository.Get(ctx, testContainer.ID())
	suite.Require().NoError(err)
	suite.Equal(container.UnderRepair, retrieved.StatusOverride())
	suite.Equal(container.UnderRepair, retrieved.DeriveStatus(time.Now()))

	// Clearing the override restores derivation from the ledger.
	retrieved.ClearStatusOverride()
	suite.tracker.On("TrackAggregate", retrieved.ID(), retrieved).Once()
	suite.Require().NoError(suite.repository.UpdateMaster(ctx, retrieved))

	cleared, err := suite.repository.Get(ctx, testContainer.ID())
	suite.Require().NoError(err)
	suite.Equal(container.AvailabilityUnknown, cleared.StatusOverride())
	suite.Equal(container.Available, cleared.DeriveStatus(time.Now()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ContainerRepositoryIntegrationTestSuite) TestUpdateMaster_NonExistentContainer_ReturnsNotFoundError() {
	ctx := context.Background()

	testContainer := suite.createOwnedContainer("CONT-1001")

	err := suite.repository.UpdateMaster(ctx, testContainer)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

// createOwnedContainer creates an owned container with a purchase record.
func (suite *ContainerRepositoryIntegrationTestSuite) createOwnedContainer(number string) *container.Container {
	testContainer, err := container.NewContainer(
		kernel.NewUUID(), number, "20ft", "Dry", container.Owned)
	suite.Require().NoError(err)

	purchaseDate, err := kernel.ParseDate("2024-06-15")
	suite.Require().NoError(err)
	purchase, err := container.NewPurchaseDetail("Boxline Trading", "PO-4410", purchaseDate, 2150)
	suite.Require().NoError(err)
	suite.Require().NoError(testContainer.AttachPurchaseDetail(purchase))

	return testContainer
}

// createHiredContainer creates a hired-in container with the given hire window.
func (suite *ContainerRepositoryIntegrationTestSuite) createHiredContainer(
	number, start, end string,
) *container.Container {
	testContainer, err := container.NewContainer(
		kernel.NewUUID(), number, "40ft", "Reefer", container.HiredIn)
	suite.Require().NoError(err)

	startDate, err := kernel.ParseDate(start)
	suite.Require().NoError(err)
	endDate, err := kernel.ParseDate(end)
	suite.Require().NoError(err)
	hire, err := container.NewHireDetail("Oceanic Leasing", "HA-77", startDate, &endDate, 12.50)
	suite.Require().NoError(err)
	suite.Require().NoError(testContainer.AttachHireDetail(hire))

	return testContainer
}

// assertRowCount verifies the number of rows behind the given model.
func (suite *ContainerRepositoryIntegrationTestSuite) assertRowCount(model interface{}, expected int) {
	var count int64
	err := suite.db.Model(model).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestContainerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ContainerRepositoryIntegrationTestSuite))
}
