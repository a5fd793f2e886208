package queries

import (
	"errors"
	"time"

	"freight/internal/pkg/guard"
)

var ErrGetExpiredHiresQueryIsNotConstructed = errors.New(
	"GetExpiredHiresQuery must be created via NewGetExpiredHiresQuery constructor",
)

// GetExpiredHiresQuery retrieves hired-in containers whose hire period ended
// before the given day. The hire expiry sweep runs it on a schedule to flag
// containers due back to their hirer.
type GetExpiredHiresQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetExpiredHiresQuery creates a query for hires expired before asOf.
func NewGetExpiredHiresQuery(asOf time.Time) GetExpiredHiresQuery {
	return GetExpiredHiresQuery{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetExpiredHiresQuery) Validate() error {
	return q.guard.Validate(ErrGetExpiredHiresQueryIsNotConstructed)
}

// AsOf returns the day the expiry check runs against.
func (q GetExpiredHiresQuery) AsOf() time.Time { return q.asOf }

// GetExpiredHiresQueryResponse is one container whose hire has ended.
type GetExpiredHiresQueryResponse struct {
	ContainerID     string
	ContainerNumber string
	Hirer           string
	HireEndDate     time.Time
}
