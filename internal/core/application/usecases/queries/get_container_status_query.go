package queries

import (
	"errors"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetContainerStatusQueryIsNotConstructed = errors.New(
	"GetContainerStatusQuery must be created via NewGetContainerStatusQuery constructor",
)

// GetContainerStatusQuery retrieves one container's derived status and its
// ledger history, addressed by container number.
type GetContainerStatusQuery struct {
	number string

	guard guard.ConstructorGuard
}

// NewGetContainerStatusQuery creates a query for one container's status.
func NewGetContainerStatusQuery(number string) (GetContainerStatusQuery, error) {
	if number == "" {
		return GetContainerStatusQuery{}, errs.NewValueIsRequiredError("number")
	}
	return GetContainerStatusQuery{
		number: number,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetContainerStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetContainerStatusQueryIsNotConstructed)
}

// Number returns the target container number.
func (q GetContainerStatusQuery) Number() string { return q.number }

// ContainerHistoryEntry is one ledger event in a status response.
type ContainerHistoryEntry struct {
	Seq          int
	Location     string
	Availability string
	Note         string
	Actor        string
	OccurredAt   time.Time
}

// GetContainerStatusQueryResponse is the derived status of one container
// plus its full ledger history, oldest first.
type GetContainerStatusQueryResponse struct {
	ID            string
	Number        string
	Size          string
	ContainerType string
	OwnerType     string
	DerivedStatus string
	History       []ContainerHistoryEntry
}
