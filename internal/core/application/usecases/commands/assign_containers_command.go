package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAssignContainersCommandIsNotConstructed = errors.New(
	"AssignContainersCommand must be created via NewAssignContainersCommand constructor",
)

// AssignmentLine books containers and a delivered quantity against one
// receiver's item, addressed by the item's position within the receiver.
type AssignmentLine struct {
	ReceiverID       kernel.UUID
	ItemIndex        int
	ContainerNumbers []string
	Qty              int
}

// OrderAssignment is the assignment lines targeting one order.
type OrderAssignment struct {
	OrderID kernel.UUID
	Lines   []AssignmentLine
}

// AssignContainersParams is a batch of per-order assignments. The batch is
// all-or-nothing across every order it touches: one failing line rejects the
// whole batch, and no order is left partially assigned.
type AssignContainersParams struct {
	Batches []OrderAssignment
	Actor   string
}

// AssignContainersCommand represents a validated request to assign containers
// to the items of one or more orders.
type AssignContainersCommand struct { //nolint:recvcheck //using for validation
	params AssignContainersParams

	guard guard.ConstructorGuard
}

// NewAssignContainersCommand validates the batch shape and creates the
// command. Quantity conservation and container availability are checked by
// the handler against loaded state.
func NewAssignContainersCommand(params AssignContainersParams) (AssignContainersCommand, error) {
	verrs := errs.NewValidationErrors()

	if params.Actor == "" {
		verrs.AddRequired("actor")
	}
	if len(params.Batches) == 0 {
		verrs.AddRequired("batches")
	}
	for b, batch := range params.Batches {
		if err := batch.OrderID.Validate(); err != nil {
			verrs.Add(fmt.Sprintf("batches[%d].orderId", b), err.Error())
		}
		if len(batch.Lines) == 0 {
			verrs.AddRequired(fmt.Sprintf("batches[%d].lines", b))
		}
		for i, line := range batch.Lines {
			if err := line.ReceiverID.Validate(); err != nil {
				verrs.Add(fmt.Sprintf("batches[%d].lines[%d].receiverId", b, i), err.Error())
			}
			if line.ItemIndex < 0 {
				verrs.Add(fmt.Sprintf("batches[%d].lines[%d].itemIndex", b, i), "must not be negative")
			}
			if len(line.ContainerNumbers) == 0 {
				verrs.AddRequired(fmt.Sprintf("batches[%d].lines[%d].containerNumbers", b, i))
			}
			if line.Qty <= 0 {
				verrs.Add(fmt.Sprintf("batches[%d].lines[%d].qty", b, i), "must be greater than 0")
			}
		}
	}

	if err := verrs.AsError(); err != nil {
		return AssignContainersCommand{}, err
	}

	return AssignContainersCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignContainersCommand) Validate() error {
	return c.guard.Validate(ErrAssignContainersCommandIsNotConstructed)
}

// Params returns the validated batch payload.
func (c AssignContainersCommand) Params() AssignContainersParams {
	return c.params
}
