// Package consignment implements the consignment aggregate: an independently
// tracked shipping record with its own linear status workflow, referencing
// container and order identifiers denormalized for display.
package consignment

import (
	"errors"
	"regexp"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrConsignmentIsNotConstructed is returned when a Consignment instance
	// was not created through NewConsignment or RestoreConsignment.
	ErrConsignmentIsNotConstructed = errors.New("Consignment must be created via NewConsignment constructor")

	// ErrAlreadyTerminal is returned when cancelling a consignment that is
	// already Delivered or Cancelled.
	ErrAlreadyTerminal = errors.New("consignment is already in a terminal status")

	// eformRegexp is the fixed e-form reference pattern.
	eformRegexp = regexp.MustCompile(`^[A-Z]{3}-\d{6}$`)
)

// minCodeLength is the minimum length for voyage and seal codes.
const minCodeLength = 3

// Fields carries the raw consignment fields submitted by a client.
// ValidateFields checks them as a set so every invalid field is reported.
type Fields struct {
	ConsignmentNumber string
	EformRef          string
	Value             float64
	GrossWeight       float64
	NetWeight         float64
	Vessel            string
	VoyageNo          string
	SealNo            string
	Containers        []string
	Orders            []string
}

// ValidateFields enforces the consignment's required-field list: the fixed
// e-form code pattern, non-negative value and weights, minimum-length voyage
// and seal codes, and non-empty container and order reference lists.
func ValidateFields(fields Fields) *errs.ValidationErrors {
	verrs := errs.NewValidationErrors()

	if fields.ConsignmentNumber == "" {
		verrs.AddRequired("consignmentNumber")
	}

	if fields.EformRef == "" {
		verrs.AddRequired("eform")
	} else if !eformRegexp.MatchString(fields.EformRef) {
		verrs.Add("eform", "must match the pattern AAA-000000")
	}

	if fields.Value < 0 {
		verrs.Add("value", "must not be negative")
	}
	if fields.GrossWeight < 0 {
		verrs.Add("grossWeight", "must not be negative")
	}
	if fields.NetWeight < 0 {
		verrs.Add("netWeight", "must not be negative")
	}

	if len(fields.VoyageNo) < minCodeLength {
		verrs.Add("voyageNo", "must be at least 3 characters")
	}
	if len(fields.SealNo) < minCodeLength {
		verrs.Add("sealNo", "must be at least 3 characters")
	}

	if len(fields.Containers) == 0 {
		verrs.Add("containers", "at least one container reference is required")
	}
	if len(fields.Orders) == 0 {
		verrs.Add("orders", "at least one order reference is required")
	}

	return verrs
}

// Consignment is an independent aggregate with a linear status workflow.
// Container and order references are denormalized display copies, not
// foreign keys into the order aggregate.
type Consignment struct {
	id     kernel.UUID
	fields Fields
	status Status

	isConstructed bool
}

// NewConsignment validates the fields and creates a consignment in Draft.
func NewConsignment(id kernel.UUID, fields Fields) (*Consignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateFields(fields).AsError(); err != nil {
		return nil, err
	}

	return &Consignment{
		id:            id,
		fields:        fields,
		status:        Draft,
		isConstructed: true,
	}, nil
}

// RestoreConsignment reconstructs a persisted consignment.
func RestoreConsignment(id kernel.UUID, fields Fields, status Status) (*Consignment, error) {
	c, err := NewConsignment(id, fields)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	c.status = status
	return c, nil
}

// Validate ensures the Consignment was created through a constructor.
func (c *Consignment) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConsignmentIsNotConstructed
	}
	return nil
}

// ID returns the consignment's unique identifier.
func (c *Consignment) ID() kernel.UUID { return c.id }

// Fields returns the consignment's field set.
func (c *Consignment) Fields() Fields { return c.fields }

// Status returns the current workflow status.
func (c *Consignment) Status() Status { return c.status }

// Advance moves the consignment one step along the linear chain and returns
// the new status. Terminal statuses fail with ErrNoNextStatus.
func (c *Consignment) Advance() (Status, error) {
	next, err := c.status.Next()
	if err != nil {
		return StatusUnknown, err
	}
	c.status = next
	return next, nil
}

// Cancel moves the consignment to Cancelled. This is the only way to reach
// Cancelled; Advance never yields it. Terminal consignments cannot be
// cancelled.
func (c *Consignment) Cancel() error {
	if c.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	c.status = Cancelled
	return nil
}
