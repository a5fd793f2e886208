package order

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrSenderIsNotConstructed is returned when a Sender instance was not
// created through NewSender or RestoreSender.
var ErrSenderIsNotConstructed = errors.New("Sender must be created via NewSender constructor")

// OwnerRole states which side of the shipment the order owner plays. The
// sender row is polymorphic: the same structural record represents either
// the shipper or the consignee depending on this flag, and raw submissions
// are field-remapped accordingly before they reach the aggregate.
type OwnerRole int

const (
	OwnerRoleUnknown OwnerRole = iota

	// RoleSender: the order owner ships the cargo.
	RoleSender

	// RoleReceiver: the order owner receives the cargo; sender and receiver
	// fields of raw submissions are swapped before grouping.
	RoleReceiver
)

func getOwnerRoleStrings() map[OwnerRole]string {
	return map[OwnerRole]string{
		OwnerRoleUnknown: "Unknown",
		RoleSender:       "sender",
		RoleReceiver:     "receiver",
	}
}

// OwnerRoleFromString parses the wire form of the sender_type flag.
func OwnerRoleFromString(s string) (OwnerRole, error) {
	for value, str := range getOwnerRoleStrings() {
		if str == s && value != OwnerRoleUnknown {
			return value, nil
		}
	}
	return OwnerRoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"senderType", fmt.Errorf("%q is not a valid owner role", s))
}

// String returns the wire form of the owner role.
func (r OwnerRole) String() string {
	if str, ok := getOwnerRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the owner role is one of the closed vocabulary.
func (r OwnerRole) Validate() error {
	if r != RoleSender && r != RoleReceiver {
		return errs.NewValueIsInvalidErrorWithCause(
			"senderType", fmt.Errorf("%d is not a valid owner role", r))
	}
	return nil
}

// Sender is the order owner. Exactly one exists per order and it is owned
// exclusively by its order.
type Sender struct {
	id      kernel.UUID
	role    OwnerRole
	name    string
	contact string
	address string
	email   string

	isConstructed bool
}

// NewSender creates the order owner record. Name is required; email and
// contact are format-checked when present.
func NewSender(id kernel.UUID, role OwnerRole, name, contact, address, email string) (*Sender, error) {
	s := &Sender{isConstructed: true}

	if err := errors.Join(
		s.setID(id),
		s.setRole(role),
		s.setName(name),
		validatePhone("contact", contact),
		validateEmail("email", email),
	); err != nil {
		return nil, err
	}

	s.contact = contact
	s.address = address
	s.email = email
	return s, nil
}

// Validate ensures the Sender was created through a constructor.
func (s *Sender) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSenderIsNotConstructed
	}
	return nil
}

// ID returns the sender's unique identifier.
func (s *Sender) ID() kernel.UUID { return s.id }

// Role returns the polymorphic owner role.
func (s *Sender) Role() OwnerRole { return s.role }

// Name returns the owner's name.
func (s *Sender) Name() string { return s.name }

// Contact returns the owner's contact number.
func (s *Sender) Contact() string { return s.contact }

// Address returns the owner's address.
func (s *Sender) Address() string { return s.address }

// Email returns the owner's email address.
func (s *Sender) Email() string { return s.email }

// SenderPatch is the fixed, auditable set of sender fields that an order
// update may patch in place. Nil fields are left untouched.
type SenderPatch struct {
	Name    *string
	Contact *string
	Address *string
	Email   *string
}

// ApplyPatch patches the explicitly provided fields, re-running the same
// format checks as construction.
func (s *Sender) ApplyPatch(patch SenderPatch) error {
	if patch.Name != nil {
		if err := s.setName(*patch.Name); err != nil {
			return err
		}
	}
	if patch.Contact != nil {
		if err := validatePhone("contact", *patch.Contact); err != nil {
			return err
		}
		s.contact = *patch.Contact
	}
	if patch.Email != nil {
		if err := validateEmail("email", *patch.Email); err != nil {
			return err
		}
		s.email = *patch.Email
	}
	if patch.Address != nil {
		s.address = *patch.Address
	}
	return nil
}

func (s *Sender) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Sender) setRole(role OwnerRole) error {
	if err := role.Validate(); err != nil {
		return err
	}
	s.role = role
	return nil
}

func (s *Sender) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}
