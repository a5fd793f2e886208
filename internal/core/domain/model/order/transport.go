package order

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrTransportIsNotConstructed is returned when a TransportDetail instance
// was not created through NewTransportDetail.
var ErrTransportIsNotConstructed = errors.New("TransportDetail must be created via NewTransportDetail constructor")

// TransportMode states how cargo reaches or leaves the depot.
type TransportMode int

const (
	TransportModeUnknown TransportMode = iota

	// DropOff: the customer delivers cargo to the depot themselves.
	DropOff

	// Collection: company transport collects the cargo.
	Collection

	// ThirdParty: an external haulier handles the movement.
	ThirdParty
)

func getTransportModeStrings() map[TransportMode]string {
	return map[TransportMode]string{
		TransportModeUnknown: "Unknown",
		DropOff:              "Drop-Off",
		Collection:           "Collection",
		ThirdParty:           "Third-Party",
	}
}

// TransportModeFromString parses the wire form of a transport mode.
func TransportModeFromString(s string) (TransportMode, error) {
	for value, str := range getTransportModeStrings() {
		if str == s && value != TransportModeUnknown {
			return value, nil
		}
	}
	return TransportModeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"transportMode", fmt.Errorf("%q is not a valid transport mode", s))
}

// String returns the wire form of the transport mode.
func (m TransportMode) String() string {
	if str, ok := getTransportModeStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the transport mode is one of the closed vocabulary.
func (m TransportMode) Validate() error {
	if m != DropOff && m != Collection && m != ThirdParty {
		return errs.NewValueIsInvalidErrorWithCause(
			"transportMode", fmt.Errorf("%d is not a valid transport mode", m))
	}
	return nil
}

// TransportParams carries the raw fields of a transport record; which are
// required depends on the mode and on the order's route.
type TransportParams struct {
	Mode            TransportMode
	DropOffLocation string
	DropOffDate     *kernel.Date
	VehicleNo       string
	DriverName      string
	DriverContact   string
	VendorName      string
	VendorContact   string
	HubPassRef      string
}

// TransportDetail is the one-to-one transport record of an order.
type TransportDetail struct {
	mode            TransportMode
	dropOffLocation string
	dropOffDate     *kernel.Date
	vehicleNo       string
	driverName      string
	driverContact   string
	vendorName      string
	vendorContact   string
	hubPassRef      string

	isConstructed bool
}

// NewTransportDetail creates a transport record. Only the mode itself is
// validated here; the conditional per-mode and hub requirements are checked
// by ValidateForRoute against the owning order's route.
func NewTransportDetail(params TransportParams) (*TransportDetail, error) {
	if err := params.Mode.Validate(); err != nil {
		return nil, err
	}
	if err := errors.Join(
		validatePhone("driverContact", params.DriverContact),
		validatePhone("vendorContact", params.VendorContact),
		validateOptionalDate("dropOffDate", params.DropOffDate),
	); err != nil {
		return nil, err
	}

	return &TransportDetail{
		mode:            params.Mode,
		dropOffLocation: params.DropOffLocation,
		dropOffDate:     params.DropOffDate,
		vehicleNo:       params.VehicleNo,
		driverName:      params.DriverName,
		driverContact:   params.DriverContact,
		vendorName:      params.VendorName,
		vendorContact:   params.VendorContact,
		hubPassRef:      params.HubPassRef,
		isConstructed:   true,
	}, nil
}

// Validate ensures the TransportDetail was created through its constructor.
func (t *TransportDetail) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransportIsNotConstructed
	}
	return nil
}

// Mode returns the transport mode.
func (t *TransportDetail) Mode() TransportMode { return t.mode }

// DropOffLocation returns where the customer drops the cargo.
func (t *TransportDetail) DropOffLocation() string { return t.dropOffLocation }

// DropOffDate returns the agreed drop-off date, nil when not set.
func (t *TransportDetail) DropOffDate() *kernel.Date { return t.dropOffDate }

// VehicleNo returns the collecting vehicle's registration.
func (t *TransportDetail) VehicleNo() string { return t.vehicleNo }

// DriverName returns the collecting driver's name.
func (t *TransportDetail) DriverName() string { return t.driverName }

// DriverContact returns the collecting driver's contact number.
func (t *TransportDetail) DriverContact() string { return t.driverContact }

// VendorName returns the third-party haulier's name.
func (t *TransportDetail) VendorName() string { return t.vendorName }

// VendorContact returns the third-party haulier's contact number.
func (t *TransportDetail) VendorContact() string { return t.vendorContact }

// HubPassRef returns the gate pass reference required at hub locations.
func (t *TransportDetail) HubPassRef() string { return t.hubPassRef }

// ValidateForRoute collects the conditional requirements of the record:
// per-mode required fields, plus the hub rule — when the order's origin or
// destination matches one of the named hub locations, a gate pass reference
// must be present.
func (t *TransportDetail) ValidateForRoute(route Route, hubLocations []string) *errs.ValidationErrors {
	verrs := errs.NewValidationErrors()

	switch t.mode {
	case DropOff:
		if t.dropOffLocation == "" {
			verrs.AddRequired("transport.dropOffLocation")
		}
		if t.dropOffDate == nil {
			verrs.AddRequired("transport.dropOffDate")
		}
	case Collection:
		if t.vehicleNo == "" {
			verrs.AddRequired("transport.vehicleNo")
		}
		if t.driverName == "" {
			verrs.AddRequired("transport.driverName")
		}
	case ThirdParty:
		if t.vendorName == "" {
			verrs.AddRequired("transport.vendorName")
		}
	}

	if routeTouchesHub(route, hubLocations) && t.hubPassRef == "" {
		verrs.AddRequired("transport.hubPassRef")
	}

	return verrs
}

// routeTouchesHub reports whether the origin or destination matches one of
// the named hub locations by case-insensitive substring.
func routeTouchesHub(route Route, hubLocations []string) bool {
	for _, hub := range hubLocations {
		if hub == "" {
			continue
		}
		needle := strings.ToLower(hub)
		if strings.Contains(strings.ToLower(route.Origin), needle) ||
			strings.Contains(strings.ToLower(route.Destination), needle) {
			return true
		}
	}
	return false
}
