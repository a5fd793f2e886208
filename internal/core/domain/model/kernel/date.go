package kernel

import (
	"fmt"
	"time"

	"freight/internal/pkg/errs"
)

// DateLayout is the only accepted wire format for calendar dates.
const DateLayout = "2006-01-02"

// ErrDateIsNotConstructed is returned when validating a zero-value Date.
// Dates must be created via ParseDate or DateFromTime.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError(
	"date must be created via ParseDate or DateFromTime constructors")

// Date is an immutable value object representing a calendar date without a
// time-of-day component. All dates cross the system boundary as YYYY-MM-DD;
// any other format is rejected at parse time.
//
// The zero value is invalid and fails Validate. Optional dates (for example a
// receiver's ETA) are represented as *Date.
//
// Example:
//
//	eta, err := kernel.ParseDate("2025-03-14")
//	if err != nil {
//	    // malformed date, reject the request
//	}
//	fmt.Println(eta.String()) // "2025-03-14"
type Date struct {
	t             time.Time
	isConstructed bool
}

// ParseDate parses a date in strict YYYY-MM-DD form.
// Returns a malformed-date validation error for any other input.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause(
			"date",
			fmt.Errorf("%q is not a valid YYYY-MM-DD date", s),
		)
	}
	return Date{t: t, isConstructed: true}, nil
}

// DateFromTime truncates t to its calendar date in UTC.
func DateFromTime(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{
		t:             time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		isConstructed: true,
	}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	return DateFromTime(time.Now())
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Time returns the date as a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// IsEqual reports whether two dates fall on the same calendar day.
func (d Date) IsEqual(other Date) bool {
	return d.t.Equal(other.t)
}

// Validate checks that the Date was created via a constructor.
func (d Date) Validate() error {
	if !d.isConstructed {
		return ErrDateIsNotConstructed
	}
	return nil
}
