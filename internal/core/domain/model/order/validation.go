package order

import (
	"fmt"
	"regexp"

	"freight/internal/pkg/errs"
)

var (
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// bookingRefRegexp matches the consignment-style booking codes used
	// across the system: uppercase alphanumerics and dashes, at least six
	// characters.
	bookingRefRegexp = regexp.MustCompile(`^[A-Z0-9\-]{6,}$`)

	phoneDigitRegexp = regexp.MustCompile(`[0-9]`)
	phoneShapeRegexp = regexp.MustCompile(`^\+?[0-9 ()\-]+$`)
)

const (
	phoneMinDigits = 7
	phoneMaxDigits = 15
)

// validateEmail checks the address shape. Empty is allowed; presence is a
// separate required-field concern.
func validateEmail(field, email string) error {
	if email == "" {
		return nil
	}
	if !emailRegexp.MatchString(email) {
		return errs.NewValueIsInvalidErrorWithCause(
			field, fmt.Errorf("%q is not a valid email address", email))
	}
	return nil
}

// validatePhone checks that a contact number carries between 7 and 15 digits
// and only phone punctuation around them. Empty is allowed.
func validatePhone(field, phone string) error {
	if phone == "" {
		return nil
	}
	if !phoneShapeRegexp.MatchString(phone) {
		return errs.NewValueIsInvalidErrorWithCause(
			field, fmt.Errorf("%q contains non-phone characters", phone))
	}
	digits := len(phoneDigitRegexp.FindAllString(phone, -1))
	if digits < phoneMinDigits || digits > phoneMaxDigits {
		return errs.NewValueIsOutOfRangeError(field+" digit count", digits, phoneMinDigits, phoneMaxDigits)
	}
	return nil
}

// validateBookingRef checks the booking reference code format.
func validateBookingRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("bookingRef")
	}
	if !bookingRefRegexp.MatchString(ref) {
		return errs.NewValueIsInvalidErrorWithCause(
			"bookingRef", fmt.Errorf("%q does not match the booking code format", ref))
	}
	return nil
}
