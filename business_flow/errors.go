// Package businessflow contains the core business logic and use cases for affiliate tracking workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Account-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrAccessDenied       = errors.New("access denied")

	// Program-related errors
	ErrProgramNotFound        = errors.New("program not found")
	ErrProgramNotActive       = errors.New("program is not active")
	ErrProgramNameRequired    = errors.New("program name is required")
	ErrLandingPageURLRequired = errors.New("landing page URL is required")
	ErrLandingPageURLInvalid  = errors.New("landing page URL is invalid")
	ErrCommissionTypeInvalid  = errors.New("commission type is invalid")
	ErrCommissionTermsMissing = errors.New("commission amount or rate is required")
	ErrCookieDurationInvalid  = errors.New("cookie duration must be between 1 and 365 days")

	// Partnership-related errors
	ErrPartnershipNotFound      = errors.New("partnership not found")
	ErrPartnershipNotApproved   = errors.New("partnership is not approved")
	ErrPartnershipAlreadyExists = errors.New("partnership already exists for this program")
	ErrPartnershipNotPending    = errors.New("partnership has already been reviewed")
	ErrPublisherSiteNotFound    = errors.New("publisher site not found")

	// Tracking-related errors
	ErrAffiliateCodeNotFound = errors.New("affiliate code not found")
	ErrNoAttributableClick   = errors.New("no attributable click found")
	ErrDuplicateConversion   = errors.New("conversion already recorded for this click")
	ErrConversionNotFound    = errors.New("conversion not found")
	ErrConversionNotPending  = errors.New("conversion has already been reviewed")
	ErrSaleAmountInvalid     = errors.New("sale amount must not be negative")

	// Filter errors
	ErrInvalidPage           = errors.New("page must be at least 1")
	ErrInvalidPageSize       = errors.New("page size must be between 1 and 100")
	ErrStartDateAfterEndDate = errors.New("start date cannot be after end date")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsProfileNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound)
}

func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

func IsProgramNotFound(err error) bool {
	return errors.Is(err, ErrProgramNotFound)
}

func IsProgramNotActive(err error) bool {
	return errors.Is(err, ErrProgramNotActive)
}

func IsPartnershipNotFound(err error) bool {
	return errors.Is(err, ErrPartnershipNotFound)
}

func IsPartnershipNotApproved(err error) bool {
	return errors.Is(err, ErrPartnershipNotApproved)
}

func IsPartnershipAlreadyExists(err error) bool {
	return errors.Is(err, ErrPartnershipAlreadyExists)
}

func IsPartnershipNotPending(err error) bool {
	return errors.Is(err, ErrPartnershipNotPending)
}

func IsAffiliateCodeNotFound(err error) bool {
	return errors.Is(err, ErrAffiliateCodeNotFound)
}

func IsNoAttributableClick(err error) bool {
	return errors.Is(err, ErrNoAttributableClick)
}

func IsDuplicateConversion(err error) bool {
	return errors.Is(err, ErrDuplicateConversion)
}

func IsConversionNotFound(err error) bool {
	return errors.Is(err, ErrConversionNotFound)
}

func IsConversionNotPending(err error) bool {
	return errors.Is(err, ErrConversionNotPending)
}

func IsSaleAmountInvalid(err error) bool {
	return errors.Is(err, ErrSaleAmountInvalid)
}

func IsPublisherSiteNotFound(err error) bool {
	return errors.Is(err, ErrPublisherSiteNotFound)
}

func IsStartDateAfterEndDate(err error) bool {
	return errors.Is(err, ErrStartDateAfterEndDate)
}

// IsProgramValidation reports whether the error is one of the program
// creation validation failures.
func IsProgramValidation(err error) bool {
	return errors.Is(err, ErrProgramNameRequired) ||
		errors.Is(err, ErrLandingPageURLRequired) ||
		errors.Is(err, ErrLandingPageURLInvalid) ||
		errors.Is(err, ErrCommissionTypeInvalid) ||
		errors.Is(err, ErrCommissionTermsMissing) ||
		errors.Is(err, ErrCookieDurationInvalid)
}
