package usecase

import "errors"

// Domain errors surfaced to the API boundary. Handlers map these to HTTP
// statuses; everything not listed here is treated as an upstream failure.
var (
	// ErrUnauthorized covers missing or invalid credentials.
	ErrUnauthorized = errors.New("please log in to continue")

	// ErrForbidden covers a valid identity with insufficient role or
	// ownership.
	ErrForbidden = errors.New("not authorized to perform this action")

	// ErrInvalidCredentials is returned for a bad email/password pair. The
	// message deliberately does not reveal which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserExists           = errors.New("user already exists")
	ErrDuplicateReview      = errors.New("user has already reviewed this product")
	ErrDuplicatePreferences = errors.New("preferences already exist for this user")

	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrPreferencesNotFound = errors.New("preferences not found")

	// ErrInvalidResetToken covers a password-reset token that does not match
	// any stored hash or whose stored expiry has passed.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrEmailSend is returned when reset-email delivery fails; the stored
	// token state has already been rolled back by then.
	ErrEmailSend = errors.New("email could not be sent")
)
