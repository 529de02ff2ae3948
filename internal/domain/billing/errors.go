package billing

import "errors"

var (
	// ErrInvalidPlan is returned when a purchase references an unknown plan id.
	ErrInvalidPlan = errors.New("invalid plan")

	// ErrAlreadyEntitled is returned when a user with an active premium window
	// tries to purchase again. Plans are duration-based and not stackable.
	ErrAlreadyEntitled = errors.New("user already has an active premium subscription")

	// ErrUnknownOrder is returned when no transaction exists for an order id.
	ErrUnknownOrder = errors.New("unknown order")

	// ErrForbidden is returned when a caller reads a transaction they do not own.
	ErrForbidden = errors.New("transaction belongs to another user")

	// ErrGatewayUnavailable is returned when the payment gateway cannot be
	// reached or rejects the transaction-creation call. The purchase flow is
	// abandoned; the user must re-initiate.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
