package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrIncorrectCredentials = errors.New("incorrect credentials")

	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")

	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")

	ErrOrderNotFound    = errors.New("order not found")
	ErrNotOwner         = errors.New("entity belongs to another user")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidOrderData = errors.New("invalid order data")
	ErrNotCancellable   = errors.New("only pending orders can be cancelled")
	ErrInvalidStatus    = errors.New("invalid status value")

	ErrReturnNotFound      = errors.New("return not found")
	ErrReturnNotEligible   = errors.New("only delivered orders can be returned")
	ErrReturnWindowExpired = errors.New("return period has expired")
	ErrReturnExists        = errors.New("return already requested for order")
	ErrReturnResolved      = errors.New("return already resolved")
)
