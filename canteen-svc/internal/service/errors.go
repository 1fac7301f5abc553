package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrOrderNotFound      = errors.New("order not found")
	ErrValidationFailed   = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrItemUnavailable    = errors.New("menu item is not available")
	ErrCartItemNotFound   = errors.New("item is not in the cart")
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrDuplicateStaff     = errors.New("staff member with this email already exists")
	ErrLocationNotSet     = errors.New("shop location has not been set")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}
