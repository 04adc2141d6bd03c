package penalty

import "github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"

var (
	ErrNotFound       = apperr.NotFound("PENALTY_NOT_FOUND", "Penalty not found.")
	ErrBorrowNotFound = apperr.NotFound("BORROW_NOT_FOUND", "Borrowed equipment record not found.")

	ErrFieldsRequired = apperr.InvalidInput("VALIDATION_ERROR", "user_id, borrowed_equipment_id, amount, and reason are required.")
	ErrInvalidAmount  = apperr.InvalidInput("INVALID_AMOUNT", "amount must be a positive number.")
	ErrInvalidStatus  = apperr.InvalidInput("INVALID_STATUS", "status must be one of unpaid, paid, waived.")
	ErrEmptyReason    = apperr.InvalidInput("VALIDATION_ERROR", "reason must not be empty.")
	ErrUserMismatch   = apperr.InvalidInput("USER_MISMATCH", "user_id does not match the borrowed equipment record.")
	ErrNoChanges      = apperr.InvalidInput("VALIDATION_ERROR", "No fields to update.")
)
