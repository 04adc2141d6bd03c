package user

import "github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"

var (
	ErrNotFound       = apperr.NotFound("USER_NOT_FOUND", "User not found.")
	ErrEmailExists    = apperr.Conflict("EMAIL_EXISTS", "This email is already registered.")
	ErrHasRecords     = apperr.Conflict("USER_HAS_RECORDS", "User has borrow records and cannot be deleted.")
	ErrInvalidRole    = apperr.InvalidInput("INVALID_ROLE", "role must be one of admin, staff, student.")
	ErrFieldsRequired = apperr.InvalidInput("VALIDATION_ERROR", "name, email, password, and role are required.")
	ErrNoChanges      = apperr.InvalidInput("VALIDATION_ERROR", "No fields to update.")
	ErrSelfDelete     = apperr.InvalidInput("SELF_DELETE", "You cannot delete your own account.")
)
