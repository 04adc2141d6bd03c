package borrow

import "github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"

var (
	ErrNotFound          = apperr.NotFound("BORROW_NOT_FOUND", "Request not found.")
	ErrUserNotFound      = apperr.NotFound("USER_NOT_FOUND", "User not found.")
	ErrEquipmentNotFound = apperr.NotFound("EQUIPMENT_NOT_FOUND", "Equipment not found.")

	ErrNotOwner = apperr.Forbidden("NOT_OWNER", "Not authorized.")

	ErrNotPending       = apperr.InvalidState("NOT_PENDING", "Request is not pending.")
	ErrCancelNotPending = apperr.InvalidState("NOT_PENDING", "Only pending requests can be cancelled.")
	ErrNotBorrowed      = apperr.InvalidState("NOT_BORROWED", "Only borrowed equipment can be returned, lost or damaged.")

	ErrEquipmentRequired = apperr.InvalidInput("VALIDATION_ERROR", "equipment_id is required.")
	ErrPartiesRequired   = apperr.InvalidInput("VALIDATION_ERROR", "user_id and equipment_id are required.")
	ErrInvalidOutcome    = apperr.InvalidInput("INVALID_STATUS", "status must be one of returned, lost, damaged.")
	ErrInvalidDate       = apperr.InvalidInput("INVALID_DATE", "due_date must be an RFC 3339 timestamp or a YYYY-MM-DD date.")
)
