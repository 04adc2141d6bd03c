package equipment

import "github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"

var (
	ErrNotFound        = apperr.NotFound("EQUIPMENT_NOT_FOUND", "Equipment not found.")
	ErrInUse           = apperr.Conflict("EQUIPMENT_IN_USE", "Equipment has borrow records and cannot be deleted.")
	ErrNameRequired    = apperr.InvalidInput("VALIDATION_ERROR", "Name and quantity are required.")
	ErrInvalidQuantity = apperr.InvalidInput("INVALID_QUANTITY", "quantity must be zero or greater.")
	ErrInvalidStatus   = apperr.InvalidInput("INVALID_STATUS", "status must be one of available, borrowed, lost, damaged.")
	ErrNoChanges       = apperr.InvalidInput("VALIDATION_ERROR", "No fields to update.")
)
