package equipment

type CreateEquipmentRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Quantity    *int    `json:"quantity" validate:"required,gte=0"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=available borrowed lost damaged"`
	Sport       string  `json:"sport"`
}

type UpdateEquipmentRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	Quantity    *int    `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=available borrowed lost damaged"`
	Sport       *string `json:"sport,omitempty"`
}
