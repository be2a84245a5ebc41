package products

// CreateProductRequest creates a catalogue entry.
type CreateProductRequest struct {
	Code          string  `json:"code" validate:"required,max=50"`
	Name          string  `json:"name" validate:"required,max=200"`
	Model         *string `json:"model,omitempty" validate:"omitempty,max=100"`
	Specification *string `json:"specification,omitempty" validate:"omitempty,max=500"`
	Certification *string `json:"certification,omitempty" validate:"omitempty,max=200"`
	UnitPrice     float64 `json:"unit_price" validate:"gte=0"`
}

// UpdateProductRequest edits a catalogue entry.
type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Model         *string  `json:"model,omitempty" validate:"omitempty,max=100"`
	Specification *string  `json:"specification,omitempty" validate:"omitempty,max=500"`
	Certification *string  `json:"certification,omitempty" validate:"omitempty,max=200"`
	UnitPrice     *float64 `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
	IsActive      *bool    `json:"is_active,omitempty"`
}
