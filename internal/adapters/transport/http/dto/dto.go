package dto

type RegisterDTO struct {
	Name         string `json:"name"`
	Email        string `json:"email"        validate:"required,email"`
	Password     string `json:"password"     validate:"required,min=8"`
	ConfPassword string `json:"confPassword" validate:"required"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateAccountDTO carries a partial update; empty fields are left as-is.
type UpdateAccountDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
}
