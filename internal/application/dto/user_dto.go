package dto

import "time"

// JoinRequest registro de un empleado en un restaurante existente.
type JoinRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	PhoneNumber   string `json:"phone_number" validate:"omitempty,max=32"`
	ConsentToText bool   `json:"consent_to_text"`
	RestaurantID  int    `json:"restaurant_id" validate:"required,min=10000,max=99999"`
}

// CreateAdminRequest alta de un admin para un restaurante existente (super-admin).
type CreateAdminRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	PhoneNumber   string `json:"phone_number" validate:"omitempty,max=32"`
	ConsentToText bool   `json:"consent_to_text"`
}

// UpdateUserRequest parche de usuario; los campos nil no se tocan.
type UpdateUserRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Role        *string `json:"role" validate:"omitempty,oneof=employee admin"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=32"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending approved"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID            string    `json:"id"`
	RestaurantID  *int      `json:"restaurant_id,omitempty"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	ConsentToText bool      `json:"consent_to_text"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT, usuario y ruta del panel que corresponde a su rol.
type LoginResponse struct {
	Token     string       `json:"token"`
	Dashboard string       `json:"dashboard"`
	User      UserResponse `json:"user"`
}
