package dto

import "time"

// CreateRestaurantRequest entrada para crear un restaurante.
type CreateRestaurantRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Location    string `json:"location" validate:"omitempty,max=300"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
}

// UpdateRestaurantRequest parche de restaurante; los campos nil no se tocan.
type UpdateRestaurantRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Location    *string `json:"location" validate:"omitempty,max=300"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=32"`
}

// RegisterRestaurantRequest alta pública de un restaurante junto con su admin.
type RegisterRestaurantRequest struct {
	RestaurantName  string `json:"restaurant_name" validate:"required,min=1,max=200"`
	Location        string `json:"location" validate:"omitempty,max=300"`
	RestaurantPhone string `json:"restaurant_phone" validate:"omitempty,max=32"`
	AdminName       string `json:"admin_name" validate:"required,min=1,max=200"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,max=32"`
	ConsentToText   bool   `json:"consent_to_text"`
}

// RestaurantResponse salida de un restaurante.
type RestaurantResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RestaurantWithAdminResponse restaurante y su admin (registro y aprobación).
// Admin es nil cuando el restaurante no tiene admin.
type RestaurantWithAdminResponse struct {
	Restaurant RestaurantResponse `json:"restaurant"`
	Admin      *UserResponse      `json:"admin,omitempty"`
}
