package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Horarios-api/internal/domain"
)

// Role rol de un usuario dentro de la jerarquía employee < admin < super-admin.
type Role string

// Roles válidos para User.
const (
	RoleEmployee   Role = "employee"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// ParseRole valida un rol recibido desde fuera del núcleo.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleEmployee, RoleAdmin, RoleSuperAdmin:
		return r, nil
	}
	return "", fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, s)
}

// Status estado de aprobación de un User o Restaurant. Solo avanza pending -> approved.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// ParseStatus valida un estado recibido desde fuera del núcleo.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved:
		return st, nil
	}
	return "", fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, s)
}

// CanTransition indica si el paso from -> to es válido (se permite quedarse igual).
func (from Status) CanTransition(to Status) bool {
	return from == to || (from == StatusPending && to == StatusApproved)
}

// User representa un usuario del sistema. RestaurantID es nil solo para super-admin.
type User struct {
	ID            string
	RestaurantID  *int
	Name          string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	PhoneNumber   string
	ConsentToText bool
	Role          Role
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelongsTo indica si el usuario pertenece al restaurante dado.
func (u *User) BelongsTo(restaurantID int) bool {
	return u.RestaurantID != nil && *u.RestaurantID == restaurantID
}

// Actor es el usuario autenticado que ejecuta una operación (resuelto fuera del núcleo).
type Actor struct {
	ID           string
	Role         Role
	Status       Status
	RestaurantID *int
}

// ActorOf construye el actor a partir del usuario persistido.
func ActorOf(u *User) *Actor {
	if u == nil {
		return nil
	}
	return &Actor{ID: u.ID, Role: u.Role, Status: u.Status, RestaurantID: u.RestaurantID}
}

// NormalizeEmail recorta y pasa a minúsculas el email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
