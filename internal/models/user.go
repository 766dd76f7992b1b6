package models

import "time"

const (
	RoleCustomer = 0
	RoleAdmin    = 1
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"` // Never serialize in JSON
	Name         string    `json:"name" db:"name"`
	Phone        string    `json:"phone" db:"phone"`
	Address      string    `json:"address" db:"address"`
	Avatar       string    `json:"avatar" db:"avatar"`
	Status       int       `json:"status" db:"status"`
	Role         int       `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     string  `json:"name" validate:"required"`
	Phone    string  `json:"phone" validate:"required,phone10"`
	Address  *string `json:"address" validate:"required"`
	Status   int     `json:"status" validate:"oneof=0 1"`
	Role     int     `json:"role" validate:"oneof=0 1"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}
