package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is one of the four fixed staff roles.
type Role string

const (
	RoleNursingTech Role = "nursing-tech"
	RoleNurse       Role = "nurse"
	RoleDoctor      Role = "doctor"
	RoleAdmin       Role = "admin"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	Role         Role      `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=3"`
	Role     Role   `json:"role" binding:"required,oneof=nursing-tech nurse doctor admin"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

type UpdateUserRoleRequest struct {
	Role Role `json:"role" binding:"required,oneof=nursing-tech nurse doctor admin"`
}
