package dto

import "github.com/hongminglow/moentix-be/internal/models"

type RegisterRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  models.User `json:"usuario"`
	Token string      `json:"token"`
}

type UpdateProfileRequest struct {
	Name  string `json:"nombre"`
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	Current string `json:"actual"`
	Next    string `json:"nueva"`
}
