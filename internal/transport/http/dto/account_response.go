package dto

import "github.com/baechuer/real-time-ressys/services/account-service/internal/domain"

type RegisterResponse struct {
	Token     string               `json:"token"`
	TokenType string               `json:"token_type"` // "Bearer"
	ExpiresIn int64                `json:"expires_in"` // seconds
	User      domain.PublicAccount `json:"user"`
}

type LoginResponse struct {
	Token      string `json:"token"`
	TokenType  string `json:"token_type"`
	ExpiresIn  int64  `json:"expires_in"`
	ProfilePic string `json:"profilePic"`
}

type DeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
