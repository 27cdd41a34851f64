package dto

import "github.com/J-CamiloG/AppKit-API/internal/domain"

// UserResponse is the public view of a user plus their bearer token. There is
// no password field on purpose; the hash never leaves the service.
type UserResponse struct {
	ID                string `json:"id"`
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	CountryOfOrigin   string `json:"countryOfOrigin"`
	PreferredLanguage string `json:"preferredLanguage"`
	TravelerType      string `json:"travelerType"`
	Token             string `json:"token"`
}

// AuthSuccessResponse is the success envelope shared by register and login.
type AuthSuccessResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// NewUserResponse maps a domain user and its token to the public shape.
func NewUserResponse(user *domain.User, token string) UserResponse {
	return UserResponse{
		ID:                user.ID,
		FullName:          user.FullName,
		Email:             user.Email,
		Phone:             user.Phone,
		CountryOfOrigin:   user.CountryOfOrigin,
		PreferredLanguage: string(user.PreferredLanguage),
		TravelerType:      string(user.TravelerType),
		Token:             token,
	}
}
