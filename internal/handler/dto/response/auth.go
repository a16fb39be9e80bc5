package response

import (
	"bundlemart-api/internal/usecase"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	PhoneNumber string    `json:"phoneNumber"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	WalletGHS   float64   `json:"walletGhs"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func FromAuthorizedUser(u *usecase.AuthorizedUser) UserResponse {
	return UserResponse{
		ID:          u.ID,
		PhoneNumber: u.PhoneNumber,
		Name:        u.Name,
		Role:        u.Role.String(),
		WalletGHS:   u.WalletGHS,
	}
}
