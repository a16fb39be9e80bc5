package usecase

import (
	"context"

	"bundlemart-api/internal/domain/user"
	"bundlemart-api/internal/handler/dto/request"
	"bundlemart-api/internal/infra"
	"bundlemart-api/internal/pkg/errs"
	"bundlemart-api/internal/pkg/jwt"
	"bundlemart-api/internal/pkg/password"
	"bundlemart-api/internal/pkg/phone"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errs.New("user not found")
	ErrInvalidCredentials = errs.New("invalid phone number or password")
	ErrUserInactive       = errs.New("user account is inactive")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrTokenValidation    = errs.New("token validation failed")
)

// AuthorizedUser is the authenticated account as handlers see it.
type AuthorizedUser struct {
	ID          uuid.UUID
	PhoneNumber string
	Name        string
	Role        user.Role
	WalletGHS   float64
}

type AuthUserRepository interface {
	FindByPhone(ctx context.Context, phoneNumber string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	WalletBalance(ctx context.Context, userID uuid.UUID) (int64, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, req request.LoginRequest) (string, *AuthorizedUser, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUser, error)
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type authUseCaseImpl struct {
	userRepo   AuthUserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(userRepo AuthUserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, req request.LoginRequest) (string, *AuthorizedUser, error) {
	normalized, err := phone.Normalize(req.PhoneNumber)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	u, err := a.userRepo.FindByPhone(ctx, normalized)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !u.IsActive() {
		return "", nil, ErrUserInactive
	}

	if err := password.ComparePassword(u.PasswordHash(), req.Password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return "", nil, errs.Mark(err, ErrTokenGeneration)
	}

	view, err := a.buildAuthorizedUser(ctx, u)
	if err != nil {
		return "", nil, err
	}
	return token, view, nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUser, error) {
	u, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	return a.buildAuthorizedUser(ctx, u)
}

func (a *authUseCaseImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := a.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrTokenValidation)
	}

	role := user.Role(claims.Role)
	if !role.IsValid() {
		return uuid.Nil, "", ErrTokenValidation
	}

	return claims.UserID, role, nil
}

func (a *authUseCaseImpl) buildAuthorizedUser(ctx context.Context, u *user.User) (*AuthorizedUser, error) {
	pesewas, err := a.userRepo.WalletBalance(ctx, u.ID())
	if err != nil {
		return nil, err
	}

	return &AuthorizedUser{
		ID:          u.ID(),
		PhoneNumber: u.PhoneNumber(),
		Name:        u.Name(),
		Role:        u.Role(),
		WalletGHS:   float64(pesewas) / 100.0,
	}, nil
}
