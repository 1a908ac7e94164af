package auth

import (
	"errors"
	"time"

	"github.com/jkalinowski/ExpenseTracker/internal/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInternalError      = errors.New("internal server error")
)

type Service interface {
	Login(email, password string) (*user.User, string, string, error)
	RefreshAccessToken(userID string) (string, error)
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// Login verifies credentials and issues a fresh access/refresh token
// pair for the user.
func (s *service) Login(email, password string) (*user.User, string, string, error) {
	u, err := s.userService.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", ErrInternalError
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessJWT(u.ID, defaultJWTDuration)
	if err != nil {
		return nil, "", "", ErrInternalError
	}
	refreshToken, err := s.jwtManager.GenerateRefreshJWT(u.ID, defaultJWTRefreshDuration)
	if err != nil {
		return nil, "", "", ErrInternalError
	}

	return u, accessToken, refreshToken, nil
}

func (s *service) RefreshAccessToken(userID string) (string, error) {
	exists, err := s.userService.Exists(userID)
	if err != nil {
		return "", ErrInternalError
	}
	if !exists {
		return "", ErrInvalidCredentials
	}
	return s.jwtManager.GenerateAccessJWT(userID, defaultJWTDuration)
}

// RefreshTokenMaxAge is the cookie lifetime matching the refresh
// token expiry.
func RefreshTokenMaxAge() int {
	return int(defaultJWTRefreshDuration / time.Second)
}
