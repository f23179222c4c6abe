package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"bookly/internal/auth"
	"bookly/internal/db"
	apperrors "bookly/internal/errors"
	"bookly/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(name, email, phone, password, role string) (*db.User, error)
	Login(email, password string) (string, error)
	Profile(userID int) (*db.User, error)
}

type authService struct {
	repo      repository.UserRepository
	jwtSecret string
}

func NewAuthService(repo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{repo: repo, jwtSecret: jwtSecret}
}

func (s *authService) Register(name, email, phone, password, role string) (*db.User, error) {
	if len(name) < 2 {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "name must be at least 2 characters")
	}
	if email == "" {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if len(password) < 6 {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "password must be at least 6 characters")
	}
	switch role {
	case "":
		role = auth.RoleCustomer
	case auth.RoleCustomer, auth.RoleProvider:
	default:
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid role %q", role))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(email, password string) (string, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	if s.jwtSecret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) Profile(userID int) (*db.User, error) {
	return s.repo.GetByID(userID)
}
