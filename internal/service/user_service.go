package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
	"finance-tracker/internal/validate"
)

const (
	msgPasswordTooShort = "Password Must Have At Least 8 Characters"
	msgPasswordClasses  = "Password Must Have At At Least 1 Alphabetical, Numerical And Special Character"
	msgPasswordTooLong  = "Password Must Have At Most 72 Bytes"
	msgPasswordMismatch = "Passwords do not match"
)

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, username, password, confirmation string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmation string) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	store        repository.Store
	startingCash decimal.Decimal
	hashCost     int
}

func NewUserService(store repository.Store, startingCash decimal.Decimal) UserService {
	return &userService{
		store:        store,
		startingCash: startingCash,
		hashCost:     bcrypt.DefaultCost,
	}
}

func (s *userService) Register(ctx context.Context, username, password, confirmation string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || confirmation == "" {
		return nil, inputError(ErrMissingField, "One or more fields left blank")
	}
	if password != confirmation {
		return nil, inputError(ErrPasswordMismatch, msgPasswordMismatch)
	}
	if err := checkPasswordPolicy(password); err != nil {
		return nil, err
	}

	if _, err := s.store.Users().GetByUsername(ctx, username); err == nil {
		return nil, inputError(ErrDuplicateUsername, "Username already taken")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Cash:         s.startingCash,
		Total:        s.startingCash,
	}
	if _, err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, inputError(ErrDuplicateUsername, "Username already taken")
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, inputError(ErrMissingField, "must provide username")
	}
	if password == "" {
		return nil, inputError(ErrMissingField, "must provide password")
	}

	user, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}

	return sanitizeUser(user), nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmation string) error {
	if oldPassword == "" || newPassword == "" || confirmation == "" {
		return inputError(ErrMissingField, "Please Fill Up All Fields")
	}

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return inputError(ErrAuthenticationFailed, "Incorrect Password")
	}
	if newPassword != confirmation {
		return inputError(ErrPasswordMismatch, msgPasswordMismatch)
	}
	if err := checkPasswordPolicy(newPassword); err != nil {
		return err
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	return s.store.Users().UpdatePasswordHash(ctx, userID, hash)
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", inputError(ErrPasswordPolicyViolation, msgPasswordTooLong)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func checkPasswordPolicy(password string) error {
	if !validate.LongEnough(password) {
		return inputError(ErrPasswordPolicyViolation, msgPasswordTooShort)
	}
	if !validate.PasswordMeetsRequirements(password) {
		return inputError(ErrPasswordPolicyViolation, msgPasswordClasses)
	}
	return nil
}

func invalidCredentials() error {
	return &InputError{
		Kind:    ErrAuthenticationFailed,
		Message: "invalid username and/or password",
		Status:  http.StatusForbidden,
	}
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Cash:      user.Cash,
		Total:     user.Total,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
