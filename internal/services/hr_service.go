package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yoockh/hireflow/internal/models"
	mongorepo "github.com/yoockh/hireflow/internal/repositories/mongo"
	"github.com/yoockh/hireflow/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// MsgInvalidCredentials is shared by every failed login so the response does
// not reveal whether the email exists.
const MsgInvalidCredentials = "Invalid credentials"

type HRService interface {
	SignUp(ctx context.Context, name, email, password string) (userID string, err error)
	Login(ctx context.Context, email, password string) (*models.HRProfile, error)
}

type hrService struct {
	accounts mongorepo.HRRepository
}

func NewHRService(accounts mongorepo.HRRepository) HRService {
	return &hrService{accounts: accounts}
}

func (s *hrService) SignUp(ctx context.Context, name, email, password string) (string, error) {
	const op = "HRService.SignUp"

	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "Name, email, and password are required", nil)
	}

	if len(password) > utils.MaxPasswordBytes {
		return "", utils.E(utils.CodeInvalidArgument, op, "Password must be at most 72 bytes", nil)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", utils.E(utils.CodeInvalidArgument, op, "Password must be at most 72 bytes", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	acc := &models.HRAccount{Name: name, Email: email, PasswordHash: hash}
	if err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return "", utils.E(utils.CodeConflict, op, "User with this email already exists", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to create account", err)
	}
	return acc.ID.Hex(), nil
}

func (s *hrService) Login(ctx context.Context, email, password string) (*models.HRProfile, error) {
	const op = "HRService.Login"

	if strings.TrimSpace(email) == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Email and password are required", nil)
	}

	acc, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, MsgInvalidCredentials, nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load account", err)
	}

	if err := utils.CheckPassword(acc.PasswordHash, password); err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, MsgInvalidCredentials, nil)
	}

	return &models.HRProfile{ID: acc.ID.Hex(), Name: acc.Name, Email: acc.Email}, nil
}
