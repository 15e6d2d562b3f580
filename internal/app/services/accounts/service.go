// internal/app/services/accounts/service.go
package accounts

// Terminology: User Identifiers
//   - UserID / userID: the ObjectID that uniquely identifies a user record
//   - LoginID / loginID: the human-readable string users type to log in

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userstore "github.com/dalemusser/placementhub/internal/app/store/users"
	"github.com/dalemusser/placementhub/internal/app/system/apperr"
	"github.com/dalemusser/placementhub/internal/app/system/inputval"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used when none is configured.
const DefaultCost = 12

// Service owns credentials and the organization account approval workflow.
type Service struct {
	users *userstore.Store
	cost  int
}

// New returns a Service hashing with the given bcrypt cost (DefaultCost when 0).
func New(users *userstore.Store, cost int) *Service {
	if cost == 0 {
		cost = DefaultCost
	}
	return &Service{users: users, cost: cost}
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verify(u models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Authenticate returns the account for loginID when password matches.
// Organization accounts still awaiting staff authorization are refused.
func (s *Service) Authenticate(ctx context.Context, loginID, password string) (models.User, error) {
	if strings.TrimSpace(loginID) == "" || strings.TrimSpace(password) == "" {
		return models.User{}, apperr.Unauthorized("missing credentials, please enter both ID and password")
	}
	u, err := s.users.GetByLoginID(ctx, loginID)
	if errors.Is(err, userstore.ErrNotFound) {
		return models.User{}, apperr.Unauthorized("invalid ID, please check your user ID and try again")
	}
	if err != nil {
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if !verify(u, password) {
		return models.User{}, apperr.Unauthorized("incorrect password, please try again")
	}
	if u.IsOrganization() && !u.Authorized {
		return models.User{}, apperr.Unauthorized("your account is pending approval from the career centre")
	}
	return u, nil
}

// ChangePassword replaces the password of loginID after verifying the old one.
func (s *Service) ChangePassword(ctx context.Context, loginID, oldPassword, newPassword string) error {
	if strings.TrimSpace(loginID) == "" || strings.TrimSpace(oldPassword) == "" || strings.TrimSpace(newPassword) == "" {
		return apperr.Validation("please provide current and new passwords")
	}
	u, err := s.users.GetByLoginID(ctx, loginID)
	if errors.Is(err, userstore.ErrNotFound) {
		return apperr.NotFound("user not found")
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if !verify(u, oldPassword) {
		return apperr.Unauthorized("current password is incorrect")
	}
	if newPassword == oldPassword {
		return apperr.Validation("new password cannot be the same as current password")
	}
	if len(newPassword) > 72 {
		return apperr.Validation("password must be at most 72 characters")
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	if _, err := s.users.Update(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Registration carries a self-service organization sign-up.
type Registration struct {
	Email      string `validate:"required,emailaddr" label:"Email"`
	Name       string `validate:"required,max=100" label:"Name"`
	Password   string `validate:"required,max=72" label:"Password"`
	Company    string `validate:"required,max=100" label:"Company name"`
	Department string `validate:"max=100" label:"Department"`
	Position   string `validate:"max=100" label:"Position"`
}

// RegisterOrganization creates an organization account keyed by its email.
// The account cannot log in until staff authorize it.
func (s *Service) RegisterOrganization(ctx context.Context, r Registration) (models.User, error) {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = inputval.CleanText(r.Name)
	r.Company = inputval.CleanText(r.Company)
	r.Department = inputval.CleanText(r.Department)
	r.Position = inputval.CleanText(r.Position)
	if res := inputval.Validate(r); res.HasErrors() {
		return models.User{}, apperr.Validation("%s", res.All())
	}

	hash, err := s.hashPassword(r.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.Create(ctx, models.User{
		LoginID:      r.Email,
		Name:         r.Name,
		Email:        r.Email,
		Role:         models.RoleOrganization,
		PasswordHash: hash,
		Company:      r.Company,
		Department:   r.Department,
		Position:     r.Position,
		Authorized:   false,
	})
	if errors.Is(err, userstore.ErrDuplicateUser) {
		return models.User{}, apperr.Validation("email already registered")
	}
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *Service) pendingOrganization(ctx context.Context, actor models.User, id primitive.ObjectID) (models.User, error) {
	if !actor.IsStaff() {
		return models.User{}, apperr.Unauthorized("only career centre staff can review company representatives")
	}
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		return models.User{}, apperr.NotFound("company representative not found")
	}
	if err != nil {
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if !u.IsOrganization() {
		return models.User{}, apperr.InvalidState("user is not a company representative")
	}
	if u.Authorized {
		return models.User{}, apperr.InvalidState("company representative is already authorized")
	}
	return u, nil
}

// AuthorizeOrganization lets a pending organization account log in.
func (s *Service) AuthorizeOrganization(ctx context.Context, actor models.User, id primitive.ObjectID) (models.User, error) {
	u, err := s.pendingOrganization(ctx, actor, id)
	if err != nil {
		return models.User{}, err
	}
	u.Authorized = true
	u, err = s.users.Update(ctx, u)
	if err != nil {
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// RejectOrganization deletes a pending organization account.
func (s *Service) RejectOrganization(ctx context.Context, actor models.User, id primitive.ObjectID) error {
	if _, err := s.pendingOrganization(ctx, actor, id); err != nil {
		return err
	}
	if _, err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// Get returns the account with id.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		return models.User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

// ListPendingOrganizations returns organization accounts awaiting authorization.
func (s *Service) ListPendingOrganizations(ctx context.Context, actor models.User) ([]models.User, error) {
	if !actor.IsStaff() {
		return nil, apperr.Unauthorized("only career centre staff can review company representatives")
	}
	return s.users.Find(ctx, func(u models.User) bool {
		return u.IsOrganization() && !u.Authorized
	})
}
