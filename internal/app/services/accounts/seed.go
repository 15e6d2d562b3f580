// internal/app/services/accounts/seed.go
package accounts

import (
	"context"
	"errors"
	"fmt"

	userstore "github.com/dalemusser/placementhub/internal/app/store/users"
	"github.com/dalemusser/placementhub/internal/app/system/csvutil"
	"github.com/dalemusser/placementhub/internal/domain/models"
)

// SeedResult reports what a seed pass did. Rows whose login id already
// exists are skipped, not overwritten.
type SeedResult struct {
	Created int
	Skipped []string // login ids
}

// SeedStudents creates one applicant per row. The initial password is the login id.
func (s *Service) SeedStudents(ctx context.Context, rows []csvutil.StudentRow) (SeedResult, error) {
	var res SeedResult
	for _, r := range rows {
		err := s.seed(ctx, models.User{
			LoginID: r.LoginID,
			Name:    r.Name,
			Email:   r.Email,
			Role:    models.RoleApplicant,
			Major:   r.Major,
			Year:    r.Year,
		}, &res)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// SeedStaff creates one staff account per row.
func (s *Service) SeedStaff(ctx context.Context, rows []csvutil.StaffRow) (SeedResult, error) {
	var res SeedResult
	for _, r := range rows {
		err := s.seed(ctx, models.User{
			LoginID:    r.LoginID,
			Name:       r.Name,
			Email:      r.Email,
			Role:       models.RoleStaff,
			Department: r.Department,
		}, &res)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// SeedReps creates one organization account per row, authorized or pending
// according to the row's status.
func (s *Service) SeedReps(ctx context.Context, rows []csvutil.RepRow) (SeedResult, error) {
	var res SeedResult
	for _, r := range rows {
		err := s.seed(ctx, models.User{
			LoginID:    r.LoginID,
			Name:       r.Name,
			Email:      r.Email,
			Role:       models.RoleOrganization,
			Company:    r.Company,
			Department: r.Department,
			Position:   r.Position,
			Authorized: r.Authorized,
		}, &res)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *Service) seed(ctx context.Context, u models.User, res *SeedResult) error {
	hash, err := s.hashPassword(u.LoginID)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", u.LoginID, err)
	}
	u.PasswordHash = hash
	if _, err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, userstore.ErrDuplicateUser) {
			res.Skipped = append(res.Skipped, u.LoginID)
			return nil
		}
		return fmt.Errorf("create %s: %w", u.LoginID, err)
	}
	res.Created++
	return nil
}
