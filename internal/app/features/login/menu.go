// internal/app/features/login/menu.go
package login

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/placementhub/internal/app/services/accounts"
	"github.com/dalemusser/placementhub/internal/app/system/apperr"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

var options = []string{
	"Log in",
	"Register an organization account",
	"Change password",
}

// Run shows the start menu until the user quits or input ends.
func (h *Handler) Run(ctx context.Context, p *prompt.Prompter) error {
	p.Println("Welcome to PlacementHub.")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := p.Menu("PlacementHub", "Quit", options)
		if err != nil {
			return quitOnClose(err)
		}

		switch choice {
		case 0:
			p.Println("Goodbye.")
			return nil
		case 1:
			err = h.login(ctx, p)
		case 2:
			err = h.register(ctx, p)
		case 3:
			err = h.changePassword(ctx, p)
		}
		if err != nil {
			return quitOnClose(err)
		}
	}
}

// quitOnClose treats the end of input as a normal quit.
func quitOnClose(err error) error {
	if errors.Is(err, prompt.ErrClosed) {
		return nil
	}
	return err
}

func (h *Handler) login(ctx context.Context, p *prompt.Prompter) error {
	loginID, err := p.Required("Login ID")
	if err != nil {
		return err
	}
	password, err := p.Line("Password")
	if err != nil {
		return err
	}

	if h.Attempts != nil && h.Attempts.Blocked(loginID) {
		wait := h.Attempts.RetryAfter(loginID).Round(time.Second)
		err := apperr.Unauthorized("too many failed attempts, try again in %s", wait)
		h.AuditLog.LoginFailed(ctx, loginID, err)
		h.ErrLog.Report(p, "log in", err)
		return nil
	}

	opCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "authenticate")
	u, err := h.Accounts.Authenticate(opCtx, loginID, password)
	cancel()
	if err != nil {
		if h.Attempts != nil && apperr.KindOf(err) == apperr.ErrUnauthorized {
			h.Attempts.Allow(loginID)
		}
		h.AuditLog.LoginFailed(ctx, loginID, err)
		h.ErrLog.Report(p, "log in", err)
		return nil
	}
	if h.Attempts != nil {
		h.Attempts.Reset(loginID)
	}
	h.AuditLog.LoginSuccess(ctx, u)
	p.Printf("  Welcome, %s.\n", u.Name)

	dash, ok := h.Dashboards[u.Role]
	if !ok {
		h.Log.Warn("no dashboard for role", zap.String("role", string(u.Role)))
		p.Println("  There is no menu for your account type.")
		return nil
	}
	if err := dash.Run(ctx, p, u); err != nil {
		return err
	}
	p.Printf("  Logged out %s.\n", u.LoginID)
	return nil
}

func (h *Handler) register(ctx context.Context, p *prompt.Prompter) error {
	var r accounts.Registration
	var err error
	if r.Email, err = p.Required("Email (your login ID)"); err != nil {
		return err
	}
	if r.Name, err = p.Required("Your name"); err != nil {
		return err
	}
	if r.Password, err = p.Required("Password"); err != nil {
		return err
	}
	if r.Company, err = p.Required("Company name"); err != nil {
		return err
	}
	if r.Department, err = p.Line("Department"); err != nil {
		return err
	}
	if r.Position, err = p.Line("Position"); err != nil {
		return err
	}

	opCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "register organization")
	u, err := h.Accounts.RegisterOrganization(opCtx, r)
	cancel()
	h.AuditLog.OrganizationRegistered(ctx, u, r.Email, err)
	if err != nil {
		h.ErrLog.Report(p, "register organization", err)
		return nil
	}
	p.Println("  Registration received. The career centre must approve your account before you can log in.")
	return nil
}

func (h *Handler) changePassword(ctx context.Context, p *prompt.Prompter) error {
	loginID, err := p.Required("Login ID")
	if err != nil {
		return err
	}
	oldPassword, err := p.Line("Current password")
	if err != nil {
		return err
	}
	newPassword, err := p.Line("New password")
	if err != nil {
		return err
	}
	confirm, err := p.Line("Confirm new password")
	if err != nil {
		return err
	}
	if newPassword != confirm {
		p.Println("  The new passwords do not match.")
		return nil
	}

	opCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "change password")
	err = h.Accounts.ChangePassword(opCtx, loginID, oldPassword, newPassword)
	cancel()
	h.AuditLog.PasswordChanged(ctx, loginID, err)
	if err != nil {
		h.ErrLog.Report(p, "change password", err)
		return nil
	}
	p.Println("  Password changed.")
	return nil
}
