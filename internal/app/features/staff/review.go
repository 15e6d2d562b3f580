// internal/app/features/staff/review.go
package staff

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"
	"fmt"

	"github.com/dalemusser/placementhub/internal/app/features/shared"
	"github.com/dalemusser/placementhub/internal/app/store/audit"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/app/system/timeouts"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/google/uuid"
)

func (h *Handler) reviewOrganizations(ctx context.Context, p *prompt.Prompter, u models.User) error {
	opCtx, cancel := h.op(ctx, timeouts.Short(), "list pending accounts")
	pending, err := h.Accounts.ListPendingOrganizations(opCtx, u)
	cancel()
	if err != nil {
		h.ErrLog.Report(p, "list pending accounts", err)
		return nil
	}
	labels := make([]string, len(pending))
	for i, o := range pending {
		labels[i] = fmt.Sprintf("%s  %s, %s at %s (%s)", o.LoginID, o.Name, o.Position, o.Company, o.Department)
	}
	i, err := p.Pick("Account", labels)
	if err != nil || i < 0 {
		return err
	}
	target := pending[i]

	choice, err := decide(p, "Account "+target.LoginID)
	if err != nil || choice == 0 {
		return err
	}
	authorize := choice == 1

	opCtx, cancel = h.op(ctx, timeouts.Medium(), "review account")
	if authorize {
		_, err = h.Accounts.AuthorizeOrganization(opCtx, u, target.ID)
	} else {
		err = h.Accounts.RejectOrganization(opCtx, u, target.ID)
	}
	cancel()
	h.AuditLog.OrganizationReviewed(ctx, u, target.ID, authorize, err)
	if err != nil {
		h.ErrLog.Report(p, "review account", err)
		return nil
	}
	if authorize {
		p.Printf("  %s can now log in.\n", target.LoginID)
	} else {
		p.Printf("  %s was rejected and removed.\n", target.LoginID)
	}
	return nil
}

func (h *Handler) reviewPostings(ctx context.Context, p *prompt.Prompter, u models.User) error {
	opCtx, cancel := h.op(ctx, timeouts.Short(), "list pending internships")
	pending, err := h.Postings.ListPending(opCtx, u)
	cancel()
	if err != nil {
		h.ErrLog.Report(p, "list pending internships", err)
		return nil
	}
	i, err := p.Pick("Internship", shared.PostingLabels(pending))
	if err != nil || i < 0 {
		return err
	}
	target := pending[i]
	shared.PostingDetail(p, target)

	choice, err := decide(p, "Internship "+target.Title)
	if err != nil || choice == 0 {
		return err
	}

	name, event := "approve internship", audit.EventPostingApproved
	if choice == 2 {
		name, event = "reject internship", audit.EventPostingRejected
	}
	opCtx, cancel = h.op(ctx, timeouts.Medium(), name)
	var updated models.Posting
	if choice == 1 {
		updated, err = h.Postings.Approve(opCtx, u, target.ID)
	} else {
		updated, err = h.Postings.Reject(opCtx, u, target.ID)
	}
	cancel()
	h.AuditLog.Posting(ctx, event, u, target.ID, err)
	if err != nil {
		h.ErrLog.Report(p, name, err)
		return nil
	}
	p.Printf("  %q is now %s.\n", updated.Title, updated.Status)
	return nil
}

func (h *Handler) reviewWithdrawals(ctx context.Context, p *prompt.Prompter, u models.User) error {
	opCtx, cancel := h.op(ctx, timeouts.Short(), "list withdrawal requests")
	pending, err := h.Candidacies.ListPendingWithdrawals(opCtx, u)
	var titles map[uuid.UUID]string
	if err == nil {
		titles, err = h.Postings.Titles(opCtx, shared.PostingIDs(pending))
	}
	cancel()
	if err != nil {
		h.ErrLog.Report(p, "list withdrawal requests", err)
		return nil
	}
	i, err := p.Pick("Request", shared.CandidacyLabels(pending, titles))
	if err != nil || i < 0 {
		return err
	}
	target := pending[i]

	choice, err := decide(p, "Withdrawal of "+target.ID)
	if err != nil || choice == 0 {
		return err
	}

	name, event := "approve withdrawal", audit.EventWithdrawalApproved
	if choice == 2 {
		name, event = "reject withdrawal", audit.EventWithdrawalRejected
	}
	opCtx, cancel = h.op(ctx, timeouts.Medium(), name)
	if choice == 1 {
		_, err = h.Candidacies.ApproveWithdrawal(opCtx, u, target.ID)
	} else {
		_, err = h.Candidacies.RejectWithdrawal(opCtx, u, target.ID)
	}
	cancel()
	h.AuditLog.Candidacy(ctx, event, u, target.ID, target.PostingID, err)
	if err != nil {
		h.ErrLog.Report(p, name, err)
		return nil
	}
	if choice == 1 {
		p.Printf("  %s withdrawn.\n", target.ID)
	} else {
		p.Printf("  Withdrawal of %s refused.\n", target.ID)
	}
	return nil
}
