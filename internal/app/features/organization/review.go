// internal/app/features/organization/review.go
package organization

import (
	"context"
	"fmt"

	"github.com/dalemusser/placementhub/internal/app/store/audit"
	"github.com/dalemusser/placementhub/internal/app/system/apperr"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/app/system/timeouts"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/google/uuid"
)

var decisions = []string{"Approve", "Reject"}

// review walks the pending applications of one posting until the user
// backs out or none are left.
func (h *Handler) review(ctx context.Context, p *prompt.Prompter, u models.User) error {
	target, ok, err := h.pickOwned(ctx, p, u, nil, "  You have no internships.")
	if err != nil || !ok {
		return err
	}

	for {
		pending, labels, ok := h.pending(ctx, p, u, target.ID)
		if !ok {
			return nil
		}
		if len(pending) == 0 {
			p.Printf("  No pending applications for %q.\n", target.Title)
			return nil
		}
		i, err := p.Pick("Application", labels)
		if err != nil || i < 0 {
			return err
		}
		c := pending[i]

		choice, err := p.Menu("Application "+c.ID, "Back", decisions)
		if err != nil {
			return err
		}
		if choice == 0 {
			continue
		}
		h.decide(ctx, p, u, c, choice == 1)
	}
}

// pending loads the posting's PENDING candidacies with a label naming each
// applicant.
func (h *Handler) pending(ctx context.Context, p *prompt.Prompter, u models.User, id uuid.UUID) ([]models.Candidacy, []string, bool) {
	opCtx, cancel := h.op(ctx, timeouts.Short(), "list applications")
	defer cancel()
	target, err := h.Postings.Get(opCtx, u, id)
	if err != nil {
		h.ErrLog.Report(p, "list applications", err)
		return nil, nil, false
	}
	cs, err := h.Candidacies.ListByPosting(opCtx, u, id)
	if err != nil {
		h.ErrLog.Report(p, "list applications", err)
		return nil, nil, false
	}

	var pending []models.Candidacy
	var labels []string
	for _, c := range cs {
		if c.Status != models.CandidacyPending || c.Withdrawn {
			continue
		}
		who, err := h.Accounts.Get(opCtx, c.ApplicantID)
		switch {
		case err == nil:
			labels = append(labels, fmt.Sprintf("%s  %s (%s, year %d, %s)", c.ID, who.Name, who.LoginID, who.Year, who.Major))
		case apperr.KindOf(err) == apperr.ErrNotFound:
			labels = append(labels, c.ID+"  (unknown applicant)")
		default:
			h.ErrLog.Report(p, "list applications", err)
			return nil, nil, false
		}
		pending = append(pending, c)
	}
	p.Printf("  %q: %d of %d places filled.\n", target.Title, target.Filled, target.Capacity)
	return pending, labels, true
}

func (h *Handler) decide(ctx context.Context, p *prompt.Prompter, u models.User, c models.Candidacy, approve bool) {
	name, event := "reject application", audit.EventCandidacyRejected
	if approve {
		name, event = "approve application", audit.EventCandidacyApproved
	}

	opCtx, cancel := h.op(ctx, timeouts.Medium(), name)
	var err error
	if approve {
		_, err = h.Candidacies.Approve(opCtx, u, c.ID)
	} else {
		_, err = h.Candidacies.Reject(opCtx, u, c.ID)
	}
	cancel()
	h.AuditLog.Candidacy(ctx, event, u, c.ID, c.PostingID, err)
	if err != nil {
		h.ErrLog.Report(p, name, err)
		return
	}
	if approve {
		p.Printf("  %s approved.\n", c.ID)
	} else {
		p.Printf("  %s rejected.\n", c.ID)
	}
}
