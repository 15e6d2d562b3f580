// internal/app/features/applicant/menu.go
package applicant

import (
	"context"

	"github.com/dalemusser/placementhub/internal/app/features/shared"
	"github.com/dalemusser/placementhub/internal/app/policy/eligibility"
	"github.com/dalemusser/placementhub/internal/app/store/audit"
	"github.com/dalemusser/placementhub/internal/app/system/inputval"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/app/system/timeouts"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/google/uuid"
)

var options = []string{
	"List eligible internships",
	"Apply for an internship",
	"My applications",
	"Accept an offer",
	"Request withdrawal",
	"Delete a pending application",
	"Manage filters",
}

// Run shows the applicant menu until logout. The filter lives for the
// session and starts from the applicant's defaults.
func (h *Handler) Run(ctx context.Context, p *prompt.Prompter, u models.User) error {
	f := h.Postings.NewFilter(u)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := p.Menu("Student menu: "+u.Name, "Log out", options)
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			return nil
		case 1:
			h.listEligible(ctx, p, u, f)
		case 2:
			err = h.apply(ctx, p, u, f)
		case 3:
			h.listMine(ctx, p, u)
		case 4:
			err = h.act(ctx, p, u, accept)
		case 5:
			err = h.act(ctx, p, u, withdraw)
		case 6:
			err = h.act(ctx, p, u, remove)
		case 7:
			err = h.Filters.Manage(ctx, p, f)
		}
		if err != nil {
			return err
		}
	}
}

func (h *Handler) eligible(ctx context.Context, p *prompt.Prompter, u models.User, f *eligibility.Filter) ([]models.Posting, bool) {
	opCtx, cancel := h.op(ctx, timeouts.Short(), "list eligible internships")
	defer cancel()
	ps, err := h.Postings.ListFor(opCtx, u, f)
	if err != nil {
		h.ErrLog.Report(p, "list eligible internships", err)
		return nil, false
	}
	return ps, true
}

func (h *Handler) listEligible(ctx context.Context, p *prompt.Prompter, u models.User, f *eligibility.Filter) {
	if ps, ok := h.eligible(ctx, p, u, f); ok {
		shared.PostingTable(p, ps)
	}
}

func (h *Handler) apply(ctx context.Context, p *prompt.Prompter, u models.User, f *eligibility.Filter) error {
	ps, ok := h.eligible(ctx, p, u, f)
	if !ok {
		return nil
	}
	i, err := p.Pick("Internship", shared.PostingLabels(ps))
	if err != nil || i < 0 {
		return err
	}
	target := ps[i]
	shared.PostingDetail(p, target)
	yes, err := prompt.Ask(p, "Apply for this internship? (y/n)", inputval.ParseYesNo)
	if err != nil || !yes {
		return err
	}

	opCtx, cancel := h.op(ctx, timeouts.Medium(), "submit application")
	c, err := h.Candidacies.Submit(opCtx, u, target.ID)
	cancel()
	h.AuditLog.Candidacy(ctx, audit.EventCandidacySubmitted, u, c.ID, target.ID, err)
	if err != nil {
		h.ErrLog.Report(p, "submit application", err)
		return nil
	}
	p.Printf("  Application %s submitted.\n", c.ID)
	return nil
}

// mine loads the applicant's candidacies with the titles of their postings.
func (h *Handler) mine(ctx context.Context, p *prompt.Prompter, u models.User) ([]models.Candidacy, map[uuid.UUID]string, bool) {
	opCtx, cancel := h.op(ctx, timeouts.Short(), "list applications")
	defer cancel()
	cs, err := h.Candidacies.ListByApplicant(opCtx, u, u.ID)
	if err != nil {
		h.ErrLog.Report(p, "list applications", err)
		return nil, nil, false
	}
	titles, err := h.Postings.Titles(opCtx, shared.PostingIDs(cs))
	if err != nil {
		h.ErrLog.Report(p, "list applications", err)
		return nil, nil, false
	}
	return cs, titles, true
}

func (h *Handler) listMine(ctx context.Context, p *prompt.Prompter, u models.User) {
	cs, titles, ok := h.mine(ctx, p, u)
	if !ok {
		return
	}
	if len(cs) == 0 {
		p.Println("  You have not applied for any internships.")
		return
	}
	for _, label := range shared.CandidacyLabels(cs, titles) {
		p.Printf("  %s\n", label)
	}
}
