// internal/app/features/organization/menu.go
package organization

import (
	"context"

	"github.com/dalemusser/placementhub/internal/app/features/shared"
	"github.com/dalemusser/placementhub/internal/app/policy/eligibility"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/app/system/timeouts"
	"github.com/dalemusser/placementhub/internal/domain/models"
)

var options = []string{
	"Create an internship",
	"Edit an internship",
	"Delete an internship",
	"Show or hide an internship",
	"My internships",
	"Review applications",
	"Browse internships",
	"Manage filters",
}

// Run shows the organization menu until logout.
func (h *Handler) Run(ctx context.Context, p *prompt.Prompter, u models.User) error {
	f := h.Postings.NewFilter(u)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := p.Menu("Company menu: "+u.Company, "Log out", options)
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			return nil
		case 1:
			err = h.create(ctx, p, u)
		case 2:
			err = h.edit(ctx, p, u)
		case 3:
			err = h.remove(ctx, p, u)
		case 4:
			err = h.toggleVisibility(ctx, p, u)
		case 5:
			if ps, ok := h.owned(ctx, p, u, nil); ok {
				shared.PostingTable(p, ps)
			}
		case 6:
			err = h.review(ctx, p, u)
		case 7:
			h.browse(ctx, p, u, f)
		case 8:
			err = h.Filters.Manage(ctx, p, f)
		}
		if err != nil {
			return err
		}
	}
}

// owned lists the actor's postings, keeping those keep accepts (all when
// keep is nil).
func (h *Handler) owned(ctx context.Context, p *prompt.Prompter, u models.User, keep func(models.Posting) bool) ([]models.Posting, bool) {
	opCtx, cancel := h.op(ctx, timeouts.Short(), "list own internships")
	defer cancel()
	ps, err := h.Postings.ListOwned(opCtx, u)
	if err != nil {
		h.ErrLog.Report(p, "list own internships", err)
		return nil, false
	}
	if keep == nil {
		return ps, true
	}
	out := ps[:0]
	for _, x := range ps {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out, true
}

// pickOwned asks for one of the actor's postings. ok is false when
// nothing was picked.
func (h *Handler) pickOwned(ctx context.Context, p *prompt.Prompter, u models.User, keep func(models.Posting) bool, none string) (models.Posting, bool, error) {
	ps, ok := h.owned(ctx, p, u, keep)
	if !ok {
		return models.Posting{}, false, nil
	}
	if len(ps) == 0 {
		p.Println(none)
		return models.Posting{}, false, nil
	}
	i, err := p.Pick("Internship", shared.PostingLabels(ps))
	if err != nil || i < 0 {
		return models.Posting{}, false, err
	}
	return ps[i], true, nil
}

func (h *Handler) browse(ctx context.Context, p *prompt.Prompter, u models.User, f *eligibility.Filter) {
	opCtx, cancel := h.op(ctx, timeouts.Short(), "browse internships")
	defer cancel()
	ps, err := h.Postings.ListFor(opCtx, u, f)
	if err != nil {
		h.ErrLog.Report(p, "browse internships", err)
		return
	}
	shared.PostingTable(p, ps)
}
