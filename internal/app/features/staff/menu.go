// internal/app/features/staff/menu.go
package staff

import (
	"context"

	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/domain/models"
)

var options = []string{
	"Review company accounts",
	"Review internships",
	"Review withdrawal requests",
	"Internship report",
	"Report filters",
	"Recent audit events",
}

var decisions = []string{"Approve", "Reject"}

// Run shows the staff menu until logout. The report filter starts empty
// since staff have no mandatory predicates.
func (h *Handler) Run(ctx context.Context, p *prompt.Prompter, u models.User) error {
	f := h.Postings.NewFilter(u)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := p.Menu("Career centre menu: "+u.Name, "Log out", options)
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			return nil
		case 1:
			err = h.reviewOrganizations(ctx, p, u)
		case 2:
			err = h.reviewPostings(ctx, p, u)
		case 3:
			err = h.reviewWithdrawals(ctx, p, u)
		case 4:
			h.report(ctx, p, u, f)
		case 5:
			err = h.Filters.Manage(ctx, p, f)
		case 6:
			h.recentEvents(ctx, p)
		}
		if err != nil {
			return err
		}
	}
}

// decide asks approve/reject for one item. It returns 0 for back, 1 for
// approve and 2 for reject.
func decide(p *prompt.Prompter, title string) (int, error) {
	return p.Menu(title, "Back", decisions)
}
