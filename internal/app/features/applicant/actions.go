// internal/app/features/applicant/actions.go
package applicant

import (
	"context"

	"github.com/dalemusser/placementhub/internal/app/features/shared"
	"github.com/dalemusser/placementhub/internal/app/services/candidacies"
	"github.com/dalemusser/placementhub/internal/app/store/audit"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/app/system/timeouts"
	"github.com/dalemusser/placementhub/internal/domain/models"
)

// action is one operation an applicant performs on a single candidacy.
type action struct {
	name    string
	event   string
	none    string
	done    string
	offered func(models.Candidacy) bool
	run     func(ctx context.Context, o *candidacies.Orchestrator, u models.User, id string) error
}

var accept = action{
	name:  "accept offer",
	event: audit.EventOfferAccepted,
	none:  "  You have no offers to accept.",
	done:  "  Offer accepted. Your other applications have been withdrawn.",
	offered: func(c models.Candidacy) bool {
		return c.Status == models.CandidacySuccessful && !c.Withdrawn && !c.Accepted
	},
	run: func(ctx context.Context, o *candidacies.Orchestrator, u models.User, id string) error {
		_, err := o.Accept(ctx, u, id)
		return err
	},
}

var withdraw = action{
	name:  "request withdrawal",
	event: audit.EventWithdrawalRequested,
	none:  "  You have no applications that can be withdrawn.",
	done:  "  Withdrawal requested. The career centre will review it.",
	offered: func(c models.Candidacy) bool {
		return c.CanBeWithdrawn() && !c.WithdrawalRequested
	},
	run: func(ctx context.Context, o *candidacies.Orchestrator, u models.User, id string) error {
		_, err := o.RequestWithdrawal(ctx, u, id)
		return err
	},
}

var remove = action{
	name:  "delete application",
	event: audit.EventCandidacyDeleted,
	none:  "  You have no pending applications.",
	done:  "  Application deleted.",
	offered: func(c models.Candidacy) bool {
		return c.Status == models.CandidacyPending && !c.Withdrawn
	},
	run: func(ctx context.Context, o *candidacies.Orchestrator, u models.User, id string) error {
		return o.Delete(ctx, u, id)
	},
}

// act lets the applicant pick one of the candidacies a offers and runs it.
func (h *Handler) act(ctx context.Context, p *prompt.Prompter, u models.User, a action) error {
	cs, titles, ok := h.mine(ctx, p, u)
	if !ok {
		return nil
	}
	var offered []models.Candidacy
	for _, c := range cs {
		if a.offered(c) {
			offered = append(offered, c)
		}
	}
	if len(offered) == 0 {
		p.Println(a.none)
		return nil
	}
	i, err := p.Pick("Application", shared.CandidacyLabels(offered, titles))
	if err != nil || i < 0 {
		return err
	}
	c := offered[i]

	opCtx, cancel := h.op(ctx, timeouts.Medium(), a.name)
	err = a.run(opCtx, h.Candidacies, u, c.ID)
	cancel()
	h.AuditLog.Candidacy(ctx, a.event, u, c.ID, c.PostingID, err)
	if err != nil {
		h.ErrLog.Report(p, a.name, err)
		return nil
	}
	p.Println(a.done)
	return nil
}
