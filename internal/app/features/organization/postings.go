// internal/app/features/organization/postings.go
package organization

import (
	"context"

	"github.com/dalemusser/placementhub/internal/app/features/shared"
	"github.com/dalemusser/placementhub/internal/app/services/postings"
	"github.com/dalemusser/placementhub/internal/app/store/audit"
	"github.com/dalemusser/placementhub/internal/app/system/inputval"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/app/system/timeouts"
	"github.com/dalemusser/placementhub/internal/domain/models"
)

const (
	levelLabel = "Level (BASIC, INTERMEDIATE, ADVANCED or 1-3)"
	openLabel  = "Open date (YYYY-MM-DD)"
	closeLabel = "Close date (YYYY-MM-DD)"
)

func (h *Handler) create(ctx context.Context, p *prompt.Prompter, u models.User) error {
	var d postings.Draft
	var err error
	if d.Title, err = p.Required("Title"); err != nil {
		return err
	}
	if d.Description, err = p.Required("Description"); err != nil {
		return err
	}
	if d.Level, err = prompt.Ask(p, levelLabel, inputval.ParseLevel); err != nil {
		return err
	}
	if d.Major, err = p.Required("Preferred major"); err != nil {
		return err
	}
	if d.OpenDate, err = prompt.Ask(p, openLabel, inputval.ParseDate); err != nil {
		return err
	}
	if d.CloseDate, err = prompt.Ask(p, closeLabel, inputval.ParseDate); err != nil {
		return err
	}
	if d.Capacity, err = prompt.Ask(p, "Number of places", inputval.ParsePositive); err != nil {
		return err
	}

	opCtx, cancel := h.op(ctx, timeouts.Medium(), "create internship")
	created, err := h.Postings.Create(opCtx, u, d)
	cancel()
	h.AuditLog.Posting(ctx, audit.EventPostingCreated, u, created.ID, err)
	if err != nil {
		h.ErrLog.Report(p, "create internship", err)
		return nil
	}
	p.Printf("  Created %q. It stays hidden until the career centre approves it.\n", created.Title)
	return nil
}

func (h *Handler) edit(ctx context.Context, p *prompt.Prompter, u models.User) error {
	target, ok, err := h.pickOwned(ctx, p, u, models.Posting.Editable, "  You have no pending internships to edit.")
	if err != nil || !ok {
		return err
	}
	shared.PostingDetail(p, target)

	var patch postings.Patch
	if patch.Title, err = prompt.Optional(p, "Title", asIs); err != nil {
		return err
	}
	if patch.Description, err = prompt.Optional(p, "Description", asIs); err != nil {
		return err
	}
	if patch.Level, err = prompt.Optional(p, levelLabel, inputval.ParseLevel); err != nil {
		return err
	}
	if patch.Major, err = prompt.Optional(p, "Preferred major", asIs); err != nil {
		return err
	}
	if patch.OpenDate, err = prompt.Optional(p, openLabel, inputval.ParseDate); err != nil {
		return err
	}
	if patch.CloseDate, err = prompt.Optional(p, closeLabel, inputval.ParseDate); err != nil {
		return err
	}

	opCtx, cancel := h.op(ctx, timeouts.Medium(), "edit internship")
	_, err = h.Postings.Edit(opCtx, u, target.ID, patch)
	cancel()
	h.AuditLog.Posting(ctx, audit.EventPostingUpdated, u, target.ID, err)
	if err != nil {
		h.ErrLog.Report(p, "edit internship", err)
		return nil
	}
	p.Println("  Internship updated.")
	return nil
}

func (h *Handler) remove(ctx context.Context, p *prompt.Prompter, u models.User) error {
	target, ok, err := h.pickOwned(ctx, p, u, models.Posting.Deletable, "  You have no pending or rejected internships to delete.")
	if err != nil || !ok {
		return err
	}
	yes, err := prompt.Ask(p, "Delete "+target.Title+"? (y/n)", inputval.ParseYesNo)
	if err != nil || !yes {
		return err
	}

	opCtx, cancel := h.op(ctx, timeouts.Medium(), "delete internship")
	err = h.Postings.Delete(opCtx, u, target.ID)
	cancel()
	h.AuditLog.Posting(ctx, audit.EventPostingDeleted, u, target.ID, err)
	if err != nil {
		h.ErrLog.Report(p, "delete internship", err)
		return nil
	}
	p.Println("  Internship deleted.")
	return nil
}

func (h *Handler) toggleVisibility(ctx context.Context, p *prompt.Prompter, u models.User) error {
	target, ok, err := h.pickOwned(ctx, p, u, nil, "  You have no internships.")
	if err != nil || !ok {
		return err
	}
	visible := !target.Visible

	opCtx, cancel := h.op(ctx, timeouts.Medium(), "set visibility")
	_, err = h.Postings.SetVisibility(opCtx, u, target.ID, visible)
	cancel()
	h.AuditLog.PostingVisibility(ctx, u, target.ID, visible, err)
	if err != nil {
		h.ErrLog.Report(p, "set visibility", err)
		return nil
	}
	if visible {
		p.Printf("  %q is now visible to students.\n", target.Title)
	} else {
		p.Printf("  %q is now hidden from students.\n", target.Title)
	}
	return nil
}

// asIs accepts any answer; Optional already maps blank to "keep".
func asIs(s string) (string, error) {
	return s, nil
}
