// internal/app/features/staff/report.go
package staff

import (
	"context"
	"strconv"
	"strings"

	"github.com/dalemusser/placementhub/internal/app/features/filters"
	"github.com/dalemusser/placementhub/internal/app/features/shared"
	"github.com/dalemusser/placementhub/internal/app/policy/eligibility"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/app/system/timeouts"
	"github.com/dalemusser/placementhub/internal/domain/models"
)

// recentLimit is how many audit events the staff view shows.
const recentLimit = 20

// report lists every posting that passes the staff filter, then totals by
// status and fill.
func (h *Handler) report(ctx context.Context, p *prompt.Prompter, u models.User, f *eligibility.Filter) {
	opCtx, cancel := h.op(ctx, timeouts.Long(), "internship report")
	defer cancel()
	ps, err := h.Postings.ListFor(opCtx, u, f)
	if err != nil {
		h.ErrLog.Report(p, "internship report", err)
		return
	}
	filters.Show(p, f)
	shared.PostingTable(p, ps)

	byStatus := make(map[models.PostingStatus]int, len(models.PostingStatuses))
	places, filled := 0, 0
	for _, x := range ps {
		byStatus[x.Status]++
		places += x.Capacity
		filled += x.Filled
	}
	parts := make([]string, 0, len(models.PostingStatuses))
	for _, st := range models.PostingStatuses {
		parts = append(parts, string(st)+" "+strconv.Itoa(byStatus[st]))
	}
	p.Printf("  %d internships: %s\n", len(ps), strings.Join(parts, ", "))
	p.Printf("  %d of %d places filled\n", filled, places)
}

func (h *Handler) recentEvents(ctx context.Context, p *prompt.Prompter) {
	trail := h.AuditLog.Trail()
	if trail == nil {
		p.Println("  The audit trail is not being kept (set audit_log to \"all\").")
		return
	}
	opCtx, cancel := h.op(ctx, timeouts.Short(), "recent audit events")
	defer cancel()
	events, err := trail.GetRecent(opCtx, recentLimit)
	if err != nil {
		h.ErrLog.Report(p, "recent audit events", err)
		return
	}
	if len(events) == 0 {
		p.Println("  No audit events yet.")
		return
	}
	rows := make([][]string, len(events))
	for i, e := range events {
		ok := "yes"
		if !e.Success {
			ok = "no"
		}
		rows[i] = []string{
			e.Timestamp.UTC().Format("2006-01-02 15:04:05"),
			e.EventType,
			ok,
			e.PostingID,
			e.CandidacyID,
			e.FailureReason,
		}
	}
	p.Table([]string{"TIME", "EVENT", "OK", "POSTING", "APPLICATION", "REASON"}, rows)
}
