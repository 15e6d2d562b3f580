// internal/app/features/filters/menu.go
package filters

import (
	"context"
	"time"

	"github.com/dalemusser/placementhub/internal/app/policy/eligibility"
	"github.com/dalemusser/placementhub/internal/app/system/inputval"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"go.uber.org/zap"
)

var options = []string{
	"Show filters",
	"Add status filter",
	"Add level filter",
	"Add major filter",
	"Add company filter",
	"Add currently-open filter",
	"Add open-date range",
	"Add close-date range",
	"Remove an added filter",
	"Clear added filters",
}

// Manage runs the filter menu until the user goes back. Only prompt
// errors are returned.
func (h *Handler) Manage(ctx context.Context, p *prompt.Prompter, f *eligibility.Filter) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := p.Menu("Filters", "Back", options)
		if err != nil {
			return err
		}

		var pred eligibility.Predicate
		switch choice {
		case 0:
			return nil
		case 1:
			Show(p, f)
			continue
		case 2:
			st, err := prompt.Ask(p, "Status (PENDING, APPROVED, REJECTED, FILLED)", inputval.ParsePostingStatus)
			if err != nil {
				return err
			}
			pred = eligibility.StatusIs{Status: st}
		case 3:
			l, err := prompt.Ask(p, "Level (BASIC, INTERMEDIATE, ADVANCED or 1-3)", inputval.ParseLevel)
			if err != nil {
				return err
			}
			pred = eligibility.LevelIs{Level: l}
		case 4:
			m, err := p.Required("Major")
			if err != nil {
				return err
			}
			pred = eligibility.MajorIs{Major: inputval.CleanText(m)}
		case 5:
			c, err := p.Required("Company")
			if err != nil {
				return err
			}
			pred = eligibility.CompanyIs{Company: inputval.CleanText(c)}
		case 6:
			pred = eligibility.CurrentlyOpen{}
		case 7:
			r, err := askRange(p)
			if err != nil {
				return err
			}
			pred = eligibility.OpensWithin{Range: r}
		case 8:
			r, err := askRange(p)
			if err != nil {
				return err
			}
			pred = eligibility.ClosesWithin{Range: r}
		case 9:
			if err := remove(p, f); err != nil {
				return err
			}
			continue
		case 10:
			f.Clear()
			p.Println("  Added filters cleared.")
			continue
		}

		f.Add(pred)
		h.Log.Debug("filter added", zap.String("predicate", pred.String()))
		p.Printf("  Added: %s\n", pred)
	}
}

// Show prints the role defaults followed by the numbered added filters.
func Show(p *prompt.Prompter, f *eligibility.Filter) {
	p.Println("  Always applied:")
	mandatory := f.Mandatory()
	if len(mandatory) == 0 {
		p.Println("    (nothing)")
	}
	for _, pr := range mandatory {
		p.Printf("    - %s\n", pr)
	}
	p.Println("  Added:")
	added := f.Added()
	if len(added) == 0 {
		p.Println("    (nothing)")
	}
	for i, pr := range added {
		p.Printf("   %2d) %s\n", i+1, pr)
	}
}

func remove(p *prompt.Prompter, f *eligibility.Filter) error {
	added := f.Added()
	labels := make([]string, len(added))
	for i, pr := range added {
		labels[i] = pr.String()
	}
	i, err := p.Pick("Filter to remove", labels)
	if err != nil || i < 0 {
		return err
	}
	if err := f.Remove(i); err != nil {
		p.Printf("  %v\n", err)
		return nil
	}
	p.Printf("  Removed: %s\n", labels[i])
	return nil
}

// askRange reads an inclusive day range; a blank bound is open.
func askRange(p *prompt.Prompter) (eligibility.DateRange, error) {
	for {
		from, err := prompt.Ask(p, "From YYYY-MM-DD (blank for no lower bound)", optionalDate)
		if err != nil {
			return eligibility.DateRange{}, err
		}
		to, err := prompt.Ask(p, "To YYYY-MM-DD (blank for no upper bound)", optionalDate)
		if err != nil {
			return eligibility.DateRange{}, err
		}
		if !from.IsZero() && !to.IsZero() && from.After(to) {
			p.Println("  The start of the range must not be after its end.")
			continue
		}
		return eligibility.DateRange{From: from, To: to}, nil
	}
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return inputval.ParseDate(s)
}
