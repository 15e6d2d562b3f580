// internal/app/policy/eligibility/filter.go
package eligibility

import (
	"fmt"
	"time"

	"github.com/dalemusser/placementhub/internal/domain/models"
)

// defaultsByRole builds the mandatory predicates for each role. A role that
// is missing from the table gets no defaults.
var defaultsByRole = map[models.Role]func(u models.User, juniorMax int) []Predicate{
	models.RoleApplicant: func(u models.User, juniorMax int) []Predicate {
		return []Predicate{
			Visible{},
			StatusIs{Status: models.PostingApproved},
			MajorIs{Major: u.Major},
			YearOf{Year: u.Year, JuniorMax: juniorMax},
		}
	},
	models.RoleOrganization: func(u models.User, _ int) []Predicate {
		return []Predicate{CompanyIs{Company: u.Company}}
	},
	models.RoleStaff: func(models.User, int) []Predicate { return nil },
}

// Defaults returns the mandatory predicate set for u's role.
func Defaults(u models.User, juniorMax int) []Predicate {
	build, ok := defaultsByRole[u.Role]
	if !ok {
		return nil
	}
	return build(u, juniorMax)
}

// Filter is an ordered AND of the role's mandatory predicates followed by
// predicates the user added. It belongs to one user and is not safe for
// concurrent mutation.
type Filter struct {
	defaults []Predicate
	added    []Predicate
}

// For returns a filter holding u's role defaults.
func For(u models.User, juniorMax int) *Filter {
	return &Filter{defaults: Defaults(u, juniorMax)}
}

// Add appends a user predicate.
func (f *Filter) Add(p Predicate) {
	f.added = append(f.added, p)
}

// Remove drops the i-th user-added predicate (0-based, in Added order).
// Mandatory predicates cannot be removed.
func (f *Filter) Remove(i int) error {
	if i < 0 || i >= len(f.added) {
		return fmt.Errorf("no user filter at position %d", i+1)
	}
	f.added = append(f.added[:i:i], f.added[i+1:]...)
	return nil
}

// Clear discards every user-added predicate, leaving exactly the defaults.
func (f *Filter) Clear() {
	f.added = nil
}

// Mandatory returns a copy of the role defaults.
func (f *Filter) Mandatory() []Predicate {
	return append([]Predicate(nil), f.defaults...)
}

// Added returns a copy of the user-added predicates.
func (f *Filter) Added() []Predicate {
	return append([]Predicate(nil), f.added...)
}

// Predicates returns defaults then user predicates, in evaluation order.
func (f *Filter) Predicates() []Predicate {
	out := make([]Predicate, 0, len(f.defaults)+len(f.added))
	out = append(out, f.defaults...)
	return append(out, f.added...)
}

// Matches reports whether p satisfies every predicate.
func (f *Filter) Matches(p models.Posting, today time.Time) bool {
	for _, pr := range f.defaults {
		if !pr.Matches(p, today) {
			return false
		}
	}
	for _, pr := range f.added {
		if !pr.Matches(p, today) {
			return false
		}
	}
	return true
}

// Apply returns the postings that match, preserving order.
func (f *Filter) Apply(ps []models.Posting, today time.Time) []models.Posting {
	out := make([]models.Posting, 0, len(ps))
	for _, p := range ps {
		if f.Matches(p, today) {
			out = append(out, p)
		}
	}
	return out
}
