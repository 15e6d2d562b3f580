// internal/app/policy/eligibility/predicates.go
package eligibility

import (
	"fmt"
	"time"

	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Predicate is one atomic condition over a posting. today is the calendar
// day the check runs on (see clock.Day).
type Predicate interface {
	Matches(p models.Posting, today time.Time) bool
	String() string
}

// YearEligible reports whether an applicant in the given year of study may
// apply to a posting of level. Years up to juniorMax see only BASIC postings.
func YearEligible(level models.Level, year, juniorMax int) bool {
	if level == models.LevelBasic {
		return true
	}
	return year > juniorMax
}

// StatusIs matches postings in one status.
type StatusIs struct{ Status models.PostingStatus }

func (s StatusIs) Matches(p models.Posting, _ time.Time) bool { return p.Status == s.Status }
func (s StatusIs) String() string                             { return "status = " + string(s.Status) }

// LevelIs matches postings of one level.
type LevelIs struct{ Level models.Level }

func (l LevelIs) Matches(p models.Posting, _ time.Time) bool { return p.Level == l.Level }
func (l LevelIs) String() string                             { return "level = " + l.Level.String() }

// MajorIs matches the preferred major, ignoring case and diacritics.
type MajorIs struct{ Major string }

func (m MajorIs) Matches(p models.Posting, _ time.Time) bool {
	return p.PreferredMajorCI == text.Fold(m.Major)
}
func (m MajorIs) String() string { return fmt.Sprintf("major = %q", m.Major) }

// CompanyIs matches the posting company, ignoring case and diacritics.
type CompanyIs struct{ Company string }

func (c CompanyIs) Matches(p models.Posting, _ time.Time) bool {
	return p.CompanyCI == text.Fold(c.Company)
}
func (c CompanyIs) String() string { return fmt.Sprintf("company = %q", c.Company) }

// Visible matches postings whose visibility flag is on.
type Visible struct{}

func (Visible) Matches(p models.Posting, _ time.Time) bool { return p.Visible }
func (Visible) String() string                             { return "visible" }

// CurrentlyOpen matches postings with OpenDate <= today <= CloseDate.
type CurrentlyOpen struct{}

func (CurrentlyOpen) Matches(p models.Posting, today time.Time) bool { return p.IsOpenOn(today) }
func (CurrentlyOpen) String() string                                 { return "currently open" }

// DateRange is an inclusive range of calendar days. A zero bound is unset.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) contains(day time.Time) bool {
	if !r.From.IsZero() && day.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && day.After(r.To) {
		return false
	}
	return true
}

func (r DateRange) String() string {
	from, to := "*", "*"
	if !r.From.IsZero() {
		from = r.From.Format("2006-01-02")
	}
	if !r.To.IsZero() {
		to = r.To.Format("2006-01-02")
	}
	return "[" + from + ", " + to + "]"
}

// OpensWithin matches postings whose open date falls in the range.
type OpensWithin struct{ Range DateRange }

func (o OpensWithin) Matches(p models.Posting, _ time.Time) bool { return o.Range.contains(p.OpenDate) }
func (o OpensWithin) String() string                             { return "opens in " + o.Range.String() }

// ClosesWithin matches postings whose close date falls in the range.
type ClosesWithin struct{ Range DateRange }

func (c ClosesWithin) Matches(p models.Posting, _ time.Time) bool { return c.Range.contains(p.CloseDate) }
func (c ClosesWithin) String() string                             { return "closes in " + c.Range.String() }

// YearOf matches postings an applicant in Year may apply to.
type YearOf struct {
	Year      int
	JuniorMax int
}

func (y YearOf) Matches(p models.Posting, _ time.Time) bool {
	return YearEligible(p.Level, y.Year, y.JuniorMax)
}
func (y YearOf) String() string { return fmt.Sprintf("eligible for year %d", y.Year) }
