// internal/app/features/shared/views.go
package shared

import (
	"fmt"
	"strconv"

	"github.com/dalemusser/placementhub/internal/app/system/inputval"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/google/uuid"
)

var postingHeader = []string{"#", "TITLE", "COMPANY", "LEVEL", "MAJOR", "OPEN", "CLOSE", "SLOTS", "STATUS", "VISIBLE"}

// PostingTable prints postings as a numbered table.
func PostingTable(p *prompt.Prompter, ps []models.Posting) {
	if len(ps) == 0 {
		p.Println("  No internships to show.")
		return
	}
	rows := make([][]string, len(ps))
	for i, x := range ps {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			x.Title,
			x.Company,
			x.Level.String(),
			x.PreferredMajor,
			x.OpenDate.Format(inputval.DateLayout),
			x.CloseDate.Format(inputval.DateLayout),
			fmt.Sprintf("%d/%d", x.Filled, x.Capacity),
			string(x.Status),
			yesNo(x.Visible),
		}
	}
	p.Table(postingHeader, rows)
}

// PostingLabel is the one-line description used in pick lists.
func PostingLabel(x models.Posting) string {
	return fmt.Sprintf("%s (%s) [%s, %d/%d filled]", x.Title, x.Company, x.Status, x.Filled, x.Capacity)
}

// PostingLabels maps PostingLabel over ps.
func PostingLabels(ps []models.Posting) []string {
	out := make([]string, len(ps))
	for i, x := range ps {
		out[i] = PostingLabel(x)
	}
	return out
}

// PostingDetail prints every field of one posting.
func PostingDetail(p *prompt.Prompter, x models.Posting) {
	p.Printf("  %s\n", x.Title)
	p.Printf("  Company:     %s\n", x.Company)
	p.Printf("  Level:       %s\n", x.Level)
	p.Printf("  Major:       %s\n", x.PreferredMajor)
	p.Printf("  Open/close:  %s to %s\n", x.OpenDate.Format(inputval.DateLayout), x.CloseDate.Format(inputval.DateLayout))
	p.Printf("  Slots:       %d of %d filled\n", x.Filled, x.Capacity)
	p.Printf("  Status:      %s (visible: %s)\n", x.Status, yesNo(x.Visible))
	p.Printf("  Description: %s\n", x.Description)
}

// CandidacyState renders the status together with its flags.
func CandidacyState(c models.Candidacy) string {
	s := string(c.Status)
	switch {
	case c.IsPlacement():
		s += " (accepted)"
	case c.WithdrawalRequested:
		s += " (withdrawal requested)"
	}
	return s
}

// CandidacyLabel is the one-line description used in pick lists. titles
// comes from the posting service; a missing title prints the posting id.
func CandidacyLabel(c models.Candidacy, titles map[uuid.UUID]string) string {
	title, ok := titles[c.PostingID]
	if !ok {
		title = c.PostingID.String()
	}
	return fmt.Sprintf("%s  %s  %s", c.ID, title, CandidacyState(c))
}

// CandidacyLabels maps CandidacyLabel over cs.
func CandidacyLabels(cs []models.Candidacy, titles map[uuid.UUID]string) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = CandidacyLabel(c, titles)
	}
	return out
}

// PostingIDs returns the posting id of each candidacy.
func PostingIDs(cs []models.Candidacy) []uuid.UUID {
	out := make([]uuid.UUID, len(cs))
	for i, c := range cs {
		out[i] = c.PostingID
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
