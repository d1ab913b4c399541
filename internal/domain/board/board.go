// Package board implements the kanban positioning rules for job cards.
//
// Position is a plain (order, column) pair stored on each job. A move
// rewrites only the moved card; sibling cards keep whatever order values
// they already have, and ties are resolved at read time by a stable sort.
package board

import (
	"sort"
	"strings"

	"github.com/jobtrail/jobtrail/internal/domain/model"
	apperrors "github.com/jobtrail/jobtrail/internal/errors"
)

// CanonicalColumns is the fixed column set the dashboard renders, in
// display order. Columns are named after statuses but a card's column is
// free to diverge from its status.
var CanonicalColumns = []string{"applied", "interview", "offer", "rejected", "pending"}

// Move describes a drag-and-drop destination for one card.
type Move struct {
	Column string `json:"column"`
	Index  int    `json:"index"`
}

// Validate checks the destination fields.
func (m Move) Validate() error {
	if strings.TrimSpace(m.Column) == "" {
		return apperrors.ValidationField("column", "destination column is required")
	}
	if m.Index < 0 {
		return apperrors.ValidationField("index", "destination index must be >= 0")
	}
	return nil
}

// Reconcile applies a move to a single job. The job's Order becomes the
// destination index and its Column the destination column. Status is never
// touched; dragging a card into the "offer" column does not promote the
// application. Sibling cards are not rewritten.
//
// The returned bool reports whether the job changed. A move to the card's
// current position is a no-op and must not dirty the record.
func Reconcile(j *model.Job, m Move) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, err
	}
	if j.Column == m.Column && j.Order == m.Index {
		return false, nil
	}
	j.Column = m.Column
	j.Order = m.Index
	return true, nil
}

// SortColumn orders the cards of one column for display: ascending Order,
// stable so that cards sharing an order value keep their input order
// (insertion order, which tracks creation time).
func SortColumn(cards []model.Job) {
	sort.SliceStable(cards, func(i, k int) bool {
		return cards[i].Order < cards[k].Order
	})
}

// View is the board projection returned to the dashboard: one sorted card
// list per column.
type View struct {
	Columns []ColumnView `json:"columns"`
}

// ColumnView is one kanban column with its cards in display order.
type ColumnView struct {
	Name string      `json:"name"`
	Jobs []model.Job `json:"jobs"`
}

// BuildView groups jobs by column and sorts each group. Canonical columns
// always appear, empty or not, in their fixed display order. Columns
// invented by moves come after them, sorted by name.
func BuildView(jobs []model.Job) View {
	groups := make(map[string][]model.Job)
	for _, j := range jobs {
		groups[j.Column] = append(groups[j.Column], j)
	}

	canonical := make(map[string]bool, len(CanonicalColumns))
	view := View{Columns: make([]ColumnView, 0, len(CanonicalColumns))}
	for _, name := range CanonicalColumns {
		canonical[name] = true
		cards := groups[name]
		if cards == nil {
			cards = []model.Job{}
		}
		SortColumn(cards)
		view.Columns = append(view.Columns, ColumnView{Name: name, Jobs: cards})
	}

	var extra []string
	for name := range groups {
		if !canonical[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		cards := groups[name]
		SortColumn(cards)
		view.Columns = append(view.Columns, ColumnView{Name: name, Jobs: cards})
	}
	return view
}
