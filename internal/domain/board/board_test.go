package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrail/jobtrail/internal/domain/model"
	apperrors "github.com/jobtrail/jobtrail/internal/errors"
)

func card(id, column string, order int) model.Job {
	return model.Job{
		ID:     id,
		Status: model.JobStatusApplied,
		Column: column,
		Order:  order,
	}
}

func TestReconcile_MoveWritesOnlyPosition(t *testing.T) {
	j := card("J1", "applied", 0)
	j.Status = model.JobStatusApplied

	changed, err := Reconcile(&j, Move{Column: "offer", Index: 2})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "offer", j.Column)
	assert.Equal(t, 2, j.Order)
	assert.Equal(t, model.JobStatusApplied, j.Status)
}

func TestReconcile_NoOp(t *testing.T) {
	j := card("J1", "interview", 3)
	changed, err := Reconcile(&j, Move{Column: "interview", Index: 3})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestReconcile_SameColumnReorder(t *testing.T) {
	j := card("J1", "interview", 3)
	changed, err := Reconcile(&j, Move{Column: "interview", Index: 0})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, j.Order)
	assert.Equal(t, "interview", j.Column)
}

func TestReconcile_InvalidDestination(t *testing.T) {
	j := card("J1", "applied", 0)

	_, err := Reconcile(&j, Move{Column: " ", Index: 0})
	assert.True(t, apperrors.IsValidation(err))

	_, err = Reconcile(&j, Move{Column: "applied", Index: -1})
	assert.True(t, apperrors.IsValidation(err))

	// Failed moves leave the card untouched.
	assert.Equal(t, "applied", j.Column)
	assert.Equal(t, 0, j.Order)
}

func TestReconcile_SiblingsUntouched(t *testing.T) {
	moved := card("J1", "applied", 0)
	sibling := card("J2", "applied", 1)
	before := sibling

	changed, err := Reconcile(&moved, Move{Column: "applied", Index: 5})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, before, sibling)
}

func TestSortColumn_StableOnTies(t *testing.T) {
	cards := []model.Job{
		card("J1", "applied", 1),
		card("J2", "applied", 0),
		card("J3", "applied", 1),
		card("J4", "applied", 0),
	}
	SortColumn(cards)

	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	// Ties keep input order: J2 before J4, J1 before J3.
	assert.Equal(t, []string{"J2", "J4", "J1", "J3"}, ids)
}

func TestBuildView_CanonicalColumnsAlwaysPresent(t *testing.T) {
	view := BuildView(nil)
	require.Len(t, view.Columns, len(CanonicalColumns))
	for i, col := range view.Columns {
		assert.Equal(t, CanonicalColumns[i], col.Name)
		assert.Equal(t, []model.Job{}, col.Jobs)
	}
}

func TestBuildView_GroupsAndSorts(t *testing.T) {
	jobs := []model.Job{
		card("J1", "applied", 2),
		card("J2", "applied", 0),
		card("J3", "offer", 0),
	}
	view := BuildView(jobs)

	applied := view.Columns[0]
	require.Equal(t, "applied", applied.Name)
	require.Len(t, applied.Jobs, 2)
	assert.Equal(t, "J2", applied.Jobs[0].ID)
	assert.Equal(t, "J1", applied.Jobs[1].ID)

	offer := view.Columns[2]
	require.Equal(t, "offer", offer.Name)
	require.Len(t, offer.Jobs, 1)
}

func TestBuildView_ExtraColumnsAfterCanonical(t *testing.T) {
	jobs := []model.Job{
		card("J1", "wishlist", 0),
		card("J2", "archived", 0),
	}
	view := BuildView(jobs)
	require.Len(t, view.Columns, len(CanonicalColumns)+2)
	assert.Equal(t, "archived", view.Columns[len(CanonicalColumns)].Name)
	assert.Equal(t, "wishlist", view.Columns[len(CanonicalColumns)+1].Name)
}

func TestBuildView_ColumnDivergesFromStatus(t *testing.T) {
	j := card("J1", "interview", 0)
	j.Status = model.JobStatusApplied

	view := BuildView([]model.Job{j})
	interview := view.Columns[1]
	require.Equal(t, "interview", interview.Name)
	require.Len(t, interview.Jobs, 1)
	assert.Equal(t, model.JobStatusApplied, interview.Jobs[0].Status)
}
