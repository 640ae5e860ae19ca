package engine_test

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-eventboard/internal/engine"
)

func TestSortByDate_Directions(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []engine.Event{
		{ID: "3", Date: base.Add(3 * time.Hour)},
		{ID: "1", Date: base.Add(1 * time.Hour)},
		{ID: "2", Date: base.Add(2 * time.Hour)},
	}

	asc := engine.SortByDate(events, engine.Ascending)
	desc := engine.SortByDate(events, engine.Descending)

	assert.Equal(t, []string{"1", "2", "3"}, ids(asc))

	reversed := ids(desc)
	slices.Reverse(reversed)
	assert.Equal(t, ids(asc), reversed, "distinct timestamps: desc is the reverse of asc")

	assert.Equal(t, []string{"3", "1", "2"}, ids(events), "input must not be reordered")
}

func TestSortByDate_StableTies(t *testing.T) {
	same := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	events := []engine.Event{
		{ID: "late", Date: same.Add(time.Hour)},
		{ID: "tie-a", Date: same},
		{ID: "tie-b", Date: same},
		{ID: "tie-c", Date: same},
	}

	assert.Equal(t, []string{"tie-a", "tie-b", "tie-c", "late"}, ids(engine.SortByDate(events, engine.Ascending)))
	assert.Equal(t, []string{"late", "tie-a", "tie-b", "tie-c"}, ids(engine.SortByDate(events, engine.Descending)))
}

func TestParseDirection(t *testing.T) {
	d, err := engine.ParseDirection("desc")
	require.NoError(t, err)
	assert.Equal(t, engine.Descending, d)
	assert.Equal(t, engine.Ascending, d.Toggle())

	d, err = engine.ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, "asc", d.String())

	_, err = engine.ParseDirection("newest")
	assert.Error(t, err)
}
