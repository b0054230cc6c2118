package schema

import (
	"testing"

	"formbuilder/internal/model"

	"github.com/stretchr/testify/require"
)

func TestWalk_DocumentOrderParentsFirst(t *testing.T) {
	var got []string
	var locs []string
	Walk(fixture(), func(loc Location, q model.Question) bool {
		got = append(got, q.ID)
		locs = append(locs, loc.String())
		return true
	})
	require.Equal(t, []string{"a", "b", "c", "d", "vitals", "height", "weight", "e"}, got)
	require.Equal(t, "0/1/1/0", locs[5])
	require.Equal(t, "1/0/0", locs[7])
}

func TestWalk_StopsEarly(t *testing.T) {
	n := 0
	Walk(fixture(), func(Location, model.Question) bool {
		n++
		return n < 3
	})
	require.Equal(t, 3, n)
}

func TestFindQuestion_Nested(t *testing.T) {
	found, loc, ok := FindQuestion(fixture(), "weight")
	require.True(t, ok)
	require.Equal(t, "weight", found.ID)
	require.Equal(t, []int{1, 1}, loc.Path)
	require.True(t, loc.Nested())
	require.Equal(t, 1, loc.Index())

	parent, ok := loc.Parent()
	require.True(t, ok)
	pq, ok := QuestionAt(fixture(), parent)
	require.True(t, ok)
	require.Equal(t, "vitals", pq.ID)

	_, _, ok = FindQuestion(fixture(), "missing")
	require.False(t, ok)
}

func TestQuestionAt_OutOfRange(t *testing.T) {
	s := fixture()
	for _, loc := range []Location{
		{Page: 2, Section: 0, Path: []int{0}},
		{Page: 0, Section: 5, Path: []int{0}},
		{Page: 0, Section: 0, Path: []int{9}},
		{Page: 0, Section: 0},
		{Page: 0, Section: 0, Path: []int{0, 0}},
	} {
		_, ok := QuestionAt(s, loc)
		require.False(t, ok, loc.String())
	}
}

func TestLocation_SameContainer(t *testing.T) {
	a := Location{Page: 0, Section: 1, Path: []int{1, 0}}
	b := Location{Page: 0, Section: 1, Path: []int{1, 1}}
	c := Location{Page: 0, Section: 1, Path: []int{1}}
	d := Location{Page: 0, Section: 1, Path: []int{0}}
	require.True(t, a.SameContainer(b))
	require.False(t, a.SameContainer(c))
	require.True(t, c.SameContainer(d))
	require.False(t, c.SameContainer(Location{Page: 1, Section: 1, Path: []int{0}}))
	_, ok := c.Parent()
	require.False(t, ok)
}

func TestCountAndDuplicateIDs(t *testing.T) {
	s := fixture()
	require.Equal(t, 8, CountQuestions(s))
	require.Empty(t, DuplicateIDs(s))

	s.Pages[1].Sections[0].Questions = append(s.Pages[1].Sections[0].Questions, q("height"), q("a"))
	require.Equal(t, []string{"a", "height"}, DuplicateIDs(s))
	require.Len(t, QuestionIDs(s), 10)
}
