package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mmcdole/cinelist/internal/collection"
	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*MovieService, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	n := 0
	ids := domain.IDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
	st := collection.NewStore(store.NewAdapter(mem), collection.WithIDGenerator(ids))
	require.NoError(t, st.Load())
	return NewMovieService(st, nil, "", nil), mem
}

func fields(title, year string) domain.MovieFields {
	return domain.MovieFields{Title: title, Year: year, Poster: "https://example.com/poster.jpg"}
}

func titles(movies []domain.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestEditSession_ZeroIsIdle(t *testing.T) {
	var s EditSession
	_, ok := s.Editing()
	assert.False(t, ok)
	assert.Equal(t, EditIdle, s.State())
	assert.Equal(t, "idle", s.State().String())
}

func TestEditSession_LastStartWins(t *testing.T) {
	var s EditSession
	s.StartEdit(domain.Movie{ID: "a"})
	s.StartEdit(domain.Movie{ID: "b"})

	m, ok := s.Editing()
	assert.True(t, ok)
	assert.Equal(t, "b", m.ID)

	s.Cancel()
	assert.Equal(t, EditIdle, s.State())
}

func TestSubmit_IdleAdds(t *testing.T) {
	svc, mem := newTestService(t)

	require.NoError(t, svc.Submit(fields("Matrix", "1999")))

	require.Len(t, svc.Collection(), 1)
	assert.Equal(t, "id-1", svc.Collection()[0].ID)
	assert.Equal(t, EditIdle, svc.Session().State())
	assert.Equal(t, 1, mem.Writes)
}

func TestSubmit_ValidationErrorMutatesNothing(t *testing.T) {
	svc, mem := newTestService(t)

	err := svc.Submit(fields("", "1999"))
	assert.True(t, errors.Is(err, domain.ErrMissingFields))
	assert.Equal(t, "All fields are required.", svc.Error())

	err = svc.Submit(fields("Matrix", "99"))
	assert.True(t, errors.Is(err, domain.ErrInvalidYear))
	assert.Equal(t, "Year must be a 4-digit number.", svc.Error(), "latest error replaces the previous one")

	assert.Empty(t, svc.Collection())
	assert.Equal(t, 0, mem.Writes)

	require.NoError(t, svc.Submit(fields("Matrix", "1999")))
	assert.Equal(t, "", svc.Error(), "success clears the error")
}

func TestSubmit_EditingUpdates(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Submit(fields("Matrix", "1999")))
	require.NoError(t, svc.Submit(fields("Inception", "2010")))

	require.NoError(t, svc.StartEdit("id-1"))
	require.NoError(t, svc.Submit(fields("The Matrix", "1999")))

	assert.Equal(t, EditIdle, svc.Session().State())
	assert.Equal(t, []string{"The Matrix", "Inception"}, titles(svc.Collection()))
}

func TestSubmit_EditingInvalidStaysEditing(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Submit(fields("Matrix", "1999")))
	require.NoError(t, svc.StartEdit("id-1"))

	err := svc.Submit(fields("Matrix", "abcd"))
	assert.True(t, errors.Is(err, domain.ErrInvalidYear))

	m, ok := svc.Session().Editing()
	assert.True(t, ok)
	assert.Equal(t, "id-1", m.ID)
	assert.Equal(t, "1999", svc.Collection()[0].Year)
}

func TestStartEdit_ReplacesTarget(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Submit(fields("A", "2001")))
	require.NoError(t, svc.Submit(fields("B", "2002")))

	require.NoError(t, svc.StartEdit("id-1"))
	require.NoError(t, svc.StartEdit("id-2"))

	m, ok := svc.Session().Editing()
	require.True(t, ok)
	assert.Equal(t, "id-2", m.ID)

	require.NoError(t, svc.Submit(fields("B2", "2002")))
	assert.Equal(t, []string{"A", "B2"}, titles(svc.Collection()))
}

func TestStartEdit_Unknown(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.StartEdit("missing")
	assert.True(t, errors.Is(err, domain.ErrRecordNotFound))
	assert.Equal(t, EditIdle, svc.Session().State())
}

func TestCancelEdit(t *testing.T) {
	svc, mem := newTestService(t)
	require.NoError(t, svc.Submit(fields("Matrix", "1999")))
	require.NoError(t, svc.StartEdit("id-1"))
	_ = svc.Submit(fields("", ""))

	svc.CancelEdit()

	assert.Equal(t, EditIdle, svc.Session().State())
	assert.Equal(t, "", svc.Error())
	assert.Equal(t, 1, mem.Writes)

	// a submit after cancel creates instead of updating
	require.NoError(t, svc.Submit(fields("Heat", "1995")))
	assert.Len(t, svc.Collection(), 2)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Submit(fields("Matrix", "1999")))
	require.NoError(t, svc.Submit(fields("Heat", "1995")))
	require.NoError(t, svc.StartEdit("id-1"))

	assert.True(t, svc.Delete("id-1"))
	assert.Equal(t, EditIdle, svc.Session().State(), "deleting the edit target ends the edit")
	assert.False(t, svc.Delete("id-1"))
	assert.Equal(t, []string{"Heat"}, titles(svc.Collection()))
}

func TestView_SearchAndSort(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Submit(fields("Matrix", "1999")))
	require.NoError(t, svc.Submit(fields("Inception", "2010")))
	require.NoError(t, svc.Submit(fields("Metropolis", "1927")))

	assert.Equal(t, []string{"Inception", "Matrix", "Metropolis"}, titles(svc.View()))

	assert.Equal(t, domain.SortYear, svc.CycleSort())
	assert.Equal(t, []string{"Metropolis", "Matrix", "Inception"}, titles(svc.View()))

	svc.SetSearch("M")
	assert.Equal(t, []string{"Metropolis", "Matrix"}, titles(svc.View()))

	svc.SetSort(domain.SortAlphabetical)
	assert.Equal(t, domain.ViewState{SearchTerm: "M", Sort: domain.SortAlphabetical}, svc.ViewState())
	assert.Equal(t, []string{"Matrix", "Metropolis"}, titles(svc.View()))
}

func TestSuggestions(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Submit(fields("Matrix", "1999")))

	assert.Nil(t, svc.Suggestions(3))

	svc.SetSearch("mtrx")
	assert.Empty(t, svc.View())
	assert.Equal(t, []string{"Matrix"}, titles(svc.Suggestions(3)))
}

func TestSaveFailureKeepsSession(t *testing.T) {
	svc, mem := newTestService(t)
	mem.FailWrites = errors.New("quota exceeded")

	require.NoError(t, svc.Submit(fields("Matrix", "1999")))
	assert.Len(t, svc.Collection(), 1)

	svc.SetError(fmt.Errorf("%w: quota exceeded", domain.ErrPersistenceWriteFailure))
	assert.Contains(t, svc.Error(), "could not be saved")
	svc.SetError(nil)
	assert.Equal(t, "", svc.Error())
}
