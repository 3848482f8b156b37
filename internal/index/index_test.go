package index

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"scandoc/internal/domain/models"
	"scandoc/internal/domain/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo serves a fixed document set; the index only calls GetAll.
type stubRepo struct {
	repositories.DocumentRepository
	docs []models.Document
}

func (s *stubRepo) GetAll(ctx context.Context) ([]models.Document, error) {
	out := make([]models.Document, len(s.docs))
	copy(out, s.docs)
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doc(id, title string, createdAt time.Time, pages int) models.Document {
	paths := make([]string, pages)
	for i := range paths {
		paths[i] = "/scans/" + id + "/p.jpg"
	}
	return models.Document{
		ID:         id,
		Title:      title,
		ImagePaths: paths,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func newLoadedIndex(t *testing.T, docs []models.Document) *Index {
	t.Helper()
	ix := New(&stubRepo{docs: docs}, testLogger())
	require.NoError(t, ix.Refresh(context.Background()))
	return ix
}

func ids(docs []models.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestIndex_DefaultSortIsDateDesc(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ix := newLoadedIndex(t, []models.Document{
		doc("old", "Old", base, 1),
		doc("new", "New", base.Add(time.Hour), 1),
		doc("mid", "Mid", base.Add(time.Minute), 1),
	})

	assert.Equal(t, models.SortDateDesc, ix.SortType())
	assert.Equal(t, []string{"new", "mid", "old"}, ids(ix.Documents()))
}

func TestIndex_SortOrders(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	docs := []models.Document{
		doc("a", "Alpha", base.Add(2*time.Hour), 1),
		doc("b", "Charlie", base, 3),
		doc("c", "Bravo", base.Add(time.Hour), 2),
	}

	tests := []struct {
		sort models.SortType
		want []string
	}{
		{models.SortDateDesc, []string{"a", "c", "b"}},
		{models.SortDateAsc, []string{"b", "c", "a"}},
		{models.SortTitleAsc, []string{"a", "c", "b"}},
		{models.SortTitleDesc, []string{"b", "c", "a"}},
		{models.SortSizeDesc, []string{"b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			ix := newLoadedIndex(t, docs)
			ix.SetSortType(tt.sort)
			assert.Equal(t, tt.want, ids(ix.Documents()))
		})
	}
}

func TestIndex_SortIsStableOnTies(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ix := newLoadedIndex(t, []models.Document{
		doc("first", "Same", at, 1),
		doc("second", "Same", at, 1),
		doc("third", "Same", at, 1),
	})

	ix.SetSortType(models.SortTitleAsc)
	want := ids(ix.Documents())

	// Repeated recomputes must not reorder tied documents
	for i := 0; i < 5; i++ {
		ix.SetSortType(models.SortTitleAsc)
		assert.Equal(t, want, ids(ix.Documents()))
	}
}

func TestIndex_InvalidSortTypeIgnored(t *testing.T) {
	ix := newLoadedIndex(t, nil)
	ix.SetSortType(models.SortType("bogus"))
	assert.Equal(t, models.DefaultSort, ix.SortType())
}

func TestIndex_SearchQuery(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	text := "total due: 42 EUR"
	withText := doc("rec", "Receipt", base, 1)
	withText.ExtractedText = &text

	ix := newLoadedIndex(t, []models.Document{
		doc("inv", "Invoice March", base.Add(time.Hour), 1),
		withText,
	})

	ix.SetSearchQuery("INVOICE")
	assert.Equal(t, []string{"inv"}, ids(ix.Documents()))

	ix.SetSearchQuery("42 eur")
	assert.Equal(t, []string{"rec"}, ids(ix.Documents()))

	ix.SetSearchQuery("")
	assert.Len(t, ix.Documents(), 2)
}

func TestIndex_FolderFilter(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	folderID := "folder-1"
	filed := doc("filed", "Filed", base, 1)
	filed.FolderID = &folderID

	ix := newLoadedIndex(t, []models.Document{
		filed,
		doc("loose", "Loose", base.Add(time.Hour), 1),
	})

	ix.SetFolderFilter(&folderID)
	assert.Equal(t, []string{"filed"}, ids(ix.Documents()))

	// nil is a real filter value selecting unfiled documents
	ix.SetFolderFilter(nil)
	assert.Equal(t, []string{"loose"}, ids(ix.Documents()))

	ix.ClearFolderFilter()
	assert.Len(t, ix.Documents(), 2)
}

func TestIndex_FiltersCompose(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	folderID := "folder-1"

	match := doc("match", "Invoice", base, 1)
	match.FolderID = &folderID
	wrongFolder := doc("wrong-folder", "Invoice Copy", base, 1)
	wrongTitle := doc("wrong-title", "Photo", base, 1)
	wrongTitle.FolderID = &folderID

	ix := newLoadedIndex(t, []models.Document{match, wrongFolder, wrongTitle})

	ix.SetFolderFilter(&folderID)
	ix.SetSearchQuery("invoice")
	assert.Equal(t, []string{"match"}, ids(ix.Documents()))
}

func TestIndex_DocumentsReturnsClones(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ix := newLoadedIndex(t, []models.Document{doc("a", "Original", base, 1)})

	snapshot := ix.Documents()
	snapshot[0].Title = "Mutated"
	snapshot[0].ImagePaths[0] = "mutated"

	fresh := ix.Documents()
	assert.Equal(t, "Original", fresh[0].Title)
	assert.Equal(t, "/scans/a/p.jpg", fresh[0].ImagePaths[0])
}

func TestIndex_SubscribeNotifies(t *testing.T) {
	ix := newLoadedIndex(t, nil)

	ch, cancel := ix.Subscribe()
	defer cancel()

	ix.SetSearchQuery("anything")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	// Multiple changes coalesce; a slow consumer never blocks the index
	ix.SetSearchQuery("one")
	ix.SetSearchQuery("two")
	ix.SetSearchQuery("three")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a coalesced notification")
	}
}

func TestIndex_CancelledSubscriptionStops(t *testing.T) {
	ix := newLoadedIndex(t, nil)

	ch, cancel := ix.Subscribe()
	cancel()

	ix.SetSearchQuery("anything")

	select {
	case <-ch:
		t.Fatal("cancelled subscription must not receive")
	case <-time.After(50 * time.Millisecond):
	}
}
