// Package index presents a live, filtered, sorted view of the document
// collection so consumers do not re-query the store on every keystroke.
// The view is recomputed fully on every trigger; document counts are in
// the low thousands at most, so correctness wins over incremental
// bookkeeping.
package index

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"scandoc/internal/domain/models"
	"scandoc/internal/domain/repositories"
)

// Index holds a point-in-time materialized copy of the document set
// plus the current query, sort and folder filter. It is read-only with
// respect to the store: after any store mutation the owner calls
// Refresh to invalidate it.
type Index struct {
	repo   repositories.DocumentRepository
	logger *slog.Logger

	mu             sync.Mutex
	all            []models.Document
	searchQuery    string
	sortType       models.SortType
	folderFilter   *string // meaningful only when folderFiltered
	folderFiltered bool
	view           []models.Document

	subs    map[int]chan struct{}
	nextSub int
}

// New creates an empty index with the default sort order. Call Refresh
// to load it.
func New(repo repositories.DocumentRepository, logger *slog.Logger) *Index {
	return &Index{
		repo:     repo,
		logger:   logger,
		sortType: models.DefaultSort,
		subs:     make(map[int]chan struct{}),
	}
}

// Refresh reloads the document set from the store and recomputes the
// view.
func (ix *Index) Refresh(ctx context.Context) error {
	docs, err := ix.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	ix.mu.Lock()
	ix.all = docs
	ix.recompute()
	ix.mu.Unlock()

	ix.notify()
	return nil
}

// SetSearchQuery updates the substring filter. Empty means no filter.
func (ix *Index) SetSearchQuery(query string) {
	ix.mu.Lock()
	ix.searchQuery = query
	ix.recompute()
	ix.mu.Unlock()

	ix.notify()
}

// SetSortType updates the sort order. Unknown sort types are ignored.
func (ix *Index) SetSortType(sortType models.SortType) {
	if err := sortType.Validate(); err != nil {
		ix.logger.Warn("ignoring invalid sort type", "sort", string(sortType))
		return
	}

	ix.mu.Lock()
	ix.sortType = sortType
	ix.recompute()
	ix.mu.Unlock()

	ix.notify()
}

// SetFolderFilter restricts the view to one folder; nil selects unfiled
// documents.
func (ix *Index) SetFolderFilter(folderID *string) {
	ix.mu.Lock()
	ix.folderFilter = folderID
	ix.folderFiltered = true
	ix.recompute()
	ix.mu.Unlock()

	ix.notify()
}

// ClearFolderFilter removes the folder restriction.
func (ix *Index) ClearFolderFilter() {
	ix.mu.Lock()
	ix.folderFilter = nil
	ix.folderFiltered = false
	ix.recompute()
	ix.mu.Unlock()

	ix.notify()
}

// Documents returns a snapshot of the current filtered view. Records
// are cloned so callers cannot alias index state.
func (ix *Index) Documents() []models.Document {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	out := make([]models.Document, len(ix.view))
	for i := range ix.view {
		out[i] = *ix.view[i].Clone()
	}
	return out
}

// SortType returns the current sort order.
func (ix *Index) SortType() models.SortType {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.sortType
}

// Subscribe registers for change notifications. The returned channel
// receives one signal per batch of changes; the cancel function
// unregisters it. Slow consumers never block the index.
func (ix *Index) Subscribe() (<-chan struct{}, func()) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	id := ix.nextSub
	ix.nextSub++

	ch := make(chan struct{}, 1)
	ix.subs[id] = ch

	return ch, func() {
		ix.mu.Lock()
		defer ix.mu.Unlock()
		delete(ix.subs, id)
	}
}

func (ix *Index) notify() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, ch := range ix.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// recompute rebuilds the view under the lock: folder filter first, then
// the substring match, then the stable sort.
func (ix *Index) recompute() {
	filtered := make([]models.Document, 0, len(ix.all))
	for _, doc := range ix.all {
		if ix.folderFiltered && !folderMatches(&doc, ix.folderFilter) {
			continue
		}
		if ix.searchQuery != "" && !queryMatches(&doc, ix.searchQuery) {
			continue
		}
		filtered = append(filtered, doc)
	}

	sortDocuments(filtered, ix.sortType)
	ix.view = filtered
}

func folderMatches(doc *models.Document, folderID *string) bool {
	if folderID == nil {
		return doc.FolderID == nil
	}
	return doc.FolderID != nil && *doc.FolderID == *folderID
}

func queryMatches(doc *models.Document, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(doc.Title), q) {
		return true
	}
	if doc.ExtractedText != nil && strings.Contains(strings.ToLower(*doc.ExtractedText), q) {
		return true
	}
	return false
}

// sortDocuments applies one of the five total orders. The sort is
// stable, so ties keep the underlying load order.
func sortDocuments(docs []models.Document, sortType models.SortType) {
	switch sortType {
	case models.SortDateDesc:
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		})
	case models.SortDateAsc:
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		})
	case models.SortTitleAsc:
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].Title < docs[j].Title
		})
	case models.SortTitleDesc:
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].Title > docs[j].Title
		})
	case models.SortSizeDesc:
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].PageCount() > docs[j].PageCount()
		})
	}
}
