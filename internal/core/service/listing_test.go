package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
)

func pageOf(usernames ...string) *domain.Page[domain.Usuario] {
	content := make([]domain.Usuario, 0, len(usernames))
	for i, u := range usernames {
		content = append(content, domain.Usuario{ID: int64(i + 1), Username: u})
	}
	return &domain.Page[domain.Usuario]{
		Content:       content,
		TotalElements: int64(len(content)),
		Size:          DefaultPageSize,
	}
}

func TestListing_DefaultQuery(t *testing.T) {
	l := NewListing[domain.Usuario]("usuarios", nil, nil, zerolog.Nop())

	q := l.Query()
	if q.Page != 0 || q.Size != DefaultPageSize || q.Search != "" {
		t.Fatalf("unexpected default query: %+v", q)
	}
}

func TestListing_FetchRoutesBySearchTerm(t *testing.T) {
	var listCalls, searchCalls int
	list := func(ctx context.Context, q ListQuery) (*domain.Page[domain.Usuario], error) {
		listCalls++
		return pageOf("alice"), nil
	}
	search := func(ctx context.Context, q ListQuery) (*domain.Page[domain.Usuario], error) {
		searchCalls++
		if q.Search != "ali" {
			t.Fatalf("expected search term ali, got %q", q.Search)
		}
		return pageOf("alice"), nil
	}
	l := NewListing("usuarios", list, search, zerolog.Nop())

	if _, err := l.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	l.SetSearch("ali")
	if _, err := l.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if listCalls != 1 || searchCalls != 1 {
		t.Fatalf("expected 1 list and 1 search call, got %d and %d", listCalls, searchCalls)
	}
}

func TestListing_SearchResetsPage(t *testing.T) {
	l := NewListing[domain.Usuario]("usuarios", nil, nil, zerolog.Nop())

	l.SetPage(3)
	l.SetSearch("ana")
	if q := l.Query(); q.Page != 0 {
		t.Fatalf("expected page reset to 0, got %d", q.Page)
	}

	// Same term again must not reset anything.
	l.SetPage(2)
	l.SetSearch("ana")
	if q := l.Query(); q.Page != 2 {
		t.Fatalf("expected page kept at 2, got %d", q.Page)
	}
}

func TestListing_PageSizeResetsPageAndIgnoresUnoffered(t *testing.T) {
	l := NewListing[domain.Usuario]("usuarios", nil, nil, zerolog.Nop())

	l.SetPage(4)
	l.SetPageSize(25)
	if q := l.Query(); q.Page != 0 || q.Size != 25 {
		t.Fatalf("unexpected query after size change: %+v", q)
	}

	l.SetPage(2)
	l.SetPageSize(7)
	if q := l.Query(); q.Page != 2 || q.Size != 25 {
		t.Fatalf("unoffered size must be ignored, got %+v", q)
	}
}

func TestListing_KeepsPreviousPageOnError(t *testing.T) {
	boom := errors.New("backend down")
	good := pageOf("alice", "bob")
	fail := false
	list := func(ctx context.Context, q ListQuery) (*domain.Page[domain.Usuario], error) {
		if fail {
			return nil, boom
		}
		return good, nil
	}
	l := NewListing("usuarios", list, nil, zerolog.Nop())

	if _, err := l.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	fail = true
	page, err := l.Fetch(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if page != good {
		t.Fatalf("expected previous page retained on error")
	}
	if l.Current() != good {
		t.Fatalf("expected Current to keep serving the last good page")
	}
	if l.LastError() == nil {
		t.Fatalf("expected LastError to record the failure")
	}
}

func TestListing_DiscardsSupersededFetch(t *testing.T) {
	stale := pageOf("old")
	fresh := pageOf("new")

	l := NewListing[domain.Usuario]("usuarios", nil, nil, zerolog.Nop())
	l.list = func(ctx context.Context, q ListQuery) (*domain.Page[domain.Usuario], error) {
		// Simulate the user changing page while this request is in flight.
		if q.Page == 0 {
			l.SetPage(1)
			return stale, nil
		}
		return fresh, nil
	}

	page, err := l.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if page == stale {
		t.Fatalf("superseded response must never be applied")
	}
	if l.Current() != nil {
		t.Fatalf("discarded fetch must not populate the cache")
	}

	page, err = l.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if page != fresh {
		t.Fatalf("expected the current-generation page to be applied")
	}
}

func TestListing_InvalidateDiscardsInFlightFetch(t *testing.T) {
	stale := pageOf("old")

	l := NewListing[domain.Usuario]("usuarios", nil, nil, zerolog.Nop())
	first := true
	l.list = func(ctx context.Context, q ListQuery) (*domain.Page[domain.Usuario], error) {
		if first {
			first = false
			l.Invalidate()
			return stale, nil
		}
		return pageOf("new"), nil
	}

	if page, _ := l.Fetch(context.Background()); page == stale {
		t.Fatalf("response settling under an old epoch must be discarded")
	}
}

func TestListing_InvalidateClearsCache(t *testing.T) {
	l := NewListing("usuarios", func(ctx context.Context, q ListQuery) (*domain.Page[domain.Usuario], error) {
		return pageOf("alice"), nil
	}, nil, zerolog.Nop())

	if _, err := l.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if l.Current() == nil {
		t.Fatalf("expected cached page")
	}

	l.Invalidate()
	if l.Current() != nil {
		t.Fatalf("expected cache cleared after invalidation")
	}
}
