package polysite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/polything/polysite/content"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "test_content.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	cleanup := func() {
		s.Close()
	}

	return s, cleanup
}

func testSnapshot() content.Snapshot {
	return content.Snapshot{
		Pages: []content.Entry{
			{Slug: "home", Title: "Home", Date: "2024-01-01"},
			{Slug: "about", Title: "About", Date: "2024-01-02"},
			{Slug: "marketing-strategy", Title: "Marketing Strategy", Date: "2024-01-03"},
			{
				Slug:  "test-page",
				Title: "Test Page",
				Date:  "2024-01-01",
				SEO: &content.SEO{
					Title:       "SEO Test Page",
					Description: "This is a test page for SEO validation purposes",
					Canonical:   "https://polything.co.uk/test-page",
					Schema: &content.Schema{
						Type:         "WebPage",
						Image:        "/images/seo-image.jpg",
						Author:       "Polything Ltd",
						PublishDate:  "2024-01-01",
						ModifiedDate: "2024-01-15",
						Breadcrumbs: []content.Breadcrumb{
							{Name: "Home", URL: "/"},
							{Name: "About", URL: "/about"},
							{Name: "Test Page", URL: "/test-page"},
						},
					},
				},
			},
		},
		Posts: []content.Entry{
			{Slug: "hello-world", Title: "Hello World", Date: "2024-03-01", Tags: []string{"news"}},
			{Slug: "second-post", Title: "Second Post", Date: "2024-03-05", Updated: "2024-03-09"},
		},
		Projects: []content.Entry{
			{Slug: "acme", Title: "Acme Rebrand", Date: "2024-02-01", Hero: &content.Hero{Title: "Acme", Subtitle: "A rebrand"}},
		},
	}
}

func TestNewStore(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if s == nil {
		t.Fatal("store should not be nil")
	}
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestSaveSnapshotAndList(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if err := s.SaveSnapshot(testSnapshot()); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	pages, err := s.ListEntries(content.KindPage)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(pages) != 4 {
		t.Fatalf("pages count = %d, want 4", len(pages))
	}
	// Snapshot order is preserved, not alphabetical.
	wantOrder := []string{"home", "about", "marketing-strategy", "test-page"}
	for i, slug := range wantOrder {
		if pages[i].Slug != slug {
			t.Errorf("pages[%d].Slug = %q, want %q", i, pages[i].Slug, slug)
		}
		if pages[i].Kind != content.KindPage {
			t.Errorf("pages[%d].Kind = %q, want %q", i, pages[i].Kind, content.KindPage)
		}
	}

	got := pages[3]
	if got.SEO == nil || got.SEO.Schema == nil {
		t.Fatal("SEO block should survive the round trip")
	}
	if got.SEO.Title != "SEO Test Page" {
		t.Errorf("SEO.Title = %q, want %q", got.SEO.Title, "SEO Test Page")
	}
	if n := len(got.SEO.Schema.Breadcrumbs); n != 3 {
		t.Errorf("breadcrumbs = %d, want 3", n)
	}
	if got.SEO.Schema.Breadcrumbs[2].URL != "/test-page" {
		t.Errorf("last breadcrumb URL = %q", got.SEO.Schema.Breadcrumbs[2].URL)
	}
}

func TestListEntriesEmptyKind(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	got, err := s.ListEntries(content.KindProject)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListEntries on empty store = %v, want empty non-nil slice", got)
	}
}

func TestReplaceKindOnlyTouchesThatKind(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if err := s.SaveSnapshot(testSnapshot()); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if err := s.ReplaceKind(content.KindPost, []content.Entry{{Slug: "only", Title: "Only"}}); err != nil {
		t.Fatalf("ReplaceKind failed: %v", err)
	}

	counts, err := s.Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if counts[content.KindPost] != 1 {
		t.Errorf("posts = %d, want 1", counts[content.KindPost])
	}
	if counts[content.KindPage] != 4 {
		t.Errorf("pages = %d, want 4", counts[content.KindPage])
	}
	if counts[content.KindProject] != 1 {
		t.Errorf("projects = %d, want 1", counts[content.KindProject])
	}
}

func TestReplaceKindRejectsDuplicateSlug(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	err := s.ReplaceKind(content.KindPage, []content.Entry{
		{Slug: "dup", Title: "One"},
		{Slug: "dup", Title: "Two"},
	})
	if err == nil {
		t.Fatal("expected duplicate slug to fail")
	}

	// The failed transaction must leave nothing behind.
	got, err := s.ListEntries(content.KindPage)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("pages after rollback = %d, want 0", len(got))
	}
}

func TestGetEntry(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if err := s.SaveSnapshot(testSnapshot()); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	got, err := s.GetEntry(content.KindProject, "acme")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Hero == nil || got.Hero.Subtitle != "A rebrand" {
		t.Errorf("Hero = %+v, want subtitle %q", got.Hero, "A rebrand")
	}

	// Same slug under another kind does not resolve.
	_, err = s.GetEntry(content.KindPost, "acme")
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestSnapshotFromStore(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if err := s.SaveSnapshot(testSnapshot()); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.Pages) != 4 || len(snap.Posts) != 2 || len(snap.Projects) != 1 {
		t.Errorf("snapshot sizes = %d/%d/%d, want 4/2/1", len(snap.Pages), len(snap.Posts), len(snap.Projects))
	}
	if snap.Posts[1].Updated != "2024-03-09" {
		t.Errorf("Updated = %q, want %q", snap.Posts[1].Updated, "2024-03-09")
	}
}

func TestDeleteEntry(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if err := s.SaveSnapshot(testSnapshot()); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if err := s.DeleteEntry(content.KindPage, "about"); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if _, err := s.GetEntry(content.KindPage, "about"); err != sql.ErrNoRows {
		t.Errorf("entry should be gone, got err: %v", err)
	}

	// Deleting a missing entry is not an error.
	if err := s.DeleteEntry(content.KindPage, "nonexistent"); err != nil {
		t.Errorf("DeleteEntry on nonexistent should not error, got: %v", err)
	}
}
