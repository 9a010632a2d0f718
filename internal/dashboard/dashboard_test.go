package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/starford/portal/internal/apperr"
	"github.com/starford/portal/internal/models"
	"github.com/starford/portal/internal/store"
)

type fakeChecker struct {
	up  map[string]bool
	got []string
}

func (f *fakeChecker) Check(_ context.Context, url string) bool {
	f.got = append(f.got, url)
	return f.up[url]
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "dashboard.json"), slog.New(slog.NewJSONHandler(io.Discard, nil)))
	st.Load()
	return st
}

func intPtr(v int) *int { return &v }

func TestCategoryLinkScenario(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)
	cats := NewCategories(st)
	links := NewLinks(st, nil)

	tools, err := cats.Create(ctx, "Tools")
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}
	if tools.ID != 1 || tools.Order != 0 || tools.Private || tools.IsDefault {
		t.Errorf("category = %+v", tools)
	}

	router, err := links.Create(ctx, LinkInput{Name: "Router", URL: "http://192.168.1.1", CategoryID: intPtr(1)})
	if err != nil {
		t.Fatalf("Create link: %v", err)
	}
	if router.ID != 1 || router.CategoryID == nil || *router.CategoryID != 1 {
		t.Errorf("link = %+v", router)
	}

	if err := cats.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete category: %v", err)
	}
	for _, c := range cats.List(ctx) {
		if c.ID == 1 {
			t.Error("category 1 still listed")
		}
	}
	got, err := links.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get link: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("categoryId = %d, want nil", *got.CategoryID)
	}
}

func TestDeleteCategory_OrphansOnlyItsLinks(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)
	cats := NewCategories(st)
	links := NewLinks(st, nil)

	a, _ := cats.Create(ctx, "A")
	b, _ := cats.Create(ctx, "B")
	for i := 0; i < 3; i++ {
		if _, err := links.Create(ctx, LinkInput{Name: "a", URL: "http://a", CategoryID: intPtr(a.ID)}); err != nil {
			t.Fatal(err)
		}
	}
	_, _ = links.Create(ctx, LinkInput{Name: "b", URL: "http://b", CategoryID: intPtr(b.ID)})

	before := len(cats.List(ctx))
	if err := cats.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if after := len(cats.List(ctx)); after != before-1 {
		t.Errorf("categories = %d, want %d", after, before-1)
	}

	orphans := 0
	for _, l := range links.List(ctx) {
		switch {
		case l.CategoryID == nil:
			orphans++
		case *l.CategoryID != b.ID:
			t.Errorf("link %d points at %d", l.ID, *l.CategoryID)
		}
	}
	if orphans != 3 {
		t.Errorf("orphans = %d, want 3", orphans)
	}
	if len(links.List(ctx)) != 4 {
		t.Error("deleting a category must not delete links")
	}
}

func TestDeleteCategory_Errors(t *testing.T) {
	ctx := context.Background()
	cats := NewCategories(testStore(t))

	err := cats.Delete(ctx, models.DefaultCategoryID)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("delete default err = %v, want forbidden", err)
	}
	if err := cats.Delete(ctx, 42); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("delete missing err = %v, want not found", err)
	}
	if n := len(cats.List(ctx)); n != 1 {
		t.Errorf("categories = %d, want 1", n)
	}
}

func TestCategoryList_SortedWithDefaultFirst(t *testing.T) {
	ctx := context.Background()
	cats := NewCategories(testStore(t))
	for _, name := range []string{"one", "two", "three", "four"} {
		if _, err := cats.Create(ctx, name); err != nil {
			t.Fatal(err)
		}
	}
	list := cats.List(ctx)
	if !list[0].IsDefault {
		t.Errorf("first category = %+v, want default", list[0])
	}
	for i := 1; i < len(list); i++ {
		if list[i].Order < list[i-1].Order {
			t.Errorf("order not ascending at %d: %d < %d", i, list[i].Order, list[i-1].Order)
		}
	}
}

func TestCategoryCreate_RejectsBlankName(t *testing.T) {
	cats := NewCategories(testStore(t))
	_, err := cats.Create(context.Background(), "   ")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if apperr.Message(err, "") != "name is required" {
		t.Errorf("message = %q", apperr.Message(err, ""))
	}
}

func TestReorder(t *testing.T) {
	ctx := context.Background()
	cats := NewCategories(testStore(t))
	a, _ := cats.Create(ctx, "A")
	b, _ := cats.Create(ctx, "B")
	c, _ := cats.Create(ctx, "C")

	out, err := cats.Reorder(ctx, []OrderAssignment{
		{ID: c.ID, Order: 0},
		{ID: a.ID, Order: 2},
		{ID: b.ID, Order: 1},
		{ID: 999, Order: 0},
		{ID: models.DefaultCategoryID, Order: 10},
	})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	want := []string{models.DefaultCategoryName, "C", "B", "A"}
	for i, name := range want {
		if out[i].Name != name {
			t.Errorf("pos %d = %q, want %q", i, out[i].Name, name)
		}
	}
	list := cats.List(ctx)
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("List pos %d = %q, want %q", i, list[i].Name, name)
		}
	}

	_, err = cats.Reorder(ctx, []OrderAssignment{{ID: b.ID, Order: 5}, {ID: a.ID, Order: -5}})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("negative order: err = %v, want validation error", err)
	}
	list = cats.List(ctx)
	if !list[0].IsDefault {
		t.Errorf("default category not first after rejected reorder: %+v", list[0])
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("rejected reorder changed pos %d to %q", i, list[i].Name)
		}
	}
}

func TestCategoryList_DefaultPinnedRegardlessOfOrder(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)
	cats := NewCategories(st)
	if _, err := cats.Create(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	err := st.Update(func(doc *models.Document) error {
		doc.Categories[0].Order = 50
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	list := cats.List(ctx)
	if !list[0].IsDefault || list[1].Name != "A" {
		t.Errorf("list = %+v, want default first", list)
	}
}

func TestSetPrivacyAndRename(t *testing.T) {
	ctx := context.Background()
	cats := NewCategories(testStore(t))
	a, _ := cats.Create(ctx, "A")

	got, err := cats.SetPrivacy(ctx, a.ID, true)
	if err != nil || !got.Private {
		t.Fatalf("SetPrivacy = %+v, %v", got, err)
	}
	if _, err := cats.SetPrivacy(ctx, 77, true); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("SetPrivacy missing err = %v", err)
	}

	renamed, err := cats.Rename(ctx, a.ID, "  Media ")
	if err != nil || renamed.Name != "Media" || !renamed.Private {
		t.Errorf("Rename = %+v, %v", renamed, err)
	}
}

func TestCountersNeverRepeat(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)
	cats := NewCategories(st)
	links := NewLinks(st, nil)

	seenLinks := map[int]bool{}
	seenCats := map[int]bool{}
	for i := 0; i < 5; i++ {
		l, err := links.Create(ctx, LinkInput{Name: "n", URL: "u"})
		if err != nil {
			t.Fatal(err)
		}
		if seenLinks[l.ID] {
			t.Fatalf("link id %d reused", l.ID)
		}
		seenLinks[l.ID] = true
		if err := links.Delete(ctx, l.ID); err != nil {
			t.Fatal(err)
		}

		c, err := cats.Create(ctx, "c")
		if err != nil {
			t.Fatal(err)
		}
		if seenCats[c.ID] {
			t.Fatalf("category id %d reused", c.ID)
		}
		seenCats[c.ID] = true
		if err := cats.Delete(ctx, c.ID); err != nil {
			t.Fatal(err)
		}
	}
}

func TestConcurrentCreatesGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	links := NewLinks(testStore(t), nil)

	var wg sync.WaitGroup
	ids := make(chan int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l, err := links.Create(ctx, LinkInput{Name: "n", URL: "u"})
			if err == nil {
				ids <- l.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != 20 {
		t.Errorf("created %d links, want 20", len(seen))
	}
}

func TestLinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	links := NewLinks(testStore(t), nil)
	_, _ = links.Create(ctx, LinkInput{Name: "keep", URL: "http://keep"})
	before := links.List(ctx)

	l, err := links.Create(ctx, LinkInput{Name: " NAS ", URL: " http://nas.local ", CategoryID: intPtr(3)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.Name != "NAS" || l.URL != "http://nas.local" || l.UpdatedAt != nil {
		t.Errorf("created = %+v", l)
	}

	u, err := links.Update(ctx, l.ID, LinkInput{Name: "NAS2", URL: "http://nas2.local"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if u.ID != l.ID || !u.CreatedAt.Equal(l.CreatedAt) || u.UpdatedAt == nil || u.CategoryID != nil {
		t.Errorf("updated = %+v", u)
	}

	if err := links.Delete(ctx, l.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	after := links.List(ctx)
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Errorf("links after round trip = %+v, want %+v", after, before)
	}
}

func TestLinkErrors(t *testing.T) {
	ctx := context.Background()
	links := NewLinks(testStore(t), nil)

	if _, err := links.Create(ctx, LinkInput{Name: "", URL: "http://x"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank name err = %v", err)
	}
	if _, err := links.Create(ctx, LinkInput{Name: "x", URL: "  "}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank url err = %v", err)
	}
	if _, err := links.Update(ctx, 9, LinkInput{Name: "x", URL: "y"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("update missing err = %v", err)
	}
	if err := links.Delete(ctx, 9); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("delete missing err = %v", err)
	}
	if len(links.List(ctx)) != 0 {
		t.Error("failed operations must not create links")
	}
}

func TestCheckStatusDelegates(t *testing.T) {
	fc := &fakeChecker{up: map[string]bool{"http://up": true}}
	links := NewLinks(testStore(t), fc)
	ctx := context.Background()

	if !links.CheckStatus(ctx, " http://up ") {
		t.Error("expected up")
	}
	if links.CheckStatus(ctx, "http://down") {
		t.Error("expected down")
	}
	if links.CheckStatus(ctx, "") {
		t.Error("blank url should be down")
	}
	if len(fc.got) != 2 {
		t.Errorf("checker calls = %v", fc.got)
	}
}

func TestCoerceCategoryID(t *testing.T) {
	tests := []struct {
		in   any
		want *int
	}{
		{float64(3), intPtr(3)},
		{"4", intPtr(4)},
		{" 5 ", intPtr(5)},
		{"", nil},
		{"null", nil},
		{"abc", nil},
		{nil, nil},
		{1.5, nil},
		{true, nil},
	}
	for _, tt := range tests {
		got := CoerceCategoryID(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("CoerceCategoryID(%v) = %d, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("CoerceCategoryID(%v) = %v, want %d", tt.in, got, *tt.want)
		}
	}
}

func TestColorConfig(t *testing.T) {
	ctx := context.Background()
	s := NewSettings(testStore(t))
	before := s.ColorConfig(ctx)

	if _, err := s.SetColorConfig(ctx, models.ColorConfig{PrimaryColor: "bad"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if s.ColorConfig(ctx) != before {
		t.Error("invalid color changed stored value")
	}

	if _, err := s.SetColorConfig(ctx, models.ColorConfig{PrimaryColor: "#ABCDEF"}); err != nil {
		t.Fatalf("SetColorConfig: %v", err)
	}
	if got := s.ColorConfig(ctx).PrimaryColor; got != "#ABCDEF" {
		t.Errorf("primaryColor = %q", got)
	}
}

func TestScalarSettings(t *testing.T) {
	ctx := context.Background()
	s := NewSettings(testStore(t))

	if _, err := s.SetSiteTitle(ctx, " "); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank title err = %v", err)
	}
	if got := s.SiteTitle(ctx); got != models.DefaultSiteTitle {
		t.Errorf("title = %q", got)
	}
	if _, err := s.SetSiteTitle(ctx, " Lab "); err != nil {
		t.Fatal(err)
	}
	if got := s.SiteTitle(ctx); got != "Lab" {
		t.Errorf("title = %q", got)
	}

	if _, err := s.SetHomepageMessage(ctx, ""); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank message err = %v", err)
	}
	if _, err := s.SetHomepageMessage(ctx, "Hi there"); err != nil {
		t.Fatal(err)
	}
	if got := s.HomepageMessage(ctx); got != "Hi there" {
		t.Errorf("message = %q", got)
	}
}

func TestChatConfig(t *testing.T) {
	ctx := context.Background()
	s := NewSettings(testStore(t))

	if _, err := s.SetChatConfig(ctx, models.ChatConfig{Provider: "openai"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("unknown provider err = %v", err)
	}
	if _, err := s.SetChatConfig(ctx, models.ChatConfig{Provider: "flowise"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("flowise without apiUrl err = %v", err)
	}

	got, err := s.SetChatConfig(ctx, models.ChatConfig{Provider: "Ollama", OllamaBaseURL: "http://gpu:11434/", OllamaModel: "qwen"})
	if err != nil {
		t.Fatalf("SetChatConfig: %v", err)
	}
	if got.Provider != models.ProviderOllama || got.OllamaBaseURL != "http://gpu:11434" {
		t.Errorf("config = %+v", got)
	}
	if s.ChatConfig(ctx) != got {
		t.Error("stored config differs from returned config")
	}
}

func TestFilterConfig(t *testing.T) {
	ctx := context.Background()
	s := NewSettings(testStore(t))

	if _, err := s.SetFilterConfig(ctx, models.FilterConfig{Enabled: true}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("enabled without keyword err = %v", err)
	}
	got, err := s.SetFilterConfig(ctx, models.FilterConfig{Enabled: false})
	if err != nil {
		t.Fatal(err)
	}
	if got.Keyword != models.DefaultFilterKeyword {
		t.Errorf("keyword = %q, want default", got.Keyword)
	}
	if _, err := s.SetFilterConfig(ctx, models.FilterConfig{Enabled: true, Keyword: "###"}); err != nil {
		t.Fatal(err)
	}
	if cfg := s.FilterConfig(ctx); !cfg.Enabled || cfg.Keyword != "###" {
		t.Errorf("config = %+v", cfg)
	}
}
