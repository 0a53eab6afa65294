package stash_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/golden"

	"github.com/kshyr/linkstash/internal/checker"
	"github.com/kshyr/linkstash/internal/enricher"
	"github.com/kshyr/linkstash/internal/model"
	"github.com/kshyr/linkstash/internal/opener"
	"github.com/kshyr/linkstash/internal/render"
	"github.com/kshyr/linkstash/internal/stash"
	"github.com/kshyr/linkstash/internal/storage"
)

// fakeEnricher returns canned titles; unknown URLs fail like an unreachable page.
type fakeEnricher struct {
	titles map[string]string
	calls  []string
}

func (f *fakeEnricher) Enrich(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	title, ok := f.titles[url]
	if !ok {
		return "", fmt.Errorf("%w: no such host", enricher.ErrEnrich)
	}
	return title, nil
}

type openCall struct {
	Program string
	URL     string
}

type fakeOpener struct {
	opened []openCall
	err    error
}

func (f *fakeOpener) Open(url string) error {
	if f.err != nil {
		return f.err
	}
	f.opened = append(f.opened, openCall{URL: url})
	return nil
}

func (f *fakeOpener) OpenWith(program, url string) error {
	if f.err != nil {
		return f.err
	}
	f.opened = append(f.opened, openCall{Program: program, URL: url})
	return nil
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) Copy(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type fakeSelector struct {
	index int
	ok    bool
	seen  []model.Link
}

func (f *fakeSelector) Select(_ context.Context, links []model.Link) (int, bool, error) {
	f.seen = links
	return f.index, f.ok, nil
}

// fakeChecker marks links in dead as 404s.
type fakeChecker struct {
	dead map[string]bool
	seen []model.Link
}

func (f *fakeChecker) Check(_ context.Context, links []model.Link) []checker.Result {
	f.seen = links
	results := make([]checker.Result, len(links))
	for i, link := range links {
		results[i] = checker.Result{Index: i + 1, Link: link, Status: checker.Healthy, StatusCode: 200}
		if f.dead[link.URL] {
			results[i].Status, results[i].StatusCode = checker.Dead, 404
		}
	}
	return results
}

// staticEnricher gives every URL the same title.
type staticEnricher string

func (e staticEnricher) Enrich(context.Context, string) (string, error) {
	return string(e), nil
}

type harness struct {
	svc       *stash.Service
	storage   *storage.JSONStorage
	enricher  *fakeEnricher
	opener    *fakeOpener
	clipboard *fakeClipboard
	selector  *fakeSelector
	checker   *fakeChecker
	out       *bytes.Buffer
	path      string
}

func newHarness(t *testing.T, program string) *harness {
	t.Helper()

	h := &harness{
		path: filepath.Join(t.TempDir(), "stash.json"),
		enricher: &fakeEnricher{titles: map[string]string{
			"https://a.test": "A",
			"https://b.test": "B",
			"https://c.test": "C",
			"https://d.test": "",
		}},
		opener:    &fakeOpener{},
		clipboard: &fakeClipboard{},
		selector:  &fakeSelector{},
		checker:   &fakeChecker{dead: map[string]bool{}},
		out:       &bytes.Buffer{},
	}
	logger := log.New(io.Discard)
	h.storage = storage.NewJSONStorage(h.path, logger)
	h.svc = stash.NewService(stash.ServiceParams{
		Storage:   h.storage,
		Enricher:  h.enricher,
		Opener:    h.opener,
		Clipboard: h.clipboard,
		Selector:  h.selector,
		Checker:   h.checker,
		Printer:   render.NewPrinter(h.out),
		Logger:    logger,
		Program:   program,
	})
	return h
}

// seed adds urls in order, oldest first, and clears the output.
func (h *harness) seed(t *testing.T, urls ...string) {
	t.Helper()
	for _, url := range urls {
		assert.NilError(t, h.svc.Add(context.Background(), url))
	}
	h.out.Reset()
}

func (h *harness) urls() []string {
	var urls []string
	for _, link := range h.storage.Load().Links {
		urls = append(urls, link.URL)
	}
	return urls
}

func (h *harness) output() string {
	return ansi.Strip(h.out.String())
}

func TestService_Scenario(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()

	assert.NilError(t, h.svc.Add(ctx, "https://a.test"))
	assert.DeepEqual(t, h.storage.Load().Links, []model.Link{{URL: "https://a.test", Title: "A"}})

	assert.NilError(t, h.svc.Add(ctx, "https://b.test"))
	assert.DeepEqual(t, h.storage.Load().Links, []model.Link{
		{URL: "https://a.test", Title: "A"},
		{URL: "https://b.test", Title: "B"},
	})

	assert.NilError(t, h.svc.List())

	assert.NilError(t, h.svc.Delete(1))
	assert.DeepEqual(t, h.storage.Load().Links, []model.Link{{URL: "https://a.test", Title: "A"}})

	assert.NilError(t, h.svc.Open(1, ""))
	assert.DeepEqual(t, h.opener.opened, []openCall{{URL: "https://a.test"}})

	golden.Assert(t, h.output(), "golden/scenario.golden")
}

func TestService_AddRoundTrip(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, "https://a.test", "https://b.test")

	assert.NilError(t, h.svc.Add(context.Background(), "https://c.test"))

	links := h.storage.Load().Links
	assert.Equal(t, links[len(links)-1], model.Link{URL: "https://c.test", Title: "C"})
}

func TestService_AddNormalizesURL(t *testing.T) {
	h := newHarness(t, "")

	assert.NilError(t, h.svc.Add(context.Background(), "  a.test "))

	assert.DeepEqual(t, h.enricher.calls, []string{"https://a.test"})
	assert.DeepEqual(t, h.urls(), []string{"https://a.test"})
}

func TestService_AddUntitledPageUsesURL(t *testing.T) {
	h := newHarness(t, "")

	assert.NilError(t, h.svc.Add(context.Background(), "https://d.test"))

	assert.DeepEqual(t, h.storage.Load().Links, []model.Link{{URL: "https://d.test", Title: "https://d.test"}})
}

func TestService_AddEnrichmentFailureLeavesStash(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, "https://a.test")

	err := h.svc.Add(context.Background(), "https://unreachable.test")
	assert.ErrorIs(t, err, enricher.ErrEnrich)

	assert.DeepEqual(t, h.urls(), []string{"https://a.test"})
	assert.Equal(t, h.output(), "")
}

func TestService_AddInvalidURL(t *testing.T) {
	h := newHarness(t, "")

	err := h.svc.Add(context.Background(), "   ")
	assert.ErrorIs(t, err, model.ErrInvalidURL)
	assert.Equal(t, len(h.enricher.calls), 0)

	_, statErr := os.Stat(h.path)
	assert.Assert(t, os.IsNotExist(statErr), "stash file should not be written")
}

func TestService_AddSaveFailure(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the stash directory should be makes every write fail
	blocker := filepath.Join(dir, "blocker")
	assert.NilError(t, os.WriteFile(blocker, nil, 0644))

	var out bytes.Buffer
	svc := stash.NewService(stash.ServiceParams{
		Storage:  storage.NewJSONStorage(filepath.Join(blocker, "stash.json"), log.New(io.Discard)),
		Enricher: &fakeEnricher{titles: map[string]string{"https://a.test": "A"}},
		Printer:  render.NewPrinter(&out),
		Logger:   log.New(io.Discard),
	})

	err := svc.Add(context.Background(), "https://a.test")
	assert.Assert(t, err != nil)
	assert.Equal(t, out.String(), "")
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		removed   string
		remaining []string
	}{
		{"index 1 removes newest", 1, "https://c.test", []string{"https://a.test", "https://b.test"}},
		{"index len removes oldest", 3, "https://a.test", []string{"https://b.test", "https://c.test"}},
		{"middle", 2, "https://b.test", []string{"https://a.test", "https://c.test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")
			h.seed(t, "https://a.test", "https://b.test", "https://c.test")

			assert.NilError(t, h.svc.Delete(tt.index))
			assert.DeepEqual(t, h.urls(), tt.remaining)
			assert.Check(t, is.Contains(h.output(), tt.removed+" is removed from stash."))
		})
	}
}

func TestService_InvalidIndexLeavesStash(t *testing.T) {
	for _, index := range []int{0, -1, 3} {
		t.Run(fmt.Sprintf("index %d", index), func(t *testing.T) {
			h := newHarness(t, "")
			h.seed(t, "https://a.test", "https://b.test")
			before, err := os.ReadFile(h.path)
			assert.NilError(t, err)

			assert.ErrorIs(t, h.svc.Delete(index), model.ErrInvalidIndex)
			assert.ErrorIs(t, h.svc.Open(index, ""), model.ErrInvalidIndex)
			assert.ErrorIs(t, h.svc.Copy(index), model.ErrInvalidIndex)

			after, err := os.ReadFile(h.path)
			assert.NilError(t, err)
			assert.DeepEqual(t, after, before)
			assert.Equal(t, len(h.opener.opened), 0)
			assert.Equal(t, h.clipboard.text, "")
			assert.Equal(t, h.output(), "")
		})
	}
}

func TestService_OperationsOnEmptyStash(t *testing.T) {
	h := newHarness(t, "")

	assert.NilError(t, h.svc.List())
	assert.Equal(t, h.output(), "")

	assert.ErrorIs(t, h.svc.Delete(1), model.ErrInvalidIndex)
	assert.ErrorIs(t, h.svc.Open(1, ""), model.ErrInvalidIndex)
	assert.NilError(t, h.svc.Pick(context.Background(), ""))
	assert.Equal(t, len(h.selector.seen), 0)
}

func TestService_ListIsNewestFirst(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, "https://a.test", "https://b.test", "https://c.test")

	assert.NilError(t, h.svc.List())

	want := "\n" +
		"    1. C\n       https://c.test\n\n" +
		"    2. B\n       https://b.test\n\n" +
		"    3. A\n       https://a.test\n\n"
	assert.Equal(t, h.output(), want)
}

func TestService_OpenProgramPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		given      string
		want       openCall
	}{
		{"os default", "", "", openCall{URL: "https://b.test"}},
		{"configured program", "firefox", "", openCall{Program: "firefox", URL: "https://b.test"}},
		{"given program wins", "firefox", "lynx", openCall{Program: "lynx", URL: "https://b.test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.configured)
			h.seed(t, "https://a.test", "https://b.test")

			assert.NilError(t, h.svc.Open(1, tt.given))
			assert.DeepEqual(t, h.opener.opened, []openCall{tt.want})
		})
	}
}

func TestService_OpenFailure(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, "https://a.test")
	h.opener.err = errors.New("exec: \"xdg-open\": executable file not found in $PATH")

	err := h.svc.Open(1, "")

	var openErr *opener.OpenError
	assert.Assert(t, errors.As(err, &openErr))
	assert.Equal(t, openErr.URL, "https://a.test")
	assert.Equal(t, h.output(), "")
}

func TestService_Copy(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, "https://a.test", "https://b.test")

	assert.NilError(t, h.svc.Copy(2))
	assert.Equal(t, h.clipboard.text, "https://a.test")
	assert.Equal(t, h.output(), "\nCopied 'https://a.test' to clipboard.\n\n")
}

func TestService_CopyFailure(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, "https://a.test")
	h.clipboard.err = opener.ErrNoClipboard

	assert.ErrorIs(t, h.svc.Copy(1), opener.ErrNoClipboard)
}

func TestService_Pick(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, "https://a.test", "https://b.test", "https://c.test")
	h.selector.index, h.selector.ok = 2, true

	assert.NilError(t, h.svc.Pick(context.Background(), "lynx"))

	assert.Equal(t, len(h.selector.seen), 3)
	assert.Equal(t, h.selector.seen[0].URL, "https://c.test")
	assert.DeepEqual(t, h.opener.opened, []openCall{{Program: "lynx", URL: "https://b.test"}})
}

func TestService_PickCancelled(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, "https://a.test")
	h.selector.ok = false

	assert.NilError(t, h.svc.Pick(context.Background(), ""))
	assert.Equal(t, len(h.opener.opened), 0)
	assert.Equal(t, h.output(), "")
}

func TestService_Check(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, "https://a.test", "https://b.test")
	h.checker.dead["https://a.test"] = true
	before, err := os.ReadFile(h.path)
	assert.NilError(t, err)

	assert.NilError(t, h.svc.Check(context.Background()))

	assert.Equal(t, h.checker.seen[0].URL, "https://b.test")
	assert.Equal(t, h.output(), "\n    2. A\n       https://a.test\n       dead (404)\n\n1 of 2 links need attention.\n\n")

	after, err := os.ReadFile(h.path)
	assert.NilError(t, err)
	assert.Equal(t, string(after), string(before))
}

func TestService_CheckEmpty(t *testing.T) {
	h := newHarness(t, "")

	assert.NilError(t, h.svc.Check(context.Background()))
	assert.Check(t, is.Nil(h.checker.seen))
	assert.Equal(t, h.output(), "")
}

func TestService_Export(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, "https://a.test", "https://b.test")
	path := filepath.Join(t.TempDir(), "out", "bookmarks.html")

	assert.NilError(t, h.svc.Export(path))

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(string(data), `<A HREF="https://b.test">B</A>`))
	assert.Equal(t, h.output(), "\nExported 2 links to "+path+"\n\n")
}

func TestService_ExportFailure(t *testing.T) {
	h := newHarness(t, "")
	h.seed(t, "https://a.test")
	blocker := filepath.Join(t.TempDir(), "file")
	assert.NilError(t, os.WriteFile(blocker, nil, 0o644))

	err := h.svc.Export(filepath.Join(blocker, "bookmarks.html"))
	assert.ErrorContains(t, err, "exporting to")
	assert.Equal(t, h.output(), "")
}

func TestService_ConcurrentAddsKeepEveryLink(t *testing.T) {
	const n = 20
	path := filepath.Join(t.TempDir(), "stash.json")
	logger := log.New(io.Discard)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// One service per goroutine, like separate linkstash runs
			svc := stash.NewService(stash.ServiceParams{
				Storage:  storage.NewJSONStorage(path, logger),
				Enricher: staticEnricher("Page"),
				Printer:  render.NewPrinter(io.Discard),
				Logger:   logger,
			})
			errs <- svc.Add(context.Background(), fmt.Sprintf("https://%d.test", i))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NilError(t, err)
	}

	got := storage.NewJSONStorage(path, logger).Load()
	assert.Equal(t, got.Len(), n)

	seen := map[string]bool{}
	for _, link := range got.Links {
		seen[link.URL] = true
	}
	assert.Equal(t, len(seen), n)
}
