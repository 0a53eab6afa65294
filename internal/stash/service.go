// Package stash implements the linkstash commands on top of storage,
// enrichment and the OS opener.
package stash

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kshyr/linkstash/internal/checker"
	"github.com/kshyr/linkstash/internal/enricher"
	"github.com/kshyr/linkstash/internal/exporter"
	"github.com/kshyr/linkstash/internal/model"
	"github.com/kshyr/linkstash/internal/opener"
	"github.com/kshyr/linkstash/internal/render"
	"github.com/kshyr/linkstash/internal/storage"
)

// Selector lets the user choose one of links interactively.
// links are newest first; the returned index is a display index (1-based).
// ok is false when the user cancelled.
type Selector interface {
	Select(ctx context.Context, links []model.Link) (index int, ok bool, err error)
}

// LinkChecker probes links, newest first, returning one result per link.
type LinkChecker interface {
	Check(ctx context.Context, links []model.Link) []checker.Result
}

// Service runs stash commands. Each command loads the stash fresh,
// and commands that change it write it back in full.
type Service struct {
	storage   storage.Storage
	enricher  enricher.Enricher
	opener    opener.Opener
	clipboard opener.Clipboard
	selector  Selector
	checker   LinkChecker
	printer   *render.Printer
	logger    *log.Logger
	program   string
}

// ServiceParams holds parameters for creating a Service.
type ServiceParams struct {
	Storage   storage.Storage
	Enricher  enricher.Enricher
	Opener    opener.Opener
	Clipboard opener.Clipboard
	Selector  Selector
	Checker   LinkChecker
	Printer   *render.Printer
	Logger    *log.Logger
	Program   string // default program for Open; empty = OS default
}

// NewService creates a Service.
func NewService(params ServiceParams) *Service {
	logger := params.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		storage:   params.Storage,
		enricher:  params.Enricher,
		opener:    params.Opener,
		clipboard: params.Clipboard,
		selector:  params.Selector,
		checker:   params.Checker,
		printer:   params.Printer,
		logger:    logger,
		program:   params.Program,
	}
}

// Add enriches rawURL with its page title and stashes it as display index 1.
// Nothing is stored when enrichment fails.
func (s *Service) Add(ctx context.Context, rawURL string) error {
	url, err := model.NormalizeURL(rawURL)
	if err != nil {
		return err
	}

	title, err := s.enricher.Enrich(ctx, url)
	if err != nil {
		s.logger.Warn("could not read link", "url", url, "err", err)
		return err
	}

	link := model.NewLink(model.NewLinkParams{URL: url, Title: title})

	var stash *model.Stash
	err = s.withLock(func() error {
		stash = s.storage.Load()
		stash.Add(link)
		return s.storage.Save(stash)
	})
	if err != nil {
		return err
	}

	s.printer.Added(link.URL)
	s.printer.List(stash)
	return nil
}

// Delete removes the link at display index.
func (s *Service) Delete(index int) error {
	var (
		stash   *model.Stash
		removed model.Link
	)
	err := s.withLock(func() error {
		stash = s.storage.Load()

		var err error
		removed, err = stash.Remove(index)
		if err != nil {
			return err
		}
		return s.storage.Save(stash)
	})
	if err != nil {
		return err
	}

	s.printer.Removed(removed.URL)
	s.printer.List(stash)
	return nil
}

// List prints the stash newest first.
func (s *Service) List() error {
	s.printer.List(s.storage.Load())
	return nil
}

// Open launches the link at display index with program, the configured
// default program, or the OS default handler, in that order.
func (s *Service) Open(index int, program string) error {
	link, err := s.storage.Load().Get(index)
	if err != nil {
		return err
	}
	return s.open(link, program)
}

// Copy puts the URL at display index on the clipboard.
func (s *Service) Copy(index int) error {
	link, err := s.storage.Load().Get(index)
	if err != nil {
		return err
	}

	if err := s.clipboard.Copy(link.URL); err != nil {
		return err
	}

	s.printer.Copied(link.URL)
	return nil
}

// Pick lets the user choose a link interactively and opens it like Open.
func (s *Service) Pick(ctx context.Context, program string) error {
	stash := s.storage.Load()
	if stash.Len() == 0 {
		return nil
	}

	index, ok, err := s.selector.Select(ctx, stash.Newest())
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug("pick cancelled")
		return nil
	}

	link, err := stash.Get(index)
	if err != nil {
		return err
	}
	return s.open(link, program)
}

// Check probes every link and reports the ones that look dead.
// The stash is not modified.
func (s *Service) Check(ctx context.Context) error {
	stash := s.storage.Load()
	if stash.Len() == 0 {
		return nil
	}

	s.logger.Debug("checking links", "count", stash.Len())
	s.printer.Checked(s.checker.Check(ctx, stash.Newest()))
	return nil
}

// Export writes the stash as a browser bookmark file. An empty path
// means ~/Downloads/linkstash-<date>.html.
func (s *Service) Export(path string) error {
	if path == "" {
		var err error
		path, err = exporter.DefaultExportPath(time.Now())
		if err != nil {
			return fmt.Errorf("finding export path: %w", err)
		}
	}

	stash := s.storage.Load()
	if err := exporter.WriteHTML(path, stash); err != nil {
		return fmt.Errorf("exporting to %s: %w", path, err)
	}

	s.printer.Exported(path, stash.Len())
	return nil
}

func (s *Service) open(link model.Link, program string) error {
	if program == "" {
		program = s.program
	}

	var err error
	if program != "" {
		err = s.opener.OpenWith(program, link.URL)
	} else {
		err = s.opener.Open(link.URL)
	}
	if err != nil {
		return &opener.OpenError{URL: link.URL, Program: program, Err: err}
	}

	s.printer.Opened(link.URL, program)
	return nil
}

// withLock runs fn while holding the storage lock.
func (s *Service) withLock(fn func() error) error {
	unlock, err := s.storage.Lock()
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			s.logger.Warn("could not release stash lock", "err", err)
		}
	}()

	return fn()
}
