// Package render formats command output for the terminal.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/kshyr/linkstash/internal/checker"
	"github.com/kshyr/linkstash/internal/enricher"
	"github.com/kshyr/linkstash/internal/model"
	"github.com/kshyr/linkstash/internal/opener"
	"github.com/kshyr/linkstash/internal/storage"
)

// Logo is shown at the top of the help text.
const Logo = `
by kshyr    __    _       __   _____ __             __
           / /   (_)___  / /__/ ___// /_____ ______/ /_
          / /   / / __ \/ //_/\__ \/ __/ __ ` + "`" + `/ ___/ __ \
         / /___/ / / / / ,<  ___/ / /_/ /_/ (__  ) / / /
        /_____/_/_/ /_/_/|_|/____/\__/\__,_/____/_/ /_/
`

// Printer writes styled output to a terminal (or any writer).
type Printer struct {
	w      io.Writer
	styles Styles
}

// NewPrinter creates a Printer whose color profile is detected from w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		styles: DefaultStyles(lipgloss.NewRenderer(w)),
	}
}

// Logo renders the banner.
func (p *Printer) Logo() string {
	return p.styles.Logo.Render(Logo)
}

// List prints links newest first, numbered by display index.
// Nothing is printed for an empty stash.
func (p *Printer) List(stash *model.Stash) {
	if stash.Len() == 0 {
		return
	}

	fmt.Fprintln(p.w)
	for i, link := range stash.Newest() {
		fmt.Fprintf(p.w, "    %s. %s\n", p.styles.Index.Render(strconv.Itoa(i+1)), p.styles.Title.Render(link.Title))
		fmt.Fprintf(p.w, "       %s\n", p.styles.URL.Render(link.URL))
		fmt.Fprintln(p.w)
	}
}

// Added confirms a new link.
func (p *Printer) Added(url string) {
	fmt.Fprintf(p.w, "\nAdded %s to stash.\n\n", p.styles.Notice.Render(url))
}

// Removed confirms a deleted link.
func (p *Printer) Removed(url string) {
	fmt.Fprintf(p.w, "\n%s is removed from stash.\n\n", p.styles.Notice.Render(url))
}

// Opened confirms a launched link. An empty program means the OS default.
func (p *Printer) Opened(url, program string) {
	if program == "" {
		fmt.Fprintf(p.w, "\nOpened '%s'\n\n", p.styles.Notice.Render(url))
		return
	}
	fmt.Fprintf(p.w, "\nOpened '%s' with %s\n\n", p.styles.Notice.Render(url), p.styles.Note.Render(program))
}

// Copied confirms a link copied to the clipboard.
func (p *Printer) Copied(url string) {
	fmt.Fprintf(p.w, "\nCopied '%s' to clipboard.\n\n", p.styles.Notice.Render(url))
}

// Exported confirms an export of n links to path.
func (p *Printer) Exported(path string, n int) {
	fmt.Fprintf(p.w, "\nExported %d links to %s\n\n", n, p.styles.Notice.Render(path))
}

// Checked lists the links that failed a check, then a summary line.
func (p *Printer) Checked(results []checker.Result) {
	failed := 0
	fmt.Fprintln(p.w)
	for _, r := range results {
		if r.Status == checker.Healthy {
			continue
		}
		failed++

		detail := r.Status.String()
		switch {
		case r.Reason != "":
			detail += ": " + r.Reason
		case r.StatusCode != 0:
			detail += fmt.Sprintf(" (%d)", r.StatusCode)
		}

		fmt.Fprintf(p.w, "    %s. %s\n", p.styles.Index.Render(strconv.Itoa(r.Index)), p.styles.Title.Render(r.Link.Title))
		fmt.Fprintf(p.w, "       %s\n", p.styles.URL.Render(r.Link.URL))
		fmt.Fprintf(p.w, "       %s\n\n", p.styles.Error.Render(detail))
	}

	if failed == 0 {
		fmt.Fprintf(p.w, "All %d links are reachable.\n\n", len(results))
		return
	}
	fmt.Fprintf(p.w, "%d of %d links need attention.\n\n", failed, len(results))
}

// Error prints the user-facing message for err.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w, Message(err, p.styles))
}

// Message maps an error to its user-facing text.
func Message(err error, styles Styles) string {
	var openErr *opener.OpenError

	switch {
	case errors.Is(err, model.ErrInvalidIndex):
		return styles.Error.Render("Invalid index!")
	case errors.Is(err, model.ErrInvalidURL):
		return styles.Error.Render("Invalid URL!")
	case errors.Is(err, enricher.ErrEnrich):
		return styles.Error.Render("Error reading link.")
	case errors.As(err, &openErr):
		return fmt.Sprintf("Error when opening '%s': %s",
			styles.Notice.Render(openErr.URL),
			styles.Error.Render(openErr.Err.Error()))
	case errors.Is(err, storage.ErrSave):
		return styles.Error.Render("Error " + err.Error())
	case errors.Is(err, opener.ErrNoClipboard):
		return fmt.Sprintf("Error copying to clipboard: %s", styles.Error.Render(err.Error()))
	default:
		return styles.Error.Render(fmt.Sprintf("Error: %v", err))
	}
}
