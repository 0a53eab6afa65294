// Package exporter writes the stash in formats browsers can import.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kshyr/linkstash/internal/model"
)

// DefaultExportPath returns ~/Downloads/linkstash-YYYY-MM-DD.html.
func DefaultExportPath(now time.Time) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("linkstash-%s.html", now.Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the stash as a Netscape bookmark file, newest first.
func ExportHTML(stash *model.Stash) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>linkstash</TITLE>\n")
	b.WriteString("<H1>linkstash</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, link := range stash.Newest() {
		fmt.Fprintf(&b,
			"    <DT><A HREF=\"%s\">%s</A>\n",
			html.EscapeString(link.URL),
			html.EscapeString(link.Title),
		)
	}

	b.WriteString("</DL><p>\n")
	return b.String()
}

// WriteHTML exports the stash to path, creating parent directories.
func WriteHTML(path string, stash *model.Stash) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(ExportHTML(stash)), 0o644)
}
