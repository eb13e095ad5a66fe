// Package catalog reads the frontend catalog that maps display titles to
// canonical ROM names. The catalog is an XML export whose root holds repeated
// <Game> records; only <Title> and <ApplicationPath> are consulted.
package catalog

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"

	"github.com/backmassage/mediamatch/internal/naming"
)

// Mapping maps a sanitized display title to a canonical ROM name. It is
// built once per run and read-only afterwards.
type Mapping map[string]string

// Lookup returns the canonical name registered for title. Asset base names
// are looked up as they appear on disk.
func (m Mapping) Lookup(title string) (string, bool) {
	canonical, ok := m[title]
	return canonical, ok
}

// ParseError reports a catalog that could not be read or decoded. Callers
// recover from it by continuing with an empty mapping.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("catalog: %v", e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// document matches any root element holding <Game> children.
type document struct {
	Games []game `xml:"Game"`
}

type game struct {
	Title           string `xml:"Title"`
	ApplicationPath string `xml:"ApplicationPath"`
}

// Parse decodes a catalog document. Records missing a title or an
// application path are skipped; a repeated title keeps its last record.
// On malformed input it returns an empty Mapping and a *ParseError.
func Parse(r io.Reader) (Mapping, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Mapping{}, &ParseError{Err: errors.Wrap(err, "decoding xml")}
	}
	m := make(Mapping, len(doc.Games))
	for _, g := range doc.Games {
		title := strings.TrimSpace(g.Title)
		appPath := strings.TrimSpace(g.ApplicationPath)
		if title == "" || appPath == "" {
			continue
		}
		canonical := naming.Stem(appPath)
		if canonical == "" {
			continue
		}
		m[naming.SanitizeTitle(title)] = canonical
	}
	return m, nil
}

// Load fetches the catalog at source (a local path or any afs URL) and
// parses it. Every failure is a *ParseError paired with an empty Mapping.
func Load(ctx context.Context, fs afs.Service, source string) (Mapping, error) {
	data, err := fs.DownloadWithURL(ctx, source)
	if err != nil {
		return Mapping{}, &ParseError{Source: source, Err: errors.Wrap(err, "reading catalog")}
	}
	m, err := Parse(bytes.NewReader(data))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Source = source
		}
		return Mapping{}, err
	}
	return m, nil
}

// PlatformName returns the platform namespace derived from a catalog source:
// the stem of its file name ("/data/Platforms/Nintendo 64.xml" gives
// "Nintendo 64"). An empty source yields "".
func PlatformName(source string) string {
	if source == "" {
		return ""
	}
	return naming.Stem(strings.TrimRight(filepath.ToSlash(source), "/"))
}
