// Package export renders question sets to downloadable documents.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/studykit/studykit/internal/questionset"
)

// Format names an export document type.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"

	// Recognised but not rendered.
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

var (
	// ErrUnknownFormat is returned for a format name that is not recognised.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrUnsupportedFormat is returned for recognised formats with no renderer.
	ErrUnsupportedFormat = errors.New("export format not supported")
)

// Formats lists the formats Render can produce.
func Formats() []Format {
	return []Format{FormatTXT, FormatJSON, FormatXLSX}
}

// ParseFormat normalises name into a Format.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")))
	switch f {
	case FormatTXT, FormatJSON, FormatXLSX, FormatPDF, FormatDOCX:
		return f, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownFormat)
}

// Render writes set to w in the given format. Correct answers are included
// only when includeAnswers is set.
func Render(w io.Writer, format Format, set *questionset.Model, includeAnswers bool) error {
	rows := set.ExportRows(includeAnswers)

	var err error
	switch format {
	case FormatTXT:
		err = renderText(w, set.Title(), rows, includeAnswers)
	case FormatJSON:
		err = renderJSON(w, set, rows)
	case FormatXLSX:
		err = renderXLSX(w, set.Title(), rows, includeAnswers)
	case FormatPDF, FormatDOCX:
		return fmt.Errorf("export %s: %w", format, ErrUnsupportedFormat)
	default:
		return fmt.Errorf("export %q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	return nil
}

// Filename suggests a file name for an exported set.
func Filename(title string, format Format) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "questions"
	}
	return name + "." + string(format)
}
