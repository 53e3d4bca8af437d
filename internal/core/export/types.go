package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Format is a supported download format.
type Format string

const (
	FormatExcel Format = "xlsx"
	FormatPDF   Format = "pdf"
)

// ParseFormat accepts the query-string spellings used by the admin dashboard.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "xlsx", "excel":
		return FormatExcel, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format: %s", raw)
}

// Exporter renders a Table in one file format.
type Exporter interface {
	Export(table *Table, w io.Writer) error
	ContentType() string
	Extension() string
}

// Table is a titled grid of already-formatted cells.
type Table struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Headers     []string
	Rows        [][]string
	// ColumnWidths maps a zero-based column to a spreadsheet width.
	ColumnWidths map[int]float64
	Style        Style
}

type Style struct {
	Landscape     bool
	HeaderBgColor string
	StripeColor   string
	FontSize      float64
}

func DefaultStyle() Style {
	return Style{
		HeaderBgColor: "#1E3A8A",
		StripeColor:   "#F2F4F8",
		FontSize:      9,
	}
}

// File is a rendered export ready to be served as an attachment.
type File struct {
	Data        []byte
	ContentType string
	Filename    string
}
