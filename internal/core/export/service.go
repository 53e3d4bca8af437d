package export

import (
	"bytes"
	"fmt"
	"strings"
)

// Service picks an exporter by format and names the resulting file.
type Service struct {
	exporters map[Format]Exporter
}

func NewService() *Service {
	return &Service{
		exporters: map[Format]Exporter{
			FormatExcel: NewExcelExporter(),
			FormatPDF:   NewPDFExporter(),
		},
	}
}

// Export renders table and names the file after baseName plus the generation date.
func (s *Service) Export(table *Table, format Format, baseName string) (*File, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}

	var buf bytes.Buffer
	if err := exporter.Export(table, &buf); err != nil {
		return nil, fmt.Errorf("%s export failed: %w", strings.ToUpper(string(format)), err)
	}

	name := baseName
	if !table.GeneratedAt.IsZero() {
		name += "-" + table.GeneratedAt.Format("20060102")
	}

	return &File{
		Data:        buf.Bytes(),
		ContentType: exporter.ContentType(),
		Filename:    name + exporter.Extension(),
	}, nil
}
