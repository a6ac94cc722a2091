package grid

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

const csvBufferSize = 32 * 1024

// CSVSheet renders a document as CSV. Title, subtitle and summary become
// comment lines around the tabular body.
type CSVSheet struct {
	buf *bufio.Writer
	csv *csv.Writer
}

// NewCSVSheet wraps the writer in a buffered CSV renderer.
func NewCSVSheet(w io.Writer) *CSVSheet {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &CSVSheet{buf: buf, csv: writer}
}

// Render writes the whole document and flushes the underlying writer.
func (s *CSVSheet) Render(doc Document) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("grid: csv sheet not initialised")
	}
	if doc.Title != "" {
		if err := s.writeComment("# " + doc.Title); err != nil {
			return err
		}
	}
	if doc.Subtitle != "" {
		if err := s.writeComment("# " + doc.Subtitle); err != nil {
			return err
		}
	}
	if err := s.csv.Write(doc.Header); err != nil {
		return err
	}
	for _, row := range doc.Rows {
		if err := s.csv.Write(cellValues(row)); err != nil {
			return err
		}
	}
	if err := s.csv.Write(cellValues(doc.Totals)); err != nil {
		return err
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if doc.Summary != "" {
		if err := s.writeComment("# " + doc.Summary); err != nil {
			return err
		}
	}
	return s.buf.Flush()
}

func (s *CSVSheet) writeComment(line string) error {
	if !strings.HasSuffix(line, "\r\n") {
		line = strings.TrimSuffix(line, "\n")
		line += "\r\n"
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	_, err := s.buf.WriteString(line)
	return err
}

func cellValues(cells []Cell) []string {
	values := make([]string, len(cells))
	for i, cell := range cells {
		values[i] = cell.Value
	}
	return values
}
