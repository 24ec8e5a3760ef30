package export

import (
	"encoding/csv"
	"io"

	"verdicto/internal/domain"
)

// BOM is the UTF-8 byte order mark Excel needs to detect the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting conflicts as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteConflicts writes one row per conflict, numbered from 1.
func (w *Writer) WriteConflicts(conflicts []domain.Conflict) error {
	for i := range conflicts {
		if err := w.csv.Write(conflictToRow(i+1, &conflicts[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, header and every conflict of comp to out.
func WriteCSV(out io.Writer, comp *domain.Comparison) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteConflicts(comp.Conflicts); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
