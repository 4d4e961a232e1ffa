package tmpl

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultWidth is the default zero-padded width of the file index.
const DefaultWidth = 4

// Pattern is the template-derived naming scheme for generated files:
// stem, zero-padded integer index, extension.
type Pattern struct {
	Dir   string
	Stem  string
	Ext   string
	Width int
}

// DerivePattern builds a Pattern from a template path by stripping at most
// two trailing extensions from its base name: "config.cym.tpl" yields stem
// "config" and extension ".cym". Generated files are placed in dir.
func DerivePattern(templatePath, dir string, width int) Pattern {
	base := filepath.Base(templatePath)

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	ext := filepath.Ext(stem)
	stem = strings.TrimSuffix(stem, ext)

	if width < 0 {
		width = 0
	}

	return Pattern{Dir: dir, Stem: stem, Ext: ext, Width: width}
}

// Name returns the file name for the given zero-based index.
func (p Pattern) Name(index int) string {
	return fmt.Sprintf("%s%0*d%s", p.Stem, p.Width, index, p.Ext)
}

// Path returns the full output path for the given zero-based index.
func (p Pattern) Path(index int) string {
	return filepath.Join(p.Dir, p.Name(index))
}

// Record describes one generated output file: its path, the text written,
// and the namespace bindings in effect when it was produced.
type Record struct {
	Path   string
	Text   string
	Values Namespace
}

// Emitter materializes completed output text into sequentially numbered
// files. It owns the session's produced-file list and advances the shared
// namespace index variable after each file.
type Emitter struct {
	pattern Pattern
	ns      Namespace
	table   *Table // nil disables the table log
	records []Record
}

// NewEmitter creates an Emitter over the shared namespace.
func NewEmitter(pattern Pattern, ns Namespace, table *Table) *Emitter {
	return &Emitter{pattern: pattern, ns: ns, table: table}
}

// Emit writes text verbatim to the next sequential file, records it, and
// advances the namespace index to the new file count. With a table log
// attached, it also appends one row describing the namespace bindings used.
func (e *Emitter) Emit(text string) (string, error) {
	index := len(e.records)
	path := e.pattern.Path(index)

	err := os.WriteFile(path, []byte(text), 0o644)
	if err != nil {
		return "", ErrWriteOutput.Wrap(err).
			With(slog.String("path", path))
	}

	e.records = append(e.records, Record{
		Path:   path,
		Text:   text,
		Values: e.ns.Snapshot(),
	})

	// The counter update survives frame unwinding: index always reports the
	// number of files produced so far for the current template.
	e.ns[IndexKey] = len(e.records)

	if e.table != nil {
		err := e.table.Row(e.pattern.Name(index), e.ns)
		if err != nil {
			return "", err
		}
	}

	return path, nil
}

// Records returns the files produced so far, in generation order.
func (e *Emitter) Records() []Record {
	return e.records
}

// Table appends one delimited row per generated file to a log artifact.
// The first row written emits a header naming the columns: the file name
// column followed by the sorted namespace keys as of the first file.
type Table struct {
	path string
	file *os.File
	cols []string
}

// NewTable creates a table log that writes to path.
// The file is not created until the first row is written.
func NewTable(path string) *Table {
	return &Table{path: path}
}

// Row appends one row for the named file, creating the artifact and writing
// the header on first use. Keys bound after the first file are not tracked;
// tracked keys missing from the namespace render as empty cells.
func (t *Table) Row(file string, ns Namespace) error {
	if t.file == nil {
		f, err := os.Create(t.path)
		if err != nil {
			return ErrWriteTable.Wrap(err).
				With(slog.String("path", t.path))
		}

		t.file = f
		t.cols = ns.SortedKeys()

		err = t.write(append([]string{"file"}, t.cols...))
		if err != nil {
			return err
		}
	}

	row := make([]string, 0, len(t.cols)+1)
	row = append(row, file)

	for _, col := range t.cols {
		if v, ok := ns[col]; ok {
			row = append(row, FormatValue(v))
		} else {
			row = append(row, "")
		}
	}

	return t.write(row)
}

// write emits one tab-delimited line.
func (t *Table) write(fields []string) error {
	_, err := fmt.Fprintln(t.file, strings.Join(fields, "\t"))
	if err != nil {
		return ErrWriteTable.Wrap(err).
			With(slog.String("path", t.path))
	}

	return nil
}

// Close closes the underlying artifact, if it was created.
func (t *Table) Close() error {
	if t == nil || t.file == nil {
		return nil
	}

	err := t.file.Close()
	t.file = nil

	return err
}
