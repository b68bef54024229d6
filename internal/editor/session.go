// Package editor keeps one open table file and an editable text grid of its
// cells. Edits stay in the grid until Save rebuilds the table from it.
package editor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuannm99/icarusbin/internal/record"
	"github.com/tuannm99/icarusbin/internal/storage"
	"github.com/tuannm99/icarusbin/internal/textenc"
)

var (
	ErrNoDocument = errors.New("editor: no file opened")
	ErrCellRange  = errors.New("editor: cell out of range")
)

// Column describes one grid column.
type Column struct {
	Name string
	Type record.FieldType
}

type Session struct {
	table  *storage.Table
	path   string
	enc    textenc.Encoding
	header []Column
	grid   [][]string
	status string
	dirty  bool
	log    *slog.Logger
}

// NewSession returns a session that opens files with enc. A nil logger uses
// slog.Default().
func NewSession(enc textenc.Encoding, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{enc: enc, log: logger}
}

func (s *Session) Loaded() bool   { return s.table != nil }
func (s *Session) Path() string   { return s.path }
func (s *Session) Status() string { return s.status }
func (s *Session) Dirty() bool    { return s.dirty }

// Encoding is the encoding of the open document, or the one the next Open
// will use.
func (s *Session) Encoding() textenc.Encoding {
	if s.table != nil {
		return s.table.Encoding()
	}
	return s.enc
}

func (s *Session) setStatus(msg string, err error) {
	s.status = msg
	if err != nil {
		s.log.Warn(msg, "error", err)
		return
	}
	s.log.Info(msg)
}

// Open loads path and fills the grid. On failure the previous document, if
// any, stays open.
func (s *Session) Open(path string) error {
	tbl, err := storage.Open(path, s.enc)
	if err == nil {
		var header []Column
		var grid [][]string
		header, grid, err = fill(tbl)
		if err == nil {
			s.table, s.path, s.header, s.grid, s.dirty = tbl, path, header, grid, false
			s.setStatus(fmt.Sprintf("Loaded [%s]", path), nil)
			return nil
		}
	}
	s.setStatus(fmt.Sprintf("Failed to load file [%s]", path), err)
	return err
}

// fill reads every cell of tbl into text. A cell that cannot be read aborts
// the fill.
func fill(tbl *storage.Table) ([]Column, [][]string, error) {
	cols := int(tbl.ColCount())
	header := make([]Column, cols)
	for c := range header {
		header[c] = Column{Name: tbl.FieldName(c), Type: tbl.FieldType(c)}
	}

	grid := make([][]string, tbl.RowCount())
	for r := range grid {
		row := make([]string, cols)
		for c := range row {
			switch header[c].Type {
			case record.FieldFloat:
				f, err := tbl.Float(r, c)
				if err != nil {
					return nil, nil, err
				}
				row[c] = storage.CellText(f)
			case record.FieldString:
				str, err := tbl.String(r, c)
				if err != nil {
					return nil, nil, err
				}
				row[c] = str
			}
		}
		grid[r] = row
	}
	return header, grid, nil
}

// SetEncoding switches the document encoding and refills the grid from the
// table, dropping unsaved grid edits.
func (s *Session) SetEncoding(name string) error {
	if s.table == nil {
		s.setStatus("No BIN file opened", ErrNoDocument)
		return ErrNoDocument
	}
	if err := s.table.SetEncoding(name); err != nil {
		s.setStatus(fmt.Sprintf("Encoding %s can not be used, typo?", name), err)
		return err
	}
	s.enc = s.table.Encoding()

	header, grid, err := fill(s.table)
	if err != nil {
		s.setStatus(fmt.Sprintf("Failed to refill [%s]", s.path), err)
		return err
	}
	s.header, s.grid, s.dirty = header, grid, false
	s.setStatus(fmt.Sprintf("Encoding set to %s", s.enc.Name()), nil)
	return nil
}

// Header returns a copy of the column definitions.
func (s *Session) Header() []Column {
	return append([]Column(nil), s.header...)
}

// Rows returns a copy of the grid.
func (s *Session) Rows() [][]string {
	out := make([][]string, len(s.grid))
	for i, row := range s.grid {
		out[i] = append([]string(nil), row...)
	}
	return out
}

func (s *Session) checkCell(row, col int) error {
	if s.table == nil {
		return ErrNoDocument
	}
	if row < 0 || row >= len(s.grid) || col < 0 || col >= len(s.header) {
		return fmt.Errorf("%w: row %d col %d", ErrCellRange, row, col)
	}
	return nil
}

func (s *Session) Cell(row, col int) (string, error) {
	if err := s.checkCell(row, col); err != nil {
		return "", err
	}
	return s.grid[row][col], nil
}

// Set replaces the text of one grid cell. Float columns keep the text as
// typed; it is parsed on save.
func (s *Session) Set(row, col int, text string) error {
	if err := s.checkCell(row, col); err != nil {
		return err
	}
	s.grid[row][col] = text
	s.dirty = true
	return nil
}

// AppendRow adds an empty row and returns its index.
func (s *Session) AppendRow() (int, error) {
	if s.table == nil {
		return 0, ErrNoDocument
	}
	if len(s.grid) >= storage.MaxRecords {
		return 0, fmt.Errorf("%w: table already has %d rows", ErrCellRange, len(s.grid))
	}
	s.grid = append(s.grid, make([]string, len(s.header)))
	s.dirty = true
	return len(s.grid) - 1, nil
}

func (s *Session) DeleteRow(row int) error {
	if s.table == nil {
		return ErrNoDocument
	}
	if row < 0 || row >= len(s.grid) {
		return fmt.Errorf("%w: row %d", ErrCellRange, row)
	}
	s.grid = append(s.grid[:row], s.grid[row+1:]...)
	s.dirty = true
	return nil
}

// Save writes the grid back to the file it was opened from.
func (s *Session) Save() error {
	return s.SaveAs(s.path)
}

// SaveAs rebuilds the table from the grid and writes it to path, which
// becomes the document path on success.
func (s *Session) SaveAs(path string) error {
	if s.table == nil {
		s.setStatus("Error: No bin file opened", ErrNoDocument)
		return ErrNoDocument
	}

	cols := len(s.header)
	cells := make([]any, 0, len(s.grid)*cols)
	for _, row := range s.grid {
		for _, v := range row {
			cells = append(cells, v)
		}
	}

	err := s.table.SetData(len(s.grid), cols, cells)
	if err == nil {
		err = s.table.Save(path)
	}
	if err != nil {
		s.setStatus(fmt.Sprintf("Error: Cannot save file [%s]", path), err)
		return err
	}

	s.path = path
	s.dirty = false
	s.setStatus(fmt.Sprintf("File Saved: %s", path), nil)
	return nil
}
