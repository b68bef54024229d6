package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tuannm99/icarusbin/internal/alias/util"
	"github.com/tuannm99/icarusbin/internal/textenc"
)

// Open reads and decodes the table file at path. A missing or unreadable
// file fails with ErrIO, bad content with ErrFormat.
func Open(path string, enc textenc.Encoding) (*Table, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	t, err := Decode(data, enc)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	slog.Debug("table opened", "path", path, "bytes", len(data))
	return t, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer util.CloseFileFunc(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	return data, nil
}

// Save encodes the table to path. The bytes go to a temporary file in the
// same directory which then replaces path, so a failed save leaves any
// existing file intact.
func (t *Table) Save(path string) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	n, err := t.WriteTo(tmp)
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", ErrIO, tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, tmpPath, err)
	}
	if err = os.Chmod(tmpPath, FileMode0644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", ErrIO, tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", ErrIO, path, err)
	}

	slog.Debug("table saved", "path", path, "bytes", n)
	return nil
}
