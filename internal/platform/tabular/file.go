package tabular

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadFile parses the table at path. A missing file reports found=false
// with no error so callers decide whether absence is fatal.
func ReadFile(path string) (table Table, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Table{}, false, nil
		}
		return Table{}, false, err
	}
	return Parse(data), true, nil
}

// WriteFileAtomic replaces path with data. The previous file stays intact
// until the rename, so a crash mid-write never leaves a truncated table.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
