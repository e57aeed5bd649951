package store

import (
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// FileStore keeps tables as CSV files in a directory, one file per
// table name.
type FileStore struct {
	Dir string
}

var _ Store = &FileStore{}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.Dir, name+".csv")
}

func (f *FileStore) Save(name string, q *mat.Dense) error {
	data, err := encode(q)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(f.path(name), data, 0644)
}

func (f *FileStore) Load(name string, rows, cols int) (*mat.Dense, error) {
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		return nil, err
	}
	return decode(name, data, rows, cols)
}
