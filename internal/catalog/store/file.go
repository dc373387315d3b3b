// Package store persists the product catalog in a single JSON file that is
// read and rewritten wholesale on every mutation.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gorosso-backend/internal/catalog"
)

const fileMode = 0o644

// File is the catalog store. Read and parse failures degrade to an empty
// catalog, write failures are logged only; callers never see an error.
// The mutex serializes read-modify-write cycles within this process.
type File struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

func NewFile(path string, logger *slog.Logger) *File {
	return &File{path: path, logger: logger}
}

func (f *File) ReadAll() []catalog.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readLocked()
}

func (f *File) WriteAll(products []catalog.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeLocked(products)
}

func (f *File) Append(p catalog.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeLocked(append(f.readLocked(), p))
}

// RemoveByID reports whether a product with the given id was removed.
func (f *File) RemoveByID(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	products := f.readLocked()
	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return false
	}
	f.writeLocked(kept)
	return true
}

func (f *File) Health() error {
	_, err := os.Stat(filepath.Dir(f.path))
	return err
}

func (f *File) readLocked() []catalog.Product {
	data, err := os.ReadFile(f.path)
	if err != nil {
		// A store that does not exist yet is an empty store.
		if !errors.Is(err, fs.ErrNotExist) {
			f.logger.Error("read products file", "path", f.path, "error", err)
		}
		return []catalog.Product{}
	}

	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		f.logger.Error("parse products file", "path", f.path, "error", err)
		return []catalog.Product{}
	}
	if products == nil {
		return []catalog.Product{}
	}
	return products
}

func (f *File) writeLocked(products []catalog.Product) {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		f.logger.Error("marshal products", "error", err)
		return
	}
	if err := os.WriteFile(f.path, data, fileMode); err != nil {
		f.logger.Error("write products file", "path", f.path, "error", err)
	}
}
