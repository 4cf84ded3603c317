package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is the file-storage collaborator: accepts a binary, returns a
// reference path. Booking/session/payment state is untouched by its
// failures, so errors are kept distinguishable from domain errors.
type Store interface {
	Save(kind, originalName string, r io.Reader) (string, error)
}

// StorageError marks a collaborator failure (usually transient) so the
// API layer can surface it apart from state-machine errors.
type StorageError struct {
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("penyimpanan file gagal: %v", e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

// Local writes uploads under a base directory, one subdirectory per kind
// (payment-proofs, session-files, payout-proofs).
type Local struct {
	BaseDir string
}

func NewLocal(baseDir string) Local {
	return Local{BaseDir: baseDir}
}

func (l Local) Save(kind, originalName string, r io.Reader) (string, error) {
	dir := filepath.Join(l.BaseDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", StorageError{Err: err}
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", StorageError{Err: err}
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(path)
		return "", StorageError{Err: err}
	}

	// reference path stored on the record, served statically
	return "/" + filepath.ToSlash(path), nil
}
