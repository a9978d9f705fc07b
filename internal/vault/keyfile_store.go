// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-chamber/internal/crypto"
)

// KeyFileStore is the durable persistence contract for a key-file (C1):
// load the existing file, or report its absence, and write a replacement
// atomically. Implementations must guarantee that a crash mid-write never
// leaves a torn file on disk.
type KeyFileStore interface {
	// Load reads and decodes the key-file. It returns (nil, nil) if no
	// key-file exists yet — first-launch bootstrap then calls
	// [crypto.NewKeyFile] and [KeyFileStore.Save].
	Load() (*crypto.KeyFile, error)

	// Save atomically persists kf, replacing any previous contents.
	Save(kf *crypto.KeyFile) error
}

// FileKeyFileStore persists a key-file as an opaque binary file at a fixed
// path (spec.md §6, e.g. "data/chamber.bin").
type FileKeyFileStore struct {
	path string
}

// NewFileKeyFileStore returns a [FileKeyFileStore] rooted at path.
func NewFileKeyFileStore(path string) *FileKeyFileStore {
	return &FileKeyFileStore{path: path}
}

// Load implements [KeyFileStore].
func (s *FileKeyFileStore) Load() (*crypto.KeyFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("vault: reading key-file: %w", err)
	}

	kf, err := crypto.UnmarshalKeyFile(data)
	if err != nil {
		return nil, fmt.Errorf("vault: decoding key-file %s: %w", s.path, err)
	}

	return kf, nil
}

// Save implements [KeyFileStore]. It writes to a temp file in the same
// directory, fsyncs it, then renames it over the target path, so a crash
// mid-write can never produce a torn file (spec.md §4.1).
func (s *FileKeyFileStore) Save(kf *crypto.KeyFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("vault: creating key-file directory: %w", err)
	}

	data, err := kf.Marshal()
	if err != nil {
		return fmt.Errorf("vault: encoding key-file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".chamber-*.tmp")
	if err != nil {
		return fmt.Errorf("vault: creating temp key-file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("vault: writing temp key-file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("vault: fsyncing temp key-file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("vault: closing temp key-file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return fmt.Errorf("vault: setting key-file permissions: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("vault: renaming key-file into place: %w", err)
	}

	return nil
}
