// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSource is a Source backed by a file path.
type FileSource string

// Open opens the file for reading.
func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

// DirSinks is a datalog.SinkSet writing artifacts into a directory.
// Fact sinks are opened in append mode and cached so every record group
// for the same artifact shares one handle; Close releases them all.
type DirSinks struct {
	dir  string
	open map[string]*os.File
}

// NewDirSinks creates a DirSinks rooted at dir, creating it if needed.
func NewDirSinks(dir string) (*DirSinks, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &DirSinks{dir: dir, open: make(map[string]*os.File)}, nil
}

// Create returns a truncating writer for a declaration artifact.
func (d *DirSinks) Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(filepath.Join(d.dir, name))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	return f, nil
}

// Append returns a shared appending writer for a fact artifact.
func (d *DirSinks) Append(name string) (io.Writer, error) {
	if f, ok := d.open[name]; ok {
		return f, nil
	}
	f, err := os.OpenFile(filepath.Join(d.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	d.open[name] = f
	return f, nil
}

// Close closes every cached fact sink.
func (d *DirSinks) Close() error {
	var firstErr error
	for name, f := range d.open {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", name, err)
		}
		delete(d.open, name)
	}
	return firstErr
}
