// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package datalog

import (
	"fmt"
	"io"
)

// StorageMode selects how node EDBs are laid out: one wide relation per
// label (row) or one relation per property joined by id (col).
type StorageMode string

const (
	// StorageRow emits one relation per label with all properties as columns.
	StorageRow StorageMode = "row"
	// StorageCol emits one unary id relation per label and one binary
	// relation per property (vertical decomposition).
	StorageCol StorageMode = "col"
)

// ParseStorageMode validates a storage mode string from the CLI or config.
func ParseStorageMode(s string) (StorageMode, error) {
	switch StorageMode(s) {
	case StorageRow, StorageCol:
		return StorageMode(s), nil
	}
	return "", fmt.Errorf("invalid storage mode %q: must be row or col", s)
}

// SinkSet hands out named writable sinks for output artifacts. The
// emitters never resolve paths or manage stream lifetime: the caller
// owns opening, flushing and closing of everything a SinkSet returns.
type SinkSet interface {
	// Create returns a fresh, truncating writer for a declaration
	// artifact. The caller closes it.
	Create(name string) (io.WriteCloser, error)

	// Append returns an appending writer for a fact artifact. Repeated
	// calls with the same name return the same underlying sink, and
	// re-running generation without clearing prior output accumulates
	// duplicate facts. That accumulation is a caller responsibility.
	Append(name string) (io.Writer, error)
}
