// Package copier executes the copy manifest: it mirrors selected files
// from the vault root into the destination, preserving vault-relative
// subpaths.
package copier

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the lock file created in the destination root so two
// runs cannot interleave writes.
const LockFileName = ".vaultcopy.lock"

// Result describes one copied file.
type Result struct {
	// Path is the vault-relative slash path that was copied.
	Path string
	// Bytes is the number of bytes written.
	Bytes int64
	// Checksum is the hex-encoded SHA-256 of the copied content.
	Checksum string
}

// Copier copies manifest entries from a vault root to a destination
// root. It owns destination-side I/O only; selection decides what to
// copy before a Copier is ever invoked.
type Copier struct {
	root        string
	destination string
}

// New creates a Copier from the vault root to the destination root.
func New(root, destination string) *Copier {
	return &Copier{root: root, destination: destination}
}

// Copy copies every manifest entry, creating parent directories as
// needed. It holds an exclusive flock on the destination for the whole
// operation and fails fast if another run holds it. The first copy
// failure aborts; already copied files are reported in the error path
// only through the destination contents.
func (c *Copier) Copy(manifest []string) ([]Result, error) {
	if err := os.MkdirAll(c.destination, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination %s: %w", c.destination, err)
	}

	lock := flock.New(filepath.Join(c.destination, LockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock destination: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("destination %s is locked by another run", c.destination)
	}
	defer lock.Unlock()

	results := make([]Result, 0, len(manifest))
	for _, rel := range manifest {
		result, err := c.copyFile(rel)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// copyFile copies one vault-relative path and returns its result.
func (c *Copier) copyFile(rel string) (Result, error) {
	src := filepath.Join(c.root, filepath.FromSlash(rel))
	dst := filepath.Join(c.destination, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create %s: %w", dst, err)
	}

	hash := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, hash), in)
	if err != nil {
		out.Close()
		return Result{}, fmt.Errorf("failed to copy %s to %s: %w", rel, dst, err)
	}
	if err := out.Close(); err != nil {
		return Result{}, fmt.Errorf("failed to finalize %s: %w", dst, err)
	}

	return Result{
		Path:     rel,
		Bytes:    written,
		Checksum: hex.EncodeToString(hash.Sum(nil)),
	}, nil
}
