package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Dir serves tables from a local directory using the same key layout
// as the R2 bucket. Used in development and as the default source when
// no R2 credentials are configured.
type Dir struct {
	root string
}

// NewDir creates a directory-backed table source rooted at root.
func NewDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("store: data dir %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("store: data dir %q is not a directory", root)
	}
	return &Dir{root: root}, nil
}

// FetchTable reads the table stored under key, trying the plain file
// first and key + ".zst" second. Returns ErrNotFound when neither
// exists.
func (d *Dir) FetchTable(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := keySanity(key); err != nil {
		return "", err
	}

	path := filepath.Join(d.root, filepath.FromSlash(key))
	raw, err := os.ReadFile(path)
	if err == nil {
		return string(raw), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("store: read %q: %w", key, err)
	}

	compressed, err := os.ReadFile(path + CompressedSuffix)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("store: read %q: %w", key+CompressedSuffix, err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return "", fmt.Errorf("store: create zstd decoder: %w", err)
	}
	defer decoder.Close()

	plain, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return "", fmt.Errorf("store: decompress %q: %w", key+CompressedSuffix, err)
	}
	return string(plain), nil
}
