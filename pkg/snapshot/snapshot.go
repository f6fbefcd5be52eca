// Package snapshot reads transaction export files. An export is a JSON
// array of transactions, optionally gzip-compressed, named so that lexical
// order matches capture order (the exporter embeds a timestamp in the name).
package snapshot

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chris/splitwise-sync/pkg/models"
)

// ErrNotEnoughSnapshots is returned by LatestPair when the glob matches
// fewer than two files; reconciliation needs both a current and a previous
// snapshot.
var ErrNotEnoughSnapshots = errors.New("need at least two snapshot files")

// Load reads all transactions from a snapshot file. Files ending in .gz are
// decompressed transparently.
func Load(path string) ([]models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read gzip snapshot %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	var txns []models.Transaction
	if err := json.NewDecoder(r).Decode(&txns); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	return txns, nil
}

// LatestPair finds the two most recent snapshot files matching the glob
// pattern, by lexical sort of their names. It returns the older path first.
func LatestPair(pattern string) (prev, cur string, err error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", "", fmt.Errorf("bad snapshot glob %q: %w", pattern, err)
	}
	if len(matches) < 2 {
		return "", "", fmt.Errorf("%w: glob %q matched %d", ErrNotEnoughSnapshots, pattern, len(matches))
	}
	sort.Strings(matches)
	return matches[len(matches)-2], matches[len(matches)-1], nil
}

// Write stores transactions as a JSON array at path. The reconcile command
// uses it to emit the new-transaction subset as a side artifact.
func Write(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(txns); err != nil {
		return fmt.Errorf("failed to encode transactions to %s: %w", path, err)
	}
	return nil
}
