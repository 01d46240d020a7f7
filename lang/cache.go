package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// moduleCache stores parsed modules keyed by source hash. Modules are
// immutable after parsing, so a cached tree is safe to share between
// callers and evaluations.
var moduleCache sync.Map

// cacheEntry parses its source at most once, no matter how many callers
// race on the same hash.
type cacheEntry struct {
	once sync.Once
	mod  *Module
	err  error
}

// ParseReader reads all input from r and parses it as a module. Reads go
// through an asynchronous read-ahead buffer, and parse results are cached
// by content hash so repeated loads of the same source reuse one tree.
func ParseReader(ctx context.Context, r io.Reader) (*Module, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseModuleCached(string(data))
}

// ParseModuleCached parses a module, reusing a previously parsed tree for
// identical source text. Parse failures are cached as well.
func ParseModuleCached(source string) (*Module, error) {
	key := strconv.FormatUint(xxh3.HashString(source), 36)

	value, hit := moduleCache.LoadOrStore(key, new(cacheEntry))

	entry, ok := value.(*cacheEntry)
	if !ok {
		return ParseModule(source)
	}

	entry.once.Do(func() {
		entry.mod, entry.err = ParseModule(source)
	})

	if hit {
		slog.Default().Debug("module cache hit",
			slog.String("key", key),
			slog.Int("source_bytes", len(source)),
		)
	}

	return entry.mod, entry.err
}

// ClearCache discards all cached parse results.
func ClearCache() {
	moduleCache.Clear()
}
