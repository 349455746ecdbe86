package operation

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mirrorops/nfosync/pkg/config"
	"github.com/mirrorops/nfosync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewSyncOperation creates the operation that mirrors every folder pair
func NewSyncOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &syncOperation{opts: opts}, nil
}

// 📦 syncOperation walks each source tree and copies accepted files
type syncOperation struct {
	opts Options
}

func (op *syncOperation) Name() string {
	return "sync"
}

// 🏃 Execute processes every folder pair in config order. Pair and
// file level problems are tracked and logged; only an internal
// invariant failure aborts the run.
func (op *syncOperation) Execute(ctx context.Context) error {
	for _, pair := range op.opts.Config.FolderPairs {
		op.syncPair(ctx, pair)
	}
	return nil
}

// 📁 syncPair mirrors one (source, destination) pair
func (op *syncOperation) syncPair(ctx context.Context, pair config.FolderPair) {
	logger := op.opts.Logger

	info, err := os.Stat(pair.Source)
	switch {
	case os.IsNotExist(err):
		op.opts.StatusMgr.TrackPairError(ctx, pair.Source, errors.Errorf("source folder does not exist"))
		return
	case err != nil:
		op.opts.StatusMgr.TrackPairError(ctx, pair.Source, errors.Errorf("reading source folder: %w", err))
		return
	case !info.IsDir():
		op.opts.StatusMgr.TrackPairError(ctx, pair.Source, errors.Errorf("source is not a directory"))
		return
	}

	logger.Info().
		Str("source", pair.Source).
		Str("destination", pair.Destination).
		Msg("copying files")

	// The destination root is created up front even when the source
	// tree turns out to contain nothing copyable.
	if !op.opts.DryRun {
		if err := os.MkdirAll(pair.Destination, 0755); err != nil {
			op.opts.StatusMgr.TrackPairError(ctx, pair.Source, errors.Errorf("creating destination folder: %w", err))
			return
		}
	}

	walkErr := filepath.WalkDir(pair.Source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory: report it and keep walking the rest.
			logger.Error().Err(err).Str("path", path).Msg("reading directory")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		op.processFile(ctx, pair, path)
		return nil
	})
	if walkErr != nil {
		op.opts.StatusMgr.TrackPairError(ctx, pair.Source, errors.Errorf("walking source folder: %w", walkErr))
	}
}

// 📄 processFile applies the filters and the duplicate policy to one file
func (op *syncOperation) processFile(ctx context.Context, pair config.FolderPair, path string) {
	cfg := op.opts.Config
	op.opts.Logger.Debug().Str("path", path).Msg("processing file")

	rel, err := filepath.Rel(pair.Source, path)
	if err != nil {
		op.track(ctx, pair, path, 0, status.OutcomeFailed, errors.Errorf("computing relative path: %w", err))
		return
	}

	// Stat follows symlinks so a linked file is measured and copied by content.
	info, err := os.Stat(path)
	if err != nil {
		op.track(ctx, pair, rel, 0, status.OutcomeFailed, errors.Errorf("reading file info: %w", err))
		return
	}
	size := info.Size()

	if op.excludedByExt(filepath.Base(path)) {
		op.track(ctx, pair, rel, size, status.OutcomeExcludedExt, nil)
		return
	}
	if op.excludedByPattern(filepath.ToSlash(rel)) {
		op.track(ctx, pair, rel, size, status.OutcomeExcludedPattern, nil)
		return
	}
	if size > cfg.MaxSizeBytes() {
		op.track(ctx, pair, rel, size, status.OutcomeExcludedSize, nil)
		return
	}

	dstPath := filepath.Join(pair.Destination, rel)
	outcome := status.OutcomeCopied
	if _, err := os.Stat(dstPath); err == nil {
		if cfg.OnDuplicate == config.DuplicateSkip {
			op.track(ctx, pair, rel, size, status.OutcomeSkippedExisting, nil)
			return
		}
		outcome = status.OutcomeOverwritten
	} else if !os.IsNotExist(err) {
		// An unreadable destination (EACCES, a file where a directory
		// is expected) is a per-file failure, not a fresh copy.
		op.track(ctx, pair, rel, size, status.OutcomeFailed, errors.Errorf("reading destination file info: %w", err))
		return
	}

	if op.opts.DryRun {
		op.track(ctx, pair, rel, size, outcome, nil)
		return
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		op.track(ctx, pair, rel, size, status.OutcomeFailed, errors.Errorf("creating parent directories: %w", err))
		return
	}
	if err := copyFile(path, dstPath, info); err != nil {
		op.track(ctx, pair, rel, size, status.OutcomeFailed, err)
		return
	}

	op.track(ctx, pair, rel, size, outcome, nil)
}

// 🔍 excludedByExt reports whether the file name ends with an excluded
// extension. The comparison is case-insensitive; entries were
// lowercased at config load.
func (op *syncOperation) excludedByExt(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range op.opts.Config.ExcludeExts {
		if ext != "" && strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// 🔍 excludedByPattern matches the slash-relative path against the
// configured globs. Patterns were validated at config load, so a
// match error here only gets a debug line.
func (op *syncOperation) excludedByPattern(relPath string) bool {
	for _, pattern := range op.opts.Config.ExcludePatterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			op.opts.Logger.Debug().Str("pattern", pattern).Str("path", relPath).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

func (op *syncOperation) track(ctx context.Context, pair config.FolderPair, rel string, size int64, outcome status.Outcome, err error) {
	op.opts.StatusMgr.Track(ctx, status.FileResult{
		Source:  pair.Source,
		RelPath: rel,
		Size:    size,
		Outcome: outcome,
		Err:     err,
	})
}
