// Package operation provides the traversal-filter-copy core of nfosync.
package operation

import (
	"context"

	"github.com/mirrorops/nfosync/pkg/config"
	"github.com/mirrorops/nfosync/pkg/status"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work executed by the Runner
type Operation interface {
	// Name returns a short name for logging
	Name() string
	// Execute runs the operation to completion
	Execute(ctx context.Context) error
}

// 🔧 Options contains the dependencies for an operation
type Options struct {
	// Config is the loaded run configuration
	Config *config.Config
	// StatusMgr tracks and reports per-file outcomes
	StatusMgr *status.Manager
	// Logger is used for structured logging
	Logger *zerolog.Logger
	// DryRun walks and reports without writing anything
	DryRun bool
}

// validate checks that required dependencies are present
func (opts *Options) validate() error {
	if opts.Config == nil {
		return errors.Errorf("config is required")
	}
	if opts.StatusMgr == nil {
		return errors.Errorf("status manager is required")
	}
	if opts.Logger == nil {
		return errors.Errorf("logger is required")
	}
	return nil
}
