package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/devlog/pkg/adapters/fs"
	"github.com/aretw0/devlog/pkg/core"
)

// Init prepares the note store based on the provided configuration.
// The 'uri' argument is adapter-specific (a directory for 'fs').
//
// It returns the configured core.Repository.
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.repository != nil {
		return o.repository, nil
	}

	var repo core.Repository
	var err error

	switch o.adapter {
	case "fs":
		repo, err = initFS(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return repo, nil
}

// initFS builds the filesystem adapter.
func initFS(path string, o *options) (core.Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("notes directory is not set")
	}

	mustExist, _ := o.config["must_exist"].(bool)
	pattern, _ := o.config["pattern"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	if o.logger != nil {
		o.logger.Debug("opening note store", "path", path, "pattern", pattern)
	}

	return fs.NewRepository(fs.Config{
		Path:         path,
		Pattern:      pattern,
		MustExist:    mustExist,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
}
