package platform

import (
	"github.com/aretw0/devlog/pkg/core"
)

// New creates the note service on top of the configured store.
//
//	svc, err := devlog.New("~/.devlog/logs", devlog.WithLogger(logger))
//
// The URI argument is adapter-specific (a directory for 'fs').
func New(uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewService(repo, o.logger), nil
}
