// Package storage provides the persistence collaborators that write an
// encoded envelope to a destination.
package storage

import (
	"context"
	"errors"
)

var (
	ErrDestinationRequired  = errors.New("storage: a destination is required")
	ErrDestinationExists    = errors.New("storage: destination already exists")
	ErrBlobStoreNotProvided = errors.New("storage: a blob store was required but not provided")
)

// Persister writes bytes to a destination. Implementations report every
// failure to the caller and never terminate the process.
type Persister interface {
	Persist(ctx context.Context, data []byte, destination string) error
}

type Options struct {
	// FailIfExists refuses to replace an existing destination.
	FailIfExists bool
	// Tags are attached to blobs. Ignored by the file persister.
	Tags map[string]string
}

type Option func(*Options)

func WithFailIfExists() Option {
	return func(o *Options) {
		o.FailIfExists = true
	}
}

func WithTags(tags map[string]string) Option {
	return func(o *Options) {
		o.Tags = tags
	}
}

func newOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
