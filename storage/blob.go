package storage

import (
	"context"
	"io"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
)

// blobStore is the subset of *azblob.Storer used for persisting.
type blobStore interface {
	Put(ctx context.Context, identity string, source io.ReadSeekCloser, opts ...azblob.Option) (*azblob.WriteResponse, error)
}

// BlobPersister writes destinations as blobs, using the destination as the
// blob path.
type BlobPersister struct {
	log   logger.Logger
	store blobStore
	opts  Options
}

func NewBlobPersister(log logger.Logger, store blobStore, opts ...Option) (*BlobPersister, error) {
	if store == nil {
		return nil, ErrBlobStoreNotProvided
	}
	return &BlobPersister{log: log, store: store, opts: newOptions(opts...)}, nil
}

func (p *BlobPersister) Persist(ctx context.Context, data []byte, destination string) error {
	if destination == "" {
		return ErrDestinationRequired
	}

	var opts []azblob.Option
	if len(p.opts.Tags) > 0 {
		opts = append(opts, azblob.WithTags(p.opts.Tags))
	}
	if p.opts.FailIfExists {
		// no blob may match any etag, ie. the blob must not exist
		opts = append(opts, azblob.WithEtagNoneMatch("*"))
	}

	_, err := p.store.Put(ctx, destination, azblob.NewBytesReaderCloser(data), opts...)
	if err != nil {
		return err
	}
	p.log.Debugf("persisted %d bytes to blob %s", len(data), destination)
	return nil
}
