package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
)

// FilePersister writes destinations as local files. Each write goes to a
// uniquely named temporary file in the destination directory which is then
// renamed into place, so readers never observe a partial file.
type FilePersister struct {
	log  logger.Logger
	opts Options
}

func NewFilePersister(log logger.Logger, opts ...Option) *FilePersister {
	return &FilePersister{log: log, opts: newOptions(opts...)}
}

func (p *FilePersister) Persist(ctx context.Context, data []byte, destination string) error {
	if destination == "" {
		return ErrDestinationRequired
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if p.opts.FailIfExists {
		_, err := os.Stat(destination)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrDestinationExists, destination)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(destination), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, destination); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	p.log.Debugf("persisted %d bytes to %s", len(data), destination)
	return nil
}
