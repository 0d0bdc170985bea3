// Package huffpack runs complete encoding sessions: frequency table to
// codes, codes to packed stream, stream to persisted envelope.
package huffpack

import (
	"bytes"
	"cmp"
	"context"
	"errors"

	"github.com/cespare/xxhash/v2"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-huffman/envelope"
	"github.com/forestrie/go-huffman/huffman"
	"github.com/forestrie/go-huffman/packer"
	"github.com/forestrie/go-huffman/storage"
	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 64

var ErrPersisterNotProvided = errors.New("huffpack: a persister was required but not provided")

type Options struct {
	Persister storage.Persister
	CacheSize int
}

type Option func(*Options)

func WithPersister(p storage.Persister) Option {
	return func(o *Options) {
		o.Persister = p
	}
}

// WithCacheSize sets how many distinct frequency tables keep their codes
// cached. Values below 1 select DefaultCacheSize.
func WithCacheSize(n int) Option {
	return func(o *Options) {
		o.CacheSize = n
	}
}

// Session encodes messages over symbols of type S. It is safe for
// concurrent use. Codes returned by a session are shared with its cache and
// must not be modified.
type Session[S cmp.Ordered] struct {
	log   logger.Logger
	opts  Options
	codec envelope.Codec
	cache *lru.Cache[uint64, cachedCodes[S]]
}

// cachedCodes keeps the encoded table alongside the codes so that a hash
// collision is detected rather than served.
type cachedCodes[S cmp.Ordered] struct {
	table []byte
	codes huffman.Codes[S]
}

func NewSession[S cmp.Ordered](log logger.Logger, opts ...Option) (*Session[S], error) {
	s := &Session[S]{log: log}
	for _, o := range opts {
		o(&s.opts)
	}
	if s.opts.CacheSize < 1 {
		s.opts.CacheSize = DefaultCacheSize
	}

	var err error
	if s.codec, err = envelope.NewCodec(); err != nil {
		return nil, err
	}
	if s.cache, err = lru.New[uint64, cachedCodes[S]](s.opts.CacheSize); err != nil {
		return nil, err
	}
	return s, nil
}

// Codes returns the code mapping for freqs, building it on a cache miss.
func (s *Session[S]) Codes(freqs map[S]uint64) (huffman.Codes[S], error) {
	if len(freqs) == 0 {
		// Build reports the precise error; there is nothing to cache.
		return huffman.Encode(freqs)
	}
	table, err := envelope.MarshalTable(s.codec, freqs)
	if err != nil {
		return nil, err
	}
	key := xxhash.Sum64(table)
	if hit, ok := s.cache.Get(key); ok && bytes.Equal(hit.table, table) {
		return hit.codes, nil
	}

	codes, err := huffman.Encode(freqs)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, cachedCodes[S]{table: table, codes: codes})
	s.log.Debugf("built codes for %d symbols", len(codes))
	return codes, nil
}

// Encode packs input with the codes for freqs. Every input symbol must
// appear in freqs.
func (s *Session[S]) Encode(freqs map[S]uint64, input []S) (envelope.Envelope[S], error) {
	codes, err := s.Codes(freqs)
	if err != nil {
		return envelope.Envelope[S]{}, err
	}
	stream, err := packer.Pack(codes, input)
	if err != nil {
		return envelope.Envelope[S]{}, err
	}
	return envelope.New(freqs, stream), nil
}

// Marshal encodes input and returns the serialized envelope.
func (s *Session[S]) Marshal(freqs map[S]uint64, input []S) ([]byte, error) {
	e, err := s.Encode(freqs, input)
	if err != nil {
		return nil, err
	}
	return envelope.Marshal(s.codec, e)
}

// EncodeTo encodes input and persists the envelope at destination.
func (s *Session[S]) EncodeTo(ctx context.Context, freqs map[S]uint64, input []S, destination string) error {
	if s.opts.Persister == nil {
		return ErrPersisterNotProvided
	}
	data, err := s.Marshal(freqs, input)
	if err != nil {
		return err
	}
	if err := s.opts.Persister.Persist(ctx, data, destination); err != nil {
		s.log.Infof("EncodeTo: persist %s: %v", destination, err)
		return err
	}
	s.log.Infof("encoded %d symbols into %d bytes at %s", len(input), len(data), destination)
	return nil
}

// Unmarshal decodes an envelope previously produced by Marshal. Only the
// header is interpreted; the payload is returned packed.
func (s *Session[S]) Unmarshal(data []byte) (envelope.Envelope[S], error) {
	return envelope.Unmarshal[S](s.codec, data)
}
