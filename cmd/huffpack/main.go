// Command huffpack builds prefix codes from a frequency table and packs text
// with them.
//
//	huffpack codes  --freqs table.yaml
//	huffpack encode --freqs table.yaml --input msg.txt --out msg.huf
//	huffpack encode --freqs table.yaml --input msg.txt --out blob://v1/huffman/msg.huf
//	huffpack tree   --freqs table.yaml
//	huffpack inspect --in msg.huf
//
// blob:// destinations are written to the Azure blob store configured by the
// usual development environment variables.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-huffman/freqtable"
	"github.com/forestrie/go-huffman/huffpack"
	"github.com/forestrie/go-huffman/storage"
	"github.com/urfave/cli/v2"
)

const (
	blobScheme       = "blob://"
	defaultContainer = "huffpack"
	serviceName      = "huffpack"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	var started bool
	app := &cli.App{
		Name:      "huffpack",
		Usage:     "build prefix codes and pack text with them",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "INFO",
				EnvVars: []string{"HUFFPACK_LOG_LEVEL"},
			},
			&cli.IntFlag{
				Name:    "cache-size",
				Usage:   "number of frequency tables whose codes are kept",
				Value:   huffpack.DefaultCacheSize,
				EnvVars: []string{"HUFFPACK_CACHE_SIZE"},
			},
		},
		Before: func(cctx *cli.Context) error {
			logger.New(cctx.String("log-level"))
			started = true
			return nil
		},
		After: func(cctx *cli.Context) error {
			if started {
				logger.OnExit()
			}
			return nil
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:  "codes",
			Usage: "print the code assigned to each symbol",
			Flags: []cli.Flag{
				&cli.PathFlag{Name: "freqs", Required: true, Usage: "YAML frequency table"},
			},
			Action: runCodes,
		},
		{
			Name:  "encode",
			Usage: "pack a text file and persist the envelope",
			Flags: []cli.Flag{
				&cli.PathFlag{Name: "freqs", Required: true, Usage: "YAML frequency table"},
				&cli.PathFlag{Name: "input", Required: true, Usage: "UTF-8 text to encode"},
				&cli.StringFlag{Name: "out", Required: true, Usage: "file path, or blob://<name>"},
				&cli.StringFlag{
					Name:    "container",
					Value:   defaultContainer,
					EnvVars: []string{"HUFFPACK_CONTAINER"},
				},
				&cli.BoolFlag{Name: "fail-if-exists", Usage: "refuse to replace an existing destination"},
				&cli.StringSliceFlag{Name: "tag", Usage: "key=value blob tag, may be repeated"},
			},
			Action: runEncode,
		},
		{
			Name:  "tree",
			Usage: "print the code tree, edges labelled with their bit",
			Flags: []cli.Flag{
				&cli.PathFlag{Name: "freqs", Required: true, Usage: "YAML frequency table"},
			},
			Action: runTree,
		},
		{
			Name:  "inspect",
			Usage: "print the header of an encoded envelope",
			Flags: []cli.Flag{
				&cli.PathFlag{Name: "in", Required: true},
			},
			Action: runInspect,
		},
	}
	return app
}

func newSession(cctx *cli.Context, opts ...huffpack.Option) (*huffpack.Session[rune], error) {
	log := logger.Sugar.WithServiceName(serviceName)
	opts = append(opts, huffpack.WithCacheSize(cctx.Int("cache-size")))
	return huffpack.NewSession[rune](log, opts...)
}

func readTable(path string) (map[rune]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return freqtable.Read(f)
}

func runCodes(cctx *cli.Context) error {
	freqs, err := readTable(cctx.Path("freqs"))
	if err != nil {
		return err
	}
	s, err := newSession(cctx)
	if err != nil {
		return err
	}
	codes, err := s.Codes(freqs)
	if err != nil {
		return err
	}
	for _, sym := range codes.Symbols() {
		fmt.Fprintf(cctx.App.Writer, "%q %s\n", sym, codes[sym].String())
	}
	return nil
}

func runEncode(cctx *cli.Context) error {
	freqs, err := readTable(cctx.Path("freqs"))
	if err != nil {
		return err
	}
	text, err := os.ReadFile(cctx.Path("input"))
	if err != nil {
		return err
	}

	tags, err := parseTags(cctx.StringSlice("tag"))
	if err != nil {
		return err
	}
	popts := []storage.Option{storage.WithTags(tags)}
	if cctx.Bool("fail-if-exists") {
		popts = append(popts, storage.WithFailIfExists())
	}

	log := logger.Sugar.WithServiceName(serviceName)
	destination := cctx.String("out")
	var persister storage.Persister
	if name, ok := strings.CutPrefix(destination, blobScheme); ok {
		store, err := azblob.NewDev(azblob.NewDevConfigFromEnv(), cctx.String("container"))
		if err != nil {
			return err
		}
		if persister, err = storage.NewBlobPersister(log, store, popts...); err != nil {
			return err
		}
		destination = name
	} else {
		persister = storage.NewFilePersister(log, popts...)
	}

	s, err := newSession(cctx, huffpack.WithPersister(persister))
	if err != nil {
		return err
	}
	return s.EncodeTo(context.Background(), freqs, []rune(string(text)), destination)
}

func runInspect(cctx *cli.Context) error {
	data, err := os.ReadFile(cctx.Path("in"))
	if err != nil {
		return err
	}
	s, err := newSession(cctx)
	if err != nil {
		return err
	}
	e, err := s.Unmarshal(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cctx.App.Writer, "version: %d\nsymbols: %d\nbits: %d\npadding: %d\nbytes: %d\n",
		e.Version, len(e.Frequencies), e.BitLength, e.Padding, len(e.Payload))
	return nil
}

func parseTags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	tags := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("tag %q: expected key=value", pair)
		}
		tags[k] = v
	}
	return tags, nil
}
