// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program jdoc tokenizes, checks, and queries JSON documents.
//
// Usage:
//
//	jdoc [flags] tokens <file>
//	jdoc [flags] check <file>...
//	jdoc [flags] get <file> <path>...
//	jdoc [flags] clone <file> <path>...
//
// A file name of "-" reads standard input. Path elements are object member
// names, or array indices if they parse as integers.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/cursor"
	"github.com/goccy/go-yaml"
)

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

type settings struct {
	opts   jdoc.ReaderOptions
	chunk  int
	indent bool
}

func run(args []string, out io.Writer) int {
	log.SetPrefix("jdoc: ")
	log.SetFlags(0)

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	var (
		optFile   = fs.String("options", "", "Read reader options from this YAML file")
		comments  = fs.String("comments", "", `Comment handling: "disallow", "skip", or "allow"`)
		trailing  = fs.Bool("trailing", false, "Allow trailing commas in objects and arrays")
		multi     = fs.Bool("multi", false, "Allow multiple top-level values")
		maxDepth  = fs.Int("max-depth", 0, "Maximum nesting depth (0 means default)")
		chunkSize = fs.Int("chunk", 0, "Feed the tokenizer this many bytes at a time (0 means all)")
		doIndent  = fs.Bool("indent", false, "Pretty-print the output of clone")
	)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] tokens|check|get|clone <file> [path...]\n\nFlags:\n", args[0])
		fs.PrintDefaults()
	}
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return 2
	}

	var cfg settings
	if *optFile != "" {
		opts, err := loadOptions(*optFile)
		if err != nil {
			log.Printf("Loading options: %v", err)
			return 1
		}
		cfg.opts = opts
	}
	// Flags given explicitly override the options file.
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "comments":
			ch, err := jdoc.ParseCommentHandling(*comments)
			if err != nil {
				flagErr = err
			}
			cfg.opts.Comments = ch
		case "trailing":
			cfg.opts.AllowTrailingCommas = *trailing
		case "multi":
			cfg.opts.AllowMultipleValues = *multi
		case "max-depth":
			cfg.opts.MaxDepth = *maxDepth
		}
	})
	if flagErr == nil {
		flagErr = cfg.opts.Validate()
	}
	if flagErr != nil {
		log.Printf("Invalid options: %v", flagErr)
		return 2
	}
	cfg.chunk = *chunkSize
	cfg.indent = *doIndent

	var err error
	switch cmd, rest := fs.Arg(0), fs.Args()[1:]; cmd {
	case "tokens":
		err = runTokens(cfg, rest[0], out)
	case "check":
		err = runCheck(cfg, rest, out)
	case "get":
		err = runGet(cfg, rest[0], rest[1:], out)
	case "clone":
		err = runClone(cfg, rest[0], rest[1:], out)
	default:
		log.Printf("Unknown command %q", cmd)
		return 2
	}
	if err != nil {
		log.Print(err)
		return 1
	}
	return 0
}

// fileOptions is the format of an options file.
type fileOptions struct {
	TrailingCommas bool   `yaml:"trailing-commas"`
	Comments       string `yaml:"comments"`
	MaxDepth       int    `yaml:"max-depth"`
	MultipleValues bool   `yaml:"multiple-values"`
}

func loadOptions(path string) (jdoc.ReaderOptions, error) {
	f, err := os.Open(path)
	if err != nil {
		return jdoc.ReaderOptions{}, err
	}
	defer f.Close()
	var fo fileOptions
	if err := yaml.NewDecoder(f, yaml.DisallowUnknownField()).Decode(&fo); err != nil && !errors.Is(err, io.EOF) {
		return jdoc.ReaderOptions{}, fmt.Errorf("decode %q: %w", path, err)
	}
	ch, err := jdoc.ParseCommentHandling(fo.Comments)
	if err != nil {
		return jdoc.ReaderOptions{}, fmt.Errorf("%s: %w", path, err)
	}
	return jdoc.ReaderOptions{
		AllowTrailingCommas: fo.TrailingCommas,
		Comments:            ch,
		MaxDepth:            fo.MaxDepth,
		AllowMultipleValues: fo.MultipleValues,
	}, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// runTokens prints one line per token of the input. The input is fed to the
// tokenizer in blocks of cfg.chunk bytes, resuming after each block.
func runTokens(cfg settings, path string, out io.Writer) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}
	size := cfg.chunk
	if size <= 0 {
		size = len(data)
	}

	st := jdoc.NewReaderState(cfg.opts)
	var pending []byte
	for pos := 0; ; {
		end := min(pos+size, len(data))
		pending = append(pending, data[pos:end]...)
		pos = end
		final := pos == len(data)

		tz := jdoc.NewTokenizer(pending, final, st)
		for {
			err := tz.Read()
			if err == io.EOF {
				return nil
			} else if err == jdoc.ErrNeedMoreData {
				break
			} else if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			tok := tz.Token()
			fmt.Fprintf(out, "%-12s %-14s %q\n", tok.Location, tok.Kind, tok.Bytes())
		}
		st = tz.State()
		pending = append(pending[:0], pending[tz.Consumed():]...)
	}
}

func runCheck(cfg settings, paths []string, out io.Writer) error {
	var errs []error
	for _, path := range paths {
		doc, err := parseFile(cfg, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		vals, err := doc.Values()
		if err == nil {
			fmt.Fprintf(out, "%s: OK (%d values, %d rows)\n", path, len(vals), doc.Len())
		}
		doc.Close()
	}
	return errors.Join(errs...)
}

func runGet(cfg settings, path string, args []string, out io.Writer) error {
	doc, err := parseFile(cfg, path)
	if err != nil {
		return err
	}
	defer doc.Close()
	e, err := cursor.Path(doc.Root(), parsePath(args)...)
	if err != nil {
		return err
	}
	raw, err := e.Raw()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n", raw)
	return nil
}

// runClone copies the selected value out of its document and prints it in
// compact or indented form.
func runClone(cfg settings, path string, args []string, out io.Writer) error {
	doc, err := parseFile(cfg, path)
	if err != nil {
		return err
	}
	e, err := cursor.Path(doc.Root(), parsePath(args)...)
	if err != nil {
		doc.Close()
		return err
	}
	clone, err := e.Clone()
	doc.Close()
	if err != nil {
		return err
	}
	defer clone.Close()

	var w interface {
		jdoc.Writer
		Bytes() []byte
	} = new(jdoc.CompactWriter)
	if cfg.indent {
		w = new(jdoc.IndentWriter)
	}
	if err := clone.Root().Replay(w); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n", w.Bytes())
	return nil
}

func parseFile(cfg settings, path string) (*jdoc.Document, error) {
	var doc *jdoc.Document
	var err error
	if path == "-" {
		doc, err = jdoc.ParseReader(os.Stdin, cfg.opts)
	} else {
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		doc, err = jdoc.ParseReader(f, cfg.opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func parsePath(args []string) []any {
	path := make([]any, len(args))
	for i, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			path[i] = n
		} else {
			path[i] = arg
		}
	}
	return path
}
