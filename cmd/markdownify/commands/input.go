package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/markdownify/internal/logger"
	"github.com/jmylchreest/markdownify/pkg/fetcher"
)

// ErrInputTooLarge is returned when an input exceeds --max-input-size.
var ErrInputTooLarge = errors.New("input exceeds maximum size")

// source is a loaded input document.
type source struct {
	Name    string
	Content string
}

// readInput loads arg: "-" or "" reads stdin, an http(s) URL goes through
// the fetcher, anything else is a file path. maxSize of 0 means unlimited.
func readInput(ctx context.Context, arg string, stdin io.Reader, fetch FetchConfig, maxSize int64) (source, error) {
	switch {
	case arg == "" || arg == "-":
		data, err := readLimited(stdin, maxSize)
		if err != nil {
			return source{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return source{Name: "stdin", Content: string(data)}, nil

	case fetcher.IsURL(arg):
		f := fetcher.NewStatic(fetcher.StaticConfig{UserAgent: fetch.UserAgent, Timeout: fetch.Timeout})
		opts := fetcher.Options{}
		if maxSize > 0 {
			// One extra byte tells a full-size page from a truncated one.
			opts.MaxBodySize = int(maxSize) + 1
		}
		logger.Info("fetching", "url", arg)
		page, err := f.Fetch(ctx, arg, opts)
		if err != nil {
			return source{}, fmt.Errorf("failed to fetch %s: %w", arg, err)
		}
		if maxSize > 0 && int64(len(page.HTML)) > maxSize {
			return source{}, tooLarge(arg, maxSize)
		}
		logger.Debug("fetched", "url", page.URL, "title", page.Title, "bytes", len(page.HTML))
		return source{Name: page.URL, Content: page.HTML}, nil

	default:
		info, err := os.Stat(arg)
		if err != nil {
			return source{}, fmt.Errorf("failed to read input: %w", err)
		}
		if maxSize > 0 && info.Size() > maxSize {
			return source{}, tooLarge(arg, maxSize)
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return source{}, fmt.Errorf("failed to read input: %w", err)
		}
		return source{Name: arg, Content: string(data)}, nil
	}
}

func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, tooLarge("stdin", maxSize)
	}
	return data, nil
}

func tooLarge(name string, maxSize int64) error {
	return fmt.Errorf("%w: %s is larger than %s", ErrInputTooLarge, name, humanize.Bytes(uint64(maxSize)))
}

// writeOutput writes s to path, or to w when path is empty or "-". A
// trailing newline is added to non-empty output.
func writeOutput(w io.Writer, path, s string) error {
	if s != "" && s[len(s)-1] != '\n' {
		s += "\n"
	}
	if path == "" || path == "-" {
		_, err := io.WriteString(w, s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("wrote output", "path", path, "size", humanize.Bytes(uint64(len(s))))
	return nil
}
