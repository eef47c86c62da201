package bloom

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// WordSource feeds words into a filter under construction.
type WordSource interface {
	// Each calls fn for every word, stopping at the first error
	Each(ctx context.Context, fn func(word string) error) error
}

// Counter is implemented by sources able to estimate how many words they hold.
type Counter interface {
	Count(ctx context.Context) (uint64, error)
}

// FileWordSource reads one word per line. Lines are trimmed and blank lines skipped.
type FileWordSource struct {
	Path string
}

func (s FileWordSource) Each(ctx context.Context, fn func(word string) error) error {
	file, openErr := os.Open(s.Path)
	if openErr != nil {
		return errors.Wrapf(ErrMissingResource, "word list %q: %v", s.Path, openErr)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if err := fn(word); err != nil {
			return err
		}
	}
	return errors.Wrapf(scanner.Err(), "word list %q read failed", s.Path)
}

// Count returns the number of whitespace-delimited tokens in the file.
func (s FileWordSource) Count(ctx context.Context) (uint64, error) {
	return CountTokens(ctx, s.Path)
}

// CountTokens counts whitespace-delimited tokens in a text file.
func CountTokens(ctx context.Context, path string) (uint64, error) {
	file, openErr := os.Open(path)
	if openErr != nil {
		return 0, errors.Wrapf(ErrMissingResource, "word list %q: %v", path, openErr)
	}
	defer file.Close()

	var count uint64
	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		count++
	}
	return count, errors.Wrapf(scanner.Err(), "word list %q read failed", path)
}

// SliceWordSource serves words from memory.
type SliceWordSource []string

func (s SliceWordSource) Each(ctx context.Context, fn func(word string) error) error {
	for _, w := range s {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		word := strings.TrimSpace(w)
		if word == "" {
			continue
		}
		if err := fn(word); err != nil {
			return err
		}
	}
	return nil
}

func (s SliceWordSource) Count(_ context.Context) (uint64, error) {
	var count uint64
	for _, w := range s {
		count += uint64(len(strings.Fields(w)))
	}
	return count, nil
}
