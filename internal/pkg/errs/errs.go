// Package errs is the single entry point to cockroachdb/errors. Marks survive wrapping,
// so usecases tag infra failures once and handlers match them with Is.
package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

// Mark tags err with mark. A nil err yields mark itself so callers can mark unconditionally.
func Mark(err error, mark error) error {
	if err == nil {
		return mark
	}
	return cr.Mark(err, mark)
}

func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

func As(err error, target any) bool {
	return cr.As(err, target)
}

// ExtractStackLines renders err with its stack and keeps the first maxLines non-blank lines.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	var out []string
	for _, line := range strings.Split(fmt.Sprintf("%+v", err), "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		out = append(out, line)
		if maxLines > 0 && len(out) == maxLines {
			break
		}
	}
	return out
}
