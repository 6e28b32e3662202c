package csvbind

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LineSource abstracts over sequential line input. A parse call fully
// drains one LineSource and closes it on every exit path.
type LineSource interface {
	// Next yields the next logical line without its terminator. ok is
	// false at end of input; err reports I/O failures.
	Next() (line string, ok bool, err error)
	Close() error
}

// FileLines opens path as a LineSource. A failure to open maps to
// CodeFileOpen.
func FileLines(path string) (LineSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Issues{{
			Path:    "/",
			Code:    CodeFileOpen,
			Message: fmt.Sprintf("failed to open file: %s", path),
			Cause:   err,
		}}
	}
	return &readerSource{r: bufio.NewReader(f), closer: f}, nil
}

// ReaderLines wraps r as a LineSource. Closing it is a no-op unless r is
// an io.Closer.
func ReaderLines(r io.Reader) LineSource {
	src := &readerSource{r: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}
	return src
}

// readerSource reads newline-delimited lines with no length cap. A final
// line without a terminator is still yielded.
type readerSource struct {
	r      *bufio.Reader
	closer io.Closer
	done   bool
}

func (s *readerSource) Next() (string, bool, error) {
	if s.done {
		return "", false, nil
	}
	line, err := s.r.ReadString('\n')
	if err == io.EOF {
		s.done = true
		if line == "" {
			return "", false, nil
		}
		return trimEOL(line), true, nil
	}
	if err != nil {
		return "", false, err
	}
	return trimEOL(line), true, nil
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

func (s *readerSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
