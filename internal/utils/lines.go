package utils

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineReader reads newline-terminated lines and caps how much of each line it
// keeps, so one huge line cannot stall or abort the reader.
type LineReader struct {
	r     *bufio.Reader
	limit int
	line  int
}

// NewLineReader returns a LineReader that keeps at most limit bytes of a line.
func NewLineReader(r io.Reader, limit int) *LineReader {
	return &LineReader{r: bufio.NewReader(r), limit: limit}
}

// Line returns the 1-based number of the line last returned by Next.
func (lr *LineReader) Line() int {
	return lr.line
}

// Next returns the next line without its "\n" or "\r\n" terminator. A line longer
// than the cap is drained to its end, truncated to the cap, and reported with
// tooLong set. Next returns io.EOF once the input is exhausted.
func (lr *LineReader) Next() (line string, tooLong bool, err error) {
	var buf []byte
	started := false
	for {
		chunk, isPrefix, err := lr.r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && started {
				break
			}
			return "", false, err
		}
		started = true
		if room := lr.limit - len(buf); len(chunk) > room {
			tooLong = true
			chunk = chunk[:max(room, 0)]
		}
		buf = append(buf, chunk...)
		if !isPrefix {
			break
		}
	}
	lr.line++
	return strings.TrimSuffix(string(buf), "\r"), tooLong, nil
}
