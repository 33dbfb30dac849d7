// Package trace reads page reference traces.
//
// A trace is a text stream whose first line is a header. Every following
// line holds one reference in the form
//
//	pageNumber,dirtyBit
//
// where dirtyBit is 0 for a read and 1 for a write.
package trace

import (
	"bufio"
	"errors"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/pagesim/mem/paging"
)

// DefaultMaxPages is the number of distinct page numbers accepted by default.
// Valid page numbers are 0 to DefaultMaxPages-1.
const DefaultMaxPages = 500

// maxLineLength is the longest line a Reader parses. Longer lines are
// skipped.
const maxLineLength = 4096

// ErrEmptyTrace is returned when a stream holds no valid reference.
var ErrEmptyTrace = errors.New("no valid page references found")

// Stats counts what a Reader has seen.
type Stats struct {
	Lines    int
	Records  int
	Skipped  int
	Rejected int
}

// A Reader parses a page reference trace.
type Reader struct {
	src      io.Reader
	logger   *log.Logger
	maxPages int
	stats    Stats
}

// NewReader creates a Reader that parses src.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src:      src,
		logger:   log.New(os.Stderr, "", 0),
		maxPages: DefaultMaxPages,
	}
}

// WithLogger sets the logger that receives warnings about rejected records.
func (r *Reader) WithLogger(logger *log.Logger) *Reader {
	r.logger = logger
	return r
}

// WithMaxPages sets the number of valid page numbers.
func (r *Reader) WithMaxPages(maxPages int) *Reader {
	r.maxPages = maxPages
	return r
}

// Stats returns the counters of the last Read.
func (r *Reader) Stats() Stats {
	return r.stats
}

// Read parses the whole stream. Lines that do not start with two comma
// separated integers are skipped, as are lines longer than the line buffer.
// Records with a page number out of range or a dirty bit other than 0 or 1
// are rejected with a warning. Neither stops the read.
func (r *Reader) Read() (paging.Trace, error) {
	r.stats = Stats{}
	trace := paging.Trace{}
	br := bufio.NewReaderSize(r.src, maxLineLength)

	for {
		line, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		r.stats.Lines++
		if r.stats.Lines == 1 {
			continue
		}

		if tooLong {
			r.stats.Skipped++
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ref, ok := r.parse(line)
		if !ok {
			continue
		}

		trace = append(trace, ref)
		r.stats.Records++
	}

	if len(trace) == 0 {
		return nil, ErrEmptyTrace
	}

	return trace, nil
}

// readLine returns the next line without its line ending. A line that does
// not fit in the buffer is consumed and reported as too long.
func readLine(br *bufio.Reader) (string, bool, error) {
	line, isPrefix, err := br.ReadLine()
	if err != nil {
		return "", false, err
	}

	if !isPrefix {
		return string(line), false, nil
	}

	for isPrefix {
		_, isPrefix, err = br.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return "", false, err
		}
	}

	return "", true, nil
}

// scanInt reads the optionally signed decimal integer that starts s after
// leading white space. Anything after the digits is returned as rest.
func scanInt(s string) (n int, rest string, ok bool) {
	s = strings.TrimLeft(s, " \t\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digits {
		return 0, s, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, s, false
	}

	return n, s[end:], true
}

func (r *Reader) parse(line string) (paging.PageReference, bool) {
	page, rest, ok := scanInt(line)
	if !ok {
		r.stats.Skipped++
		return paging.PageReference{}, false
	}

	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, ",") {
		r.stats.Skipped++
		return paging.PageReference{}, false
	}

	dirty, _, ok := scanInt(rest[1:])
	if !ok {
		r.stats.Skipped++
		return paging.PageReference{}, false
	}

	if page < 0 || page >= r.maxPages {
		r.stats.Rejected++
		r.logger.Printf("Warning: line %d: invalid page number %d, skipping",
			r.stats.Lines, page)

		return paging.PageReference{}, false
	}

	if dirty != 0 && dirty != 1 {
		r.stats.Rejected++
		r.logger.Printf(
			"Warning: line %d: invalid dirty bit %d for page %d, skipping",
			r.stats.Lines, dirty, page)

		return paging.PageReference{}, false
	}

	return paging.PageReference{Page: page, Dirty: dirty == 1}, true
}
