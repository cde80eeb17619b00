package reader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/okian/pacer/internal/app"
)

// missingMark stands for a clock that is not visible.
const missingMark = "-"

// ParseLine parses "user opp [moves]". Without the moves column the move
// list counts as not observed. Blank lines and lines starting with '#'
// yield ok=false and no error.
func ParseLine(line string) (r app.Reading, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return app.Reading{}, false, nil
	}
	fields := strings.Fields(line)
	if len(fields) < 2 || len(fields) > 3 {
		return app.Reading{}, false, fmt.Errorf("%w: %q: want 2 or 3 fields, got %d", ErrMalformedLine, line, len(fields))
	}
	r.UserText = field(fields[0])
	r.OppText = field(fields[1])
	if len(fields) == 3 {
		n, err := strconv.Atoi(fields[2])
		if err != nil || n < 0 {
			return app.Reading{}, false, fmt.Errorf("%w: %q: bad move count", ErrMalformedLine, line)
		}
		r.MoveListSize = n
		r.MoveListSeen = true
	}
	return r, true, nil
}

func field(s string) *string {
	if s == missingMark {
		return nil
	}
	return &s
}

// LineReader samples a line-oriented stream such as stdin. A background
// scanner keeps the latest line; each Read returns whatever is current, the
// way the on-screen clocks are sampled regardless of how often they change.
type LineReader struct {
	src  io.Reader
	once sync.Once

	mu      sync.Mutex
	latest  *app.Reading
	pending error
	eof     bool
	served  bool
	readErr error
}

// NewLineReader wraps src. Scanning starts on the first Read.
func NewLineReader(src io.Reader) *LineReader {
	return &LineReader{src: src}
}

// Read returns the latest reading. Before the first line arrives it returns
// a reading with no clocks. A malformed line is reported once as
// ErrMalformedLine. After the stream ends and the final line has been
// served, Read returns an error matching io.EOF.
func (l *LineReader) Read(ctx context.Context) (app.Reading, error) {
	if err := ctx.Err(); err != nil {
		return app.Reading{}, err
	}
	l.once.Do(func() { go l.scan() })

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pending != nil {
		err := l.pending
		l.pending = nil
		return app.Reading{}, err
	}
	if l.eof && (l.served || l.latest == nil) {
		if l.readErr != nil {
			return app.Reading{}, l.readErr
		}
		return app.Reading{}, io.EOF
	}
	if l.latest == nil {
		return app.Reading{}, nil
	}
	l.served = true
	r := *l.latest
	r.UserText = copyText(r.UserText)
	r.OppText = copyText(r.OppText)
	return r, nil
}

func (l *LineReader) scan() {
	sc := bufio.NewScanner(l.src)
	for sc.Scan() {
		r, ok, err := ParseLine(sc.Text())
		l.mu.Lock()
		switch {
		case err != nil:
			l.pending = err
		case ok:
			l.latest = &r
			l.served = false
		}
		l.mu.Unlock()
	}
	l.mu.Lock()
	l.eof = true
	if err := sc.Err(); err != nil {
		l.readErr = fmt.Errorf("read clock stream: %w: %w", err, io.EOF)
	}
	l.mu.Unlock()
}
