package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"simplifier/internal/domain"
	"simplifier/internal/simplifier"
)

// WordMatcher decides the replacement for a single token.
type WordMatcher interface {
	Match(word string) simplifier.Match
}

// Stats counts what a processing run did.
type Stats struct {
	Lines    int
	Tokens   int
	Replaced int
	Unknown  int
	// Dropped counts tokens with no letters left after cleaning.
	Dropped int
}

func (s *Stats) add(o Stats) {
	s.Lines += o.Lines
	s.Tokens += o.Tokens
	s.Replaced += o.Replaced
	s.Unknown += o.Unknown
	s.Dropped += o.Dropped
}

// TextService rewrites text line by line through a WordMatcher.
type TextService struct {
	matcher WordMatcher
	logger  *slog.Logger
}

func NewTextService(matcher WordMatcher, logger *slog.Logger) *TextService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextService{matcher: matcher, logger: logger}
}

// SimplifyLine splits line on whitespace, simplifies each token and joins the
// results with single spaces. Tokens that clean to nothing are dropped.
func (s *TextService) SimplifyLine(line string) (string, Stats) {
	st := Stats{Lines: 1}
	fields := strings.Fields(line)
	out := make([]string, 0, len(fields))
	for _, tok := range fields {
		st.Tokens++
		m := s.matcher.Match(tok)
		switch {
		case m.Output == "":
			st.Dropped++
			continue
		case !m.Known:
			st.Unknown++
		case m.Replaced:
			st.Replaced++
		}
		out = append(out, m.Output)
	}
	return strings.Join(out, " "), st
}

// Process writes one simplified line to w for every line read from r.
func (s *TextService) Process(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var total Stats
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	bw := bufio.NewWriter(w)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		line, st := s.SimplifyLine(scanner.Text())
		total.add(st)
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return total, err
		}
	}
	if err := scanner.Err(); err != nil {
		return total, err
	}
	return total, bw.Flush()
}

// ErrSameFile is returned when the output path names the input file.
var ErrSameFile = errors.New("input and output are the same file")

// ProcessFile simplifies the file at in and writes the result to out,
// creating or truncating it. A missing input yields domain.ErrSourceNotFound;
// an out naming the input yields ErrSameFile and leaves the input untouched.
func (s *TextService) ProcessFile(ctx context.Context, in, out string) (Stats, error) {
	src, err := os.Open(in)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Stats{}, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, in)
		}
		return Stats{}, err
	}
	defer src.Close()

	if sameFile(src, in, out) {
		return Stats{}, fmt.Errorf("%w: %s", ErrSameFile, out)
	}

	dst, err := os.Create(out)
	if err != nil {
		return Stats{}, fmt.Errorf("create output %s: %w", out, err)
	}
	st, err := s.Process(ctx, src, dst)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return st, fmt.Errorf("simplify %s: %w", in, err)
	}
	s.logger.Info("simplification complete", "input", in, "output", out,
		"lines", st.Lines, "tokens", st.Tokens, "replaced", st.Replaced, "unknown", st.Unknown)
	return st, nil
}

func sameFile(src *os.File, in, out string) bool {
	if filepath.Clean(in) == filepath.Clean(out) {
		return true
	}
	srcInfo, err := src.Stat()
	if err != nil {
		return false
	}
	outInfo, err := os.Stat(out)
	if err != nil {
		return false
	}
	return os.SameFile(srcInfo, outInfo)
}
