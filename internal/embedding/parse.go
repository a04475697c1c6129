package embedding

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"simplifier/internal/domain"
)

// DefaultPreviewSize is the number of entries kept in a LoadReport preview.
const DefaultPreviewSize = 10

// maxLineBytes bounds a single embeddings row.
const maxLineBytes = 16 * 1024 * 1024

// ParseOptions tunes how sources are parsed.
// A zero PreviewSize means DefaultPreviewSize; a negative one disables the preview.
type ParseOptions struct {
	PreviewSize int
	Logger      *slog.Logger
}

func (o ParseOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o ParseOptions) previewSize() int {
	if o.PreviewSize < 0 {
		return 0
	}
	if o.PreviewSize == 0 {
		return DefaultPreviewSize
	}
	return o.PreviewSize
}

// ReadEmbeddingsFile opens path and parses it with ParseEmbeddings.
// A missing file yields domain.ErrSourceNotFound.
func ReadEmbeddingsFile(path string, opts ParseOptions) (*Vocabulary, domain.LoadReport, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, domain.LoadReport{Source: path}, err
	}
	defer f.Close()
	opts.logger().Info("loading embeddings", "path", path)
	vocab, report, err := ParseEmbeddings(f, opts)
	report.Source = path
	if err != nil {
		return nil, report, fmt.Errorf("read embeddings %s: %w", path, err)
	}
	return vocab, report, nil
}

// ParseEmbeddings reads `word,v1,...,vN` rows. Rows with fewer than two fields,
// an empty word, an unparsable or non-finite component, or a length different
// from the first valid row are skipped and recorded in the report. Duplicate words keep the last row.
func ParseEmbeddings(r io.Reader, opts ParseOptions) (*Vocabulary, domain.LoadReport, error) {
	log := opts.logger()
	var report domain.LoadReport
	vectors := make(map[string]domain.Embedding)
	dim := 0

	skip := func(line int, word, reason string) {
		report.Skipped = append(report.Skipped, domain.Skip{Line: line, Word: word, Reason: reason})
		log.Warn("skipping embedding row", "line", line, "word", word, "reason", reason)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := splitRow(line)
		word := ""
		if len(parts) > 0 {
			word = strings.ToLower(strings.TrimSpace(parts[0]))
		}
		if len(parts) < 2 {
			skip(lineNo, word, "too few fields")
			continue
		}
		if word == "" {
			skip(lineNo, word, "empty word")
			continue
		}
		vec, err := parseVector(parts[1:])
		if err != nil {
			skip(lineNo, word, err.Error())
			continue
		}
		if dim == 0 {
			dim = len(vec)
		} else if len(vec) != dim {
			skip(lineNo, word, fmt.Sprintf("dimension mismatch: got %d, want %d", len(vec), dim))
			continue
		}
		vectors[word] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, report, err
	}

	vocab := newVocabulary(vectors, dim)
	report.Loaded = vocab.Len()
	report.Preview = vocab.Preview(opts.previewSize())
	log.Info("embeddings loaded", "count", report.Loaded, "dimension", dim, "skipped", len(report.Skipped))
	return vocab, report, nil
}

// splitRow splits on commas and drops trailing empty fields, so `cat,1,0,`
// yields [cat 1 0] and `cat,` yields [cat].
func splitRow(line string) []string {
	parts := strings.Split(line, ",")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func parseVector(fields []string) (domain.Embedding, error) {
	vec := make(domain.Embedding, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("malformed component %d: %q", i+1, f)
		}
		vec[i] = v
	}
	return vec, nil
}

// ReadWordsFile reads a one-word-per-line source, trimmed and lower-cased.
// Blank lines are dropped; order and duplicates are preserved.
func ReadWordsFile(path string) ([]string, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	words, err := ParseWords(f)
	if err != nil {
		return nil, fmt.Errorf("read words %s: %w", path, err)
	}
	return words, nil
}

// ParseWords is the reader form of ReadWordsFile.
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// BuildSimple restricts full to words. Words without an embedding are skipped
// and recorded; vectors are shared with full.
func BuildSimple(full *Vocabulary, words []string, opts ParseOptions) (*Vocabulary, domain.LoadReport, error) {
	var report domain.LoadReport
	if full == nil {
		return nil, report, domain.ErrNotLoaded
	}
	log := opts.logger()
	vectors := make(map[string]domain.Embedding)
	for i, w := range words {
		vec, ok := full.Get(w)
		if !ok {
			report.Skipped = append(report.Skipped, domain.Skip{Index: i + 1, Word: w, Reason: "no embedding for word"})
			log.Warn("no embedding for word", "word", w, "index", i+1)
			continue
		}
		vectors[w] = vec
	}
	vocab := newVocabulary(vectors, full.Dimension())
	report.Loaded = vocab.Len()
	report.Preview = vocab.Preview(opts.previewSize())
	log.Info("simple vocabulary loaded", "count", report.Loaded, "missing", len(report.Skipped))
	return vocab, report, nil
}

func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
		}
		return nil, err
	}
	return f, nil
}
