package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/folio/pkg/core"
)

// Format identifies the frontmatter syntax found at the top of a document.
type Format string

const (
	FormatNone Format = ""
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// delimiters are tried in order; YAML first.
var delimiters = []struct {
	format Format
	delim  string
}{
	{FormatYAML, "---"},
	{FormatTOML, "+++"},
}

// ErrMissingClosingDelimiter indicates the document opened a frontmatter block
// but never closed it.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

// Parser decodes the raw bytes of one file into a Document.
type Parser interface {
	// Parse reads from r and returns a Document without ID.
	Parse(r io.Reader) (*core.Document, error)
}

// DefaultParsers returns the standard set of parsers keyed by file extension.
func DefaultParsers() map[string]Parser {
	return map[string]Parser{
		".md": NewMarkdownParser(),
	}
}

// MarkdownParser handles Markdown files with an optional YAML (---) or TOML (+++) frontmatter block.
type MarkdownParser struct{}

// NewMarkdownParser creates a new Markdown parser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

// Parse splits the frontmatter from the body and decodes it.
// Files without an opening delimiter are all body and carry empty metadata.
func (p *MarkdownParser) Parse(r io.Reader) (*core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	fm, body, format, err := Split(data)
	if err != nil {
		return nil, err
	}

	meta, err := decodeFrontmatter(fm, format)
	if err != nil {
		return nil, err
	}

	return &core.Document{
		Content:     string(body),
		Metadata:    meta,
		Fingerprint: fingerprint(fm, body),
	}, nil
}

// Split separates the frontmatter block from the Markdown body.
//
// If the document does not start with a delimiter line, format is FormatNone
// and body is the full input. Both LF and CRLF line endings are accepted.
func Split(content []byte) (frontmatter []byte, body []byte, format Format, err error) {
	nl := detectNewline(content)

	for _, d := range delimiters {
		f, delim := d.format, d.delim
		open := []byte(delim + nl)
		if !bytes.HasPrefix(content, open) {
			continue
		}

		rest := content[len(open):]
		if bytes.HasPrefix(rest, open) {
			return []byte{}, rest[len(open):], f, nil
		}

		closing := []byte(nl + delim + nl)
		if idx := bytes.Index(rest, closing); idx >= 0 {
			return rest[:idx+len(nl)], rest[idx+len(closing):], f, nil
		}

		// Closing delimiter on the last line without a trailing newline.
		if bytes.HasSuffix(rest, []byte(nl+delim)) {
			return rest[:len(rest)-len(delim)], []byte{}, f, nil
		}

		return nil, nil, FormatNone, ErrMissingClosingDelimiter
	}

	return nil, content, FormatNone, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

func decodeFrontmatter(fm []byte, format Format) (core.Metadata, error) {
	meta := make(core.Metadata)
	if len(bytes.TrimSpace(fm)) == 0 {
		return meta, nil
	}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return nil, fmt.Errorf("invalid yaml frontmatter: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(fm, &meta); err != nil {
			return nil, fmt.Errorf("invalid toml frontmatter: %w", err)
		}
	}

	if meta == nil {
		// "---\n~\n---" decodes to a nil map.
		meta = make(core.Metadata)
	}
	return normalize(meta).(core.Metadata), nil
}

// normalize traverses the decoded frontmatter and turns timestamps back into
// strings, so that a date written as 2024-01-01 reads back as "2024-01-01".
func normalize(val any) any {
	switch v := val.(type) {
	case core.Metadata:
		m := make(core.Metadata, len(v))
		for k, val := range v {
			m[k] = normalize(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = normalize(val)
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, val := range v {
			l[i] = normalize(val)
		}
		return l
	case []map[string]any:
		l := make([]any, len(v))
		for i, val := range v {
			l[i] = normalize(val)
		}
		return l
	case time.Time:
		return formatTime(v)
	default:
		return v
	}
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}
