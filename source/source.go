// Package source defines named source text with line and column lookup.
package source

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source holds the content of a grammar file or of a parser input.
// Source is immutable and safe for concurrent use.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates a source, content is used as is.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

// Decode converts raw file content to UTF-8 text.
// A leading byte order mark selects the encoding (UTF-8 or UTF-16) and is removed,
// content without BOM is treated as UTF-8, invalid sequences are replaced with U+FFFD.
func Decode(raw []byte) ([]byte, error) {
	t := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	result, _, e := transform.Bytes(t, raw)
	return result, e
}

// NewDecoded creates a source from raw file content, see Decode.
func NewDecoded(name string, raw []byte) (*Source, error) {
	content, e := Decode(raw)
	if e != nil {
		return nil, e
	}

	return New(name, content), nil
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol returns 1-based line and column (in runes) for byte offset pos.
// Offsets out of range are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	lineIndex := s.findLineIndex(pos)
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos converts 1-based line and column (in runes) to byte offset.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1]
	for col > 1 && res < l && s.content[res] != '\n' {
		_, size := utf8.DecodeRune(s.content[res:])
		res += size
		col--
	}
	return res
}

func (s *Source) findLineIndex(pos int) int {
	left := 0
	right := len(s.lineStarts) - 1
	for left < right {
		index := (left + right + 1) >> 1
		if s.lineStarts[index] <= pos {
			left = index
		} else {
			right = index - 1
		}
	}
	return left
}
