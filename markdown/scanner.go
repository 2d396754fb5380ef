// Package markdown finds diagram code blocks in Markdown documents and
// keeps a rendered drawing next to each of them.
package markdown

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// renderedFence opens the text block that holds a rendered drawing. The
// info string carries the hash of the source block it was rendered from.
const renderedFence = "```text gridart"

// DiagramBlock represents a diagram code block found in markdown
type DiagramBlock struct {
	Type        string // mermaid, mmd or gridart
	Content     string // The diagram source
	StartLine   int    // Line number of the opening fence (0-based)
	EndLine     int    // Line number of the closing fence
	Indent      string // Indentation before the code fence
	ContentHash string // Leading hex digits of the SHA256 of Content

	// Rendered is the line range of the drawing block that follows the
	// source block, or nil when there is none yet.
	Rendered *LineRange
	// RenderedHash is the source hash recorded on the drawing block.
	RenderedHash string
}

// LineRange is an inclusive range of lines.
type LineRange struct {
	Start, End int
}

// Fresh reports whether the block already has a drawing rendered from its
// current content.
func (b DiagramBlock) Fresh() bool {
	return b.Rendered != nil && b.RenderedHash == b.ContentHash
}

// Scanner finds and extracts diagram blocks from markdown content
type Scanner struct {
	lines []string
}

// NewScanner creates a new markdown scanner
func NewScanner(content string) *Scanner {
	return &Scanner{lines: strings.Split(content, "\n")}
}

// FindDiagramBlocks finds all diagram code blocks in the markdown, each
// with the drawing block that directly follows it, if any. Blank lines
// between the two are allowed.
func (s *Scanner) FindDiagramBlocks() []DiagramBlock {
	var blocks []DiagramBlock

	for i := 0; i < len(s.lines); i++ {
		indent, lang, ok := fence(s.lines[i])
		if !ok || !isDiagramLanguage(lang) {
			continue
		}

		block := DiagramBlock{Type: strings.ToLower(lang), StartLine: i, Indent: indent}
		end := s.closingFence(i + 1)
		if end < 0 {
			break
		}
		block.EndLine = end
		block.Content = s.body(i+1, end, indent)
		block.ContentHash = hash(block.Content)
		block.Rendered, block.RenderedHash = s.renderedAfter(end + 1)

		blocks = append(blocks, block)
		i = end
		if block.Rendered != nil {
			i = block.Rendered.End
		}
	}

	return blocks
}

func (s *Scanner) closingFence(from int) int {
	for j := from; j < len(s.lines); j++ {
		if strings.HasPrefix(strings.TrimLeft(s.lines[j], " \t"), "```") {
			return j
		}
	}
	return -1
}

func (s *Scanner) body(from, to int, indent string) string {
	lines := make([]string, 0, to-from)
	for _, line := range s.lines[from:to] {
		lines = append(lines, strings.TrimPrefix(line, indent))
	}
	return strings.Join(lines, "\n")
}

// renderedAfter finds a drawing block starting at line from, skipping
// blank lines.
func (s *Scanner) renderedAfter(from int) (*LineRange, string) {
	j := from
	for j < len(s.lines) && strings.TrimSpace(s.lines[j]) == "" {
		j++
	}
	if j >= len(s.lines) {
		return nil, ""
	}
	trimmed := strings.TrimSpace(s.lines[j])
	if !strings.HasPrefix(trimmed, renderedFence) {
		return nil, ""
	}
	end := s.closingFence(j + 1)
	if end < 0 {
		return nil, ""
	}
	return &LineRange{Start: j, End: end}, strings.TrimSpace(strings.TrimPrefix(trimmed, renderedFence))
}

// RenderFunc renders one diagram block.
type RenderFunc func(DiagramBlock) (string, error)

// Annotate returns the markdown with a drawing block after every diagram
// block. Existing drawing blocks are replaced unless they are fresh, and
// the source blocks are never touched. Annotate reports how many drawings
// it wrote.
func (s *Scanner) Annotate(render RenderFunc) (string, int, error) {
	blocks := s.FindDiagramBlocks()
	out := make([]string, 0, len(s.lines))
	next := 0
	written := 0

	for _, b := range blocks {
		out = append(out, s.lines[next:b.EndLine+1]...)
		next = b.EndLine + 1

		if b.Fresh() {
			continue
		}
		drawing, err := render(b)
		if err != nil {
			return "", written, fmt.Errorf("block at line %d: %w", b.StartLine+1, err)
		}
		if b.Rendered != nil {
			next = b.Rendered.End + 1
		}

		out = append(out, "", b.Indent+renderedFence+" "+b.ContentHash)
		for _, line := range strings.Split(drawing, "\n") {
			out = append(out, b.Indent+line)
		}
		out = append(out, b.Indent+"```")
		written++
	}
	out = append(out, s.lines[next:]...)

	return strings.Join(out, "\n"), written, nil
}

// fence splits a code fence line into indentation and info string.
func fence(line string) (indent, lang string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "```") {
		return "", "", false
	}
	indent = line[:len(line)-len(trimmed)]
	lang = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
	if i := strings.IndexAny(lang, " \t"); i >= 0 {
		lang = lang[:i]
	}
	return indent, lang, true
}

func hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])[:12]
}

// isDiagramLanguage checks if a language identifier is a diagram source we
// can import.
func isDiagramLanguage(lang string) bool {
	switch strings.ToLower(lang) {
	case "mermaid", "mmd", "gridart":
		return true
	default:
		return false
	}
}

// FormatBlockInfo returns a human-readable description of a block
func FormatBlockInfo(block DiagramBlock, index int) string {
	preview := ""
	for _, line := range strings.Split(strings.TrimSpace(block.Content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "%%") {
			preview = trimmed
			if len(preview) > 50 {
				preview = preview[:47] + "..."
			}
			break
		}
	}

	status := "stale"
	switch {
	case block.Rendered == nil:
		status = "not rendered"
	case block.Fresh():
		status = "rendered"
	}
	return fmt.Sprintf("%d. %s (line %d, %s): %s", index+1, block.Type, block.StartLine+1, status, preview)
}
