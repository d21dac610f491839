// Package richtext turns free-form job descriptions and notes into a list of
// renderable blocks. It knows nothing about PDFs.
package richtext

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

type Kind string

const (
	KindBreak     Kind = "break"
	KindBullet    Kind = "bullet"
	KindNumbered  Kind = "numbered"
	KindParagraph Kind = "paragraph"
)

// Run is a span of text sharing one weight.
type Run struct {
	Text string
	Bold bool
}

// Block is one rendered line. Number is only set for KindNumbered and Runs is
// empty for KindBreak.
type Block struct {
	Kind   Kind
	Number int
	Runs   []Run
}

// Plain joins the runs without markup.
func (b Block) Plain() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

const denylist = "■□▪▫●○◆◇★☆♦♠♣♥☎✆✉📞📱"

var (
	boldPattern     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	bulletPattern   = regexp.MustCompile(`^[•\-►▪●○■□]\s*(.+)$`)
	numberedPattern = regexp.MustCompile(`^(\d+)[.)]\s+(.+)$`)
)

func denied(r rune) bool {
	switch {
	case strings.ContainsRune(denylist, r):
		return true
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r == 0xFE0F:
		return true
	}
	return false
}

// Sanitize drops glyphs the PDF fonts cannot draw and any non-printable
// character other than newline, carriage return and tab, then trims the
// result.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if denied(r) {
			continue
		}
		if r == '\n' || r == '\r' || r == '\t' || unicode.IsPrint(r) {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

// Format sanitizes text and classifies each non-blank line. Blank lines are
// dropped, except that a run of them before a line opening with bold text
// becomes a single KindBreak.
func Format(text string) []Block {
	clean := Sanitize(text)
	if clean == "" {
		return nil
	}

	var blocks []Block
	prevBlank := false
	for _, line := range strings.Split(clean, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			prevBlank = true
			continue
		}
		if prevBlank && startsWithBold(line) {
			blocks = append(blocks, Block{Kind: KindBreak})
		}
		prevBlank = false
		blocks = append(blocks, classify(line))
	}
	return blocks
}

func classify(line string) Block {
	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		return Block{Kind: KindBullet, Runs: ParseRuns(m[1])}
	}
	if m := numberedPattern.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return Block{Kind: KindNumbered, Number: n, Runs: ParseRuns(m[2])}
		}
	}
	return Block{Kind: KindParagraph, Runs: ParseRuns(line)}
}

func startsWithBold(line string) bool {
	loc := boldPattern.FindStringIndex(line)
	return loc != nil && loc[0] == 0
}

// ParseRuns splits s on **bold** spans. Unpaired markers stay literal.
func ParseRuns(s string) []Run {
	var runs []Run
	last := 0
	for _, m := range boldPattern.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > last {
			runs = append(runs, Run{Text: s[last:m[0]]})
		}
		runs = append(runs, Run{Text: s[m[2]:m[3]], Bold: true})
		last = m[1]
	}
	if last < len(s) {
		runs = append(runs, Run{Text: s[last:]})
	}
	return runs
}
