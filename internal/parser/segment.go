package parser

import (
	"regexp"
	"strings"
)

// Block is the contiguous run of source lines describing one transaction,
// opened by a line matching the variant's anchor pattern and closed by the
// next anchor or the end of the document.
type Block struct {
	Lines []string
}

// Text joins the block's lines into one whitespace-normalized string.
func (b Block) Text() string {
	var parts []string
	for _, line := range b.Lines {
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

// SegmentByAnchor groups ordered lines into blocks. A line matching the
// anchor opens a new block; all following lines until the next anchor belong
// to it. Lines before the first anchor are discarded.
func SegmentByAnchor(lines []string, anchor *regexp.Regexp) []Block {
	return SegmentFunc(lines, anchor.MatchString)
}

// SegmentFunc is SegmentByAnchor with an arbitrary anchor predicate, for
// layouts whose transaction lines are not recognizable by one regexp.
func SegmentFunc(lines []string, isAnchor func(string) bool) []Block {
	var blocks []Block
	var current []string

	for _, line := range lines {
		if isAnchor(line) {
			if current != nil {
				blocks = append(blocks, Block{Lines: current})
			}
			current = []string{line}
			continue
		}
		if current != nil {
			current = append(current, line)
		}
	}
	if current != nil {
		blocks = append(blocks, Block{Lines: current})
	}

	return blocks
}
