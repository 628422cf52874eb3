package diff

import (
	"fmt"
	"strings"
)

// noFile is the unified-diff sentinel for a side without a file.
const noFile = "/dev/null"

// writeHeader emits the three-line file section header. Paths are always
// rendered with portable a/ and b/ prefixes, never host-absolute paths, so
// generated patches replay on other machines.
func writeHeader(sb *strings.Builder, rel string, creation, deletion bool) {
	fmt.Fprintf(sb, "diff --git a/%s b/%s\n", rel, rel)
	if creation {
		sb.WriteString("--- " + noFile + "\n")
	} else {
		sb.WriteString("--- a/" + rel + "\n")
	}
	if deletion {
		sb.WriteString("+++ " + noFile + "\n")
	} else {
		sb.WriteString("+++ b/" + rel + "\n")
	}
}

func writeHunk(sb *strings.Builder, h Hunk) {
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
	for _, e := range h.Edits {
		switch e.Op {
		case Delete:
			sb.WriteByte('-')
		case Insert:
			sb.WriteByte('+')
		default:
			sb.WriteByte(' ')
		}
		sb.WriteString(e.Text)
		sb.WriteByte('\n')
	}
}

func writeCreation(sb *strings.Builder, rel string, lines []string) {
	writeHeader(sb, rel, true, false)
	edits := make([]Edit, 0, len(lines))
	for _, line := range lines {
		edits = append(edits, Edit{Op: Insert, Text: line})
	}
	writeHunk(sb, Hunk{
		OriginalStart: 0,
		OriginalCount: 0,
		ModifiedStart: 1,
		ModifiedCount: len(lines),
		Edits:         edits,
	})
}

func writeDeletion(sb *strings.Builder, rel string, lines []string) {
	writeHeader(sb, rel, false, true)
	edits := make([]Edit, 0, len(lines))
	for _, line := range lines {
		edits = append(edits, Edit{Op: Delete, Text: line})
	}
	writeHunk(sb, Hunk{
		OriginalStart: 1,
		OriginalCount: len(lines),
		ModifiedStart: 0,
		ModifiedCount: 0,
		Edits:         edits,
	})
}
