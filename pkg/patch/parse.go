package patch

import (
	"regexp"
	"strconv"
	"strings"
)

// NoFile is the sentinel path marking an absent side of a file diff.
// Creations carry it as the original path, deletions as the modified path.
const NoFile = "/dev/null"

// LineKind identifies the role of a single hunk body line.
type LineKind int

const (
	// LineContext lines are present in both the original and modified file.
	LineContext LineKind = iota
	// LineDelete lines are present only in the original file.
	LineDelete
	// LineInsert lines are present only in the modified file.
	LineInsert
)

// Line is one body line of a hunk with its leading marker decoded.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk captures one contiguous change region. Starts are 1-based line
// numbers into the original and modified file; counts cover the context plus
// delete and context plus insert lines respectively.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []Line
}

// FileDiff collects every hunk touching a single file. OriginalPath or
// ModifiedPath may be the NoFile sentinel for creations and deletions.
type FileDiff struct {
	OriginalPath string
	ModifiedPath string
	Hunks        []Hunk
}

// IsCreation reports whether the diff introduces a new file.
func (f FileDiff) IsCreation() bool {
	return f.OriginalPath == NoFile && f.ModifiedPath != NoFile
}

// IsDeletion reports whether the diff removes an existing file.
func (f FileDiff) IsDeletion() bool {
	return f.ModifiedPath == NoFile && f.OriginalPath != NoFile
}

// Path returns the file the diff concerns, favoring the side that exists.
func (f FileDiff) Path() string {
	if f.IsCreation() {
		return f.ModifiedPath
	}
	return f.OriginalPath
}

// Document is an ordered list of file diffs in source order.
type Document struct {
	Files []FileDiff
}

// IsEmpty reports whether the document carries no file sections.
func (d Document) IsEmpty() bool {
	return len(d.Files) == 0
}

// Stats summarizes the change volume of a document.
type Stats struct {
	Files   int
	Inserts int
	Deletes int
}

// Stats counts the files touched and the inserted and deleted lines across
// every hunk of the document.
func (d Document) Stats() Stats {
	stats := Stats{Files: len(d.Files)}
	for _, file := range d.Files {
		for _, hunk := range file.Hunks {
			for _, line := range hunk.Lines {
				switch line.Kind {
				case LineInsert:
					stats.Inserts++
				case LineDelete:
					stats.Deletes++
				}
			}
		}
	}
	return stats
}

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse converts unified-diff text into a Document. The parser is tolerant:
// anything between file sections is skipped, backslash markers such as
// "\ No newline at end of file" are ignored, omitted hunk counts default to
// one, and a "--- " line without a "+++ " companion is discarded. Input with
// no file sections parses to an empty Document; Parse never fails.
func Parse(input string) Document {
	lines := splitLines(input)
	var doc Document
	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i], "--- ") {
			i++
			continue
		}
		if i+1 >= len(lines) || !strings.HasPrefix(lines[i+1], "+++ ") {
			i++
			continue
		}
		file := FileDiff{
			OriginalPath: headerPath(lines[i], "--- "),
			ModifiedPath: headerPath(lines[i+1], "+++ "),
		}
		i += 2
		for i < len(lines) {
			match := hunkHeaderRe.FindStringSubmatch(lines[i])
			if match == nil {
				break
			}
			i++
			hunk := Hunk{
				OriginalStart: headerNumber(match[1]),
				OriginalCount: headerCount(match[2]),
				ModifiedStart: headerNumber(match[3]),
				ModifiedCount: headerCount(match[4]),
			}
			i = readHunkBody(lines, i, &hunk)
			file.Hunks = append(file.Hunks, hunk)
		}
		if len(file.Hunks) == 0 {
			continue
		}
		doc.Files = append(doc.Files, file)
	}
	return doc
}

// readHunkBody consumes body lines starting at index i until both side
// counts are satisfied, and returns the index of the first unconsumed line.
// Lines without a recognized marker count as context so that patches from
// tools that drop the leading space on blank lines still parse.
func readHunkBody(lines []string, i int, hunk *Hunk) int {
	origLeft := hunk.OriginalCount
	modLeft := hunk.ModifiedCount
	for i < len(lines) && origLeft > 0 && modLeft > 0 {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, `\`):
		case strings.HasPrefix(line, "-"):
			hunk.Lines = append(hunk.Lines, Line{Kind: LineDelete, Text: line[1:]})
			origLeft--
		case strings.HasPrefix(line, "+"):
			hunk.Lines = append(hunk.Lines, Line{Kind: LineInsert, Text: line[1:]})
			modLeft--
		case strings.HasPrefix(line, " "):
			hunk.Lines = append(hunk.Lines, Line{Kind: LineContext, Text: line[1:]})
			origLeft--
			modLeft--
		default:
			hunk.Lines = append(hunk.Lines, Line{Kind: LineContext, Text: line})
			origLeft--
			modLeft--
		}
		i++
	}

	// Once one side is exhausted only pure inserts or pure deletes may
	// remain, as in creation and deletion hunks.
	for i < len(lines) && modLeft > 0 {
		line := lines[i]
		if strings.HasPrefix(line, `\`) {
			i++
			continue
		}
		rest, ok := strings.CutPrefix(line, "+")
		if !ok {
			break
		}
		hunk.Lines = append(hunk.Lines, Line{Kind: LineInsert, Text: rest})
		modLeft--
		i++
	}
	for i < len(lines) && origLeft > 0 {
		line := lines[i]
		if strings.HasPrefix(line, `\`) {
			i++
			continue
		}
		rest, ok := strings.CutPrefix(line, "-")
		if !ok {
			break
		}
		hunk.Lines = append(hunk.Lines, Line{Kind: LineDelete, Text: rest})
		origLeft--
		i++
	}
	return i
}

// headerPath extracts the path from a "--- " or "+++ " header line. A tab
// starts trailing metadata such as timestamps and is cut off, and the
// customary a/ and b/ prefixes are stripped. The NoFile sentinel passes
// through untouched.
func headerPath(line, marker string) string {
	p := strings.TrimPrefix(line, marker)
	if idx := strings.IndexByte(p, '\t'); idx >= 0 {
		p = p[:idx]
	}
	if p == NoFile {
		return p
	}
	if rest, ok := strings.CutPrefix(p, "a/"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(p, "b/"); ok {
		return rest
	}
	return p
}

func headerNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return n
}

func headerCount(s string) int {
	if s == "" {
		return 1
	}
	return headerNumber(s)
}

// splitLines normalizes CRLF and lone CR endings to LF, splits on LF and
// drops the single empty trailing element produced by a terminating newline.
func splitLines(input string) []string {
	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	lines := strings.Split(normalized, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
