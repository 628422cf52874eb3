package diff

import "slices"

// Op describes the role of a single line in an edit script.
type Op int

const (
	// Context is a line present in both sequences.
	Context Op = iota
	// Delete is a line present only in the base sequence.
	Delete
	// Insert is a line present only in the target sequence.
	Insert
)

// Edit pairs an op with the line it covers. A complete edit script walks the
// base sequence in order, with Insert edits interleaved at the positions
// where target-only lines appear.
type Edit struct {
	Op   Op
	Text string
}

// editScript computes the line-level edit script turning base into target.
//
// The script is derived from the longest common subsequence of the two line
// sequences: common lines become Context edits, the rest Delete or Insert.
// When either sequence exceeds maxLines the LCS table is skipped entirely and
// the script degenerates to a full replacement, trading diff minimality for
// bounded memory on pathological files.
func editScript(base, target []string, maxLines int) []Edit {
	if len(base) > maxLines || len(target) > maxLines {
		edits := make([]Edit, 0, len(base)+len(target))
		for _, line := range base {
			edits = append(edits, Edit{Op: Delete, Text: line})
		}
		for _, line := range target {
			edits = append(edits, Edit{Op: Insert, Text: line})
		}
		return edits
	}

	m, n := len(base), len(target)
	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case base[i-1] == target[j-1]:
				table[i][j] = table[i-1][j-1] + 1
			case table[i-1][j] >= table[i][j-1]:
				table[i][j] = table[i-1][j]
			default:
				table[i][j] = table[i][j-1]
			}
		}
	}

	// Backtrace from (m, n). Ties prefer consuming the target-side line so
	// that deletions come out ahead of insertions within a change run once
	// the script is reversed into forward order.
	edits := make([]Edit, 0, m+n)
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && base[i-1] == target[j-1]:
			edits = append(edits, Edit{Op: Context, Text: base[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || table[i][j-1] >= table[i-1][j]):
			edits = append(edits, Edit{Op: Insert, Text: target[j-1]})
			j--
		default:
			edits = append(edits, Edit{Op: Delete, Text: base[i-1]})
			i--
		}
	}
	slices.Reverse(edits)
	return edits
}
