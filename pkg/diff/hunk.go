package diff

// Hunk is one context-bounded change region of a file diff. Starts are
// 1-based line numbers per the unified-diff convention; counts cover every
// line the hunk touches on that side, context included.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Edits         []Edit
}

// buildHunks groups an edit script into hunks. Change runs separated by at
// most 2*contextLines unchanged edits share a hunk; each hunk's window is
// padded with up to contextLines of context on both ends, clipped to the
// script bounds.
func buildHunks(edits []Edit, contextLines int) []Hunk {
	var changes []int
	for i, e := range edits {
		if e.Op != Context {
			changes = append(changes, i)
		}
	}
	if len(changes) == 0 {
		return nil
	}

	type span struct{ first, last int }
	spans := []span{{first: changes[0], last: changes[0]}}
	for _, idx := range changes[1:] {
		current := &spans[len(spans)-1]
		if idx-current.last-1 <= 2*contextLines {
			current.last = idx
			continue
		}
		spans = append(spans, span{first: idx, last: idx})
	}

	hunks := make([]Hunk, 0, len(spans))
	for _, sp := range spans {
		start := sp.first - contextLines
		if start < 0 {
			start = 0
		}
		end := sp.last + contextLines
		if end > len(edits)-1 {
			end = len(edits) - 1
		}

		// Header counters: lines preceding the window advance the original
		// side unless they are inserts, and the modified side unless they
		// are deletes.
		originalStart, modifiedStart := 1, 1
		for _, e := range edits[:start] {
			if e.Op != Insert {
				originalStart++
			}
			if e.Op != Delete {
				modifiedStart++
			}
		}

		window := edits[start : end+1]
		originalCount, modifiedCount := 0, 0
		for _, e := range window {
			if e.Op != Insert {
				originalCount++
			}
			if e.Op != Delete {
				modifiedCount++
			}
		}

		hunks = append(hunks, Hunk{
			OriginalStart: originalStart,
			OriginalCount: originalCount,
			ModifiedStart: modifiedStart,
			ModifiedCount: modifiedCount,
			Edits:         window,
		})
	}
	return hunks
}
