package diff

import "fmt"

// Options configure diff generation. The zero value is usable; setDefaults
// fills in the engine defaults so callers and tests can vary every knob
// explicitly instead of relying on package-level constants.
type Options struct {
	// ContextLines is the number of unchanged lines emitted around each
	// change. Change runs separated by at most 2*ContextLines unchanged
	// lines are merged into a single hunk.
	ContextLines int

	// MaxLCSLines bounds the LCS table. When either side of a file exceeds
	// this many lines the generator falls back to a full replacement
	// (every base line deleted, every target line inserted) instead of
	// building an O(m*n) table.
	MaxLCSLines int

	// Exclude lists patterns of relative paths to leave out of the walk.
	// A pattern excludes a file when it matches the full relative path or
	// any single path segment (path.Match syntax), so ".git" excludes an
	// entire directory while "*.bin" excludes matching files anywhere.
	Exclude []string
}

const (
	defaultContextLines = 3
	defaultMaxLCSLines  = 5000
)

func (o *Options) setDefaults() {
	if o.ContextLines <= 0 {
		o.ContextLines = defaultContextLines
	}
	if o.MaxLCSLines <= 0 {
		o.MaxLCSLines = defaultMaxLCSLines
	}
}

// validate performs lightweight validation of caller supplied options.
func (o *Options) validate() error {
	for _, pattern := range o.Exclude {
		if pattern == "" {
			return fmt.Errorf("empty exclude pattern")
		}
	}
	return nil
}
