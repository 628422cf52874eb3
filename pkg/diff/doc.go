// Package diff generates unified-diff text from two directory trees.
//
// The generator walks both trees, classifies every relative path as added,
// removed or modified, computes a line-level edit script for modified text
// files and renders the result as unified-diff hunks with surrounding
// context. Binary files are detected and skipped, never diffed. The output
// uses portable a/ and b/ path prefixes so patches can be committed to
// version control and replayed on other machines by the patch package.
package diff
