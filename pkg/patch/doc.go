// Package patch provides helpers for parsing and applying unified-diff patches.
//
// The package is the replay half of the engine: it turns unified-diff text into
// a structured Document and replays it against a file tree, forward or in
// reverse, either mutating or as a dry run. It exposes primitives to apply
// documents to the filesystem or to in-memory file maps, which makes it
// straightforward to embed in editors and testing utilities. Every target path
// named by a patch is resolved against the tree root and rejected if it would
// escape it.
package patch
