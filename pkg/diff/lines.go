package diff

import (
	"bytes"
	"os"
	"strings"
)

// binarySniffLen is the number of leading bytes inspected for a NUL byte
// when deciding whether a file is binary.
const binarySniffLen = 8 * 1024

// splitLines converts file content into its logical line sequence. Line
// endings are normalized to \n and the single empty line produced by a
// trailing newline is dropped from the sequence; serialization re-adds it.
func splitLines(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	lines := strings.Split(normalized, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isBinary(data []byte) bool {
	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}

// readFileLines loads a file and returns its logical lines, or binary=true
// when the content is not line-diffable.
func readFileLines(path string) (lines []string, binary bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	if isBinary(data) {
		return nil, true, nil
	}
	return splitLines(string(data)), false, nil
}
