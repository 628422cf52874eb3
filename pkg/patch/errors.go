package patch

import (
	"errors"
	"fmt"
)

// ErrorCode classifies the failure modes reported while applying a document.
type ErrorCode string

const (
	// ErrCodeNoHunks means the patch text contained no file sections.
	ErrCodeNoHunks ErrorCode = "NO_HUNKS_FOUND"
	// ErrCodePathTraversal means a patch path would resolve outside the
	// target root.
	ErrCodePathTraversal ErrorCode = "PATH_TRAVERSAL"
	// ErrCodeFileNotFound means a modification or deletion names a file that
	// does not exist.
	ErrCodeFileNotFound ErrorCode = "FILE_NOT_FOUND"
	// ErrCodeFileExists means a dry-run creation found the target already
	// present.
	ErrCodeFileExists ErrorCode = "FILE_EXISTS"
	// ErrCodeContentMismatch means the current content disagrees with what
	// the patch expects to replace wholesale.
	ErrCodeContentMismatch ErrorCode = "CONTENT_MISMATCH"
	// ErrCodeHunkFailed means a hunk window fell outside the file or its
	// expected lines did not match.
	ErrCodeHunkFailed ErrorCode = "HUNK_APPLICATION_FAILED"
)

// Error describes a failure raised while applying a patch document. Path is
// the patch-relative file the failure concerns, when one applies, and Hunk is
// the 1-based index of the failing hunk within that file, or zero.
type Error struct {
	Code    ErrorCode
	Path    string
	Hunk    int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// CodeOf extracts the engine error code from err. It returns the empty code
// when err does not wrap a patch error.
func CodeOf(err error) ErrorCode {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// FormatError renders err into a message suitable for surfacing to end
// users, prefixed with the engine code when one is available.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var pe *Error
	if !errors.As(err, &pe) || pe.Code == "" {
		return err.Error()
	}
	return fmt.Sprintf("%s: %s", pe.Code, pe.Message)
}

func newError(code ErrorCode, path, format string, args ...any) *Error {
	return &Error{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

func newHunkError(path string, hunk int, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeHunkFailed,
		Path:    path,
		Hunk:    hunk,
		Message: fmt.Sprintf(format, args...),
	}
}
