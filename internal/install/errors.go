package install

import (
	"fmt"

	"github.com/scalerapps/scalerui/internal/messages"
)

// CategoryArchive labels placement failures that happen while decompressing
// the archive, before any category is moved.
const CategoryArchive = "archive"

// DirectoryCreationError reports that the framework directory tree could not be
// prepared. The partially created tree has been rolled back.
type DirectoryCreationError struct {
	Path string
	Err  error
}

func (e *DirectoryCreationError) Error() string {
	return fmt.Sprintf(messages.DirectoryCreationErrorFmt, e.Path, e.Err)
}

func (e *DirectoryCreationError) Unwrap() error {
	return e.Err
}

// FilePlacementError reports a failure extracting the archive or moving one
// category of files into place.
type FilePlacementError struct {
	// Category is css, images, javascript, or CategoryArchive.
	Category string
	Path     string
	Err      error
}

func (e *FilePlacementError) Error() string {
	return fmt.Sprintf(messages.FilePlacementErrorFmt, e.Category, e.Err)
}

func (e *FilePlacementError) Unwrap() error {
	return e.Err
}

// FailedCategories returns the category of every FilePlacementError in err,
// including errors combined with errors.Join.
func FailedCategories(err error) []string {
	var out []string
	collectPlacementCategories(err, &out)
	return out
}

func collectPlacementCategories(err error, out *[]string) {
	if err == nil {
		return
	}
	if placement, ok := err.(*FilePlacementError); ok {
		*out = append(*out, placement.Category)
		return
	}
	switch wrapped := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range wrapped.Unwrap() {
			collectPlacementCategories(inner, out)
		}
	case interface{ Unwrap() error }:
		collectPlacementCategories(wrapped.Unwrap(), out)
	}
}
