package catalog

import (
	"errors"
	"fmt"

	"github.com/scalerapps/scalerui/internal/messages"
)

// NoSourceArchiveError reports that a version selector could not be resolved
// to an archive file in the catalog.
type NoSourceArchiveError struct {
	Selector string
	Dir      string
	Reason   string
	Err      error
}

func (e *NoSourceArchiveError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf(messages.NoSourceArchiveErrorFmt, e.Selector, e.Dir)
	}
	return fmt.Sprintf(messages.NoSourceArchiveReasonFmt, e.Selector, e.Dir, e.Reason)
}

func (e *NoSourceArchiveError) Unwrap() error {
	return e.Err
}

// IsNoSourceArchive reports whether err is, or wraps, a NoSourceArchiveError.
func IsNoSourceArchive(err error) bool {
	var target *NoSourceArchiveError
	return errors.As(err, &target)
}
