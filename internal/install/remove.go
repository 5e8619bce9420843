package install

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/scalerapps/scalerui/internal/config"
	"github.com/scalerapps/scalerui/internal/messages"
)

// RemoveStatus is the outcome of a successful Remove call.
type RemoveStatus string

const (
	// StatusRemoved means the framework directory was deleted.
	StatusRemoved RemoveStatus = "removed"
	// StatusNothingToRemove means there was no framework directory.
	StatusNothingToRemove RemoveStatus = "nothing_to_remove"
)

// RemoveOptions controls remover behavior.
type RemoveOptions struct {
	System System
	Logger *log.Logger
}

// RemoveResult describes a completed removal.
type RemoveResult struct {
	Status RemoveStatus
	Path   string
}

// Remove deletes paths.FrameworkDir recursively. A missing directory is not an error.
func Remove(paths config.Paths, opts RemoveOptions) (RemoveResult, error) {
	dir := paths.FrameworkDir
	if strings.TrimSpace(dir) == "" {
		return RemoveResult{}, config.NewConfigurationError(messages.InstallFrameworkDirNeeded)
	}
	sys := opts.System
	if sys == nil {
		return RemoveResult{}, fmt.Errorf(messages.InstallSystemRequired)
	}
	logger := loggerOrDiscard(opts.Logger)

	if _, err := sys.Lstat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug(messages.RemoveNothingDebug, "path", dir)
			return RemoveResult{Status: StatusNothingToRemove, Path: dir}, nil
		}
		return RemoveResult{}, fmt.Errorf(messages.RemoveStatFmt, dir, err)
	}
	if err := sys.RemoveAll(dir); err != nil {
		return RemoveResult{}, fmt.Errorf(messages.RemoveFailedFmt, dir, err)
	}
	logger.Debug(messages.RemoveDoneDebug, "path", dir)
	return RemoveResult{Status: StatusRemoved, Path: dir}, nil
}
