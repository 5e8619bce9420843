package install

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/scalerapps/scalerui/internal/catalog"
	"github.com/scalerapps/scalerui/internal/config"
	"github.com/scalerapps/scalerui/internal/messages"
)

const workspacePattern = "scalerui-workspace-*"

// Status is the outcome of an install attempt that returned no error.
type Status string

const (
	// StatusInstalled means the framework was installed.
	StatusInstalled Status = "installed"
	// StatusAborted means an existing installation was found and overwrite was declined.
	StatusAborted Status = "aborted"
)

// Options controls installer behavior.
type Options struct {
	// Version is "latest" or an explicit version token. Empty means latest.
	Version string
	// Source resolves Version to an archive path.
	Source catalog.Source
	// Confirmer is asked before an existing installation is deleted.
	Confirmer Confirmer
	System    System
	// TempDir is the parent of the per-attempt workspace. Empty means os.TempDir.
	TempDir string
	// Logger receives state transitions at debug level. Nil discards them.
	Logger       *log.Logger
	DiffMaxLines int
}

// Result describes a completed install attempt.
type Result struct {
	Status Status
	// Archive is the archive that was installed.
	Archive string
	// Placed maps each category (css, images, javascript) to the entry names moved into it.
	Placed map[string][]string
	// States lists the states visited, in order.
	States []State
}

type installer struct {
	paths        config.Paths
	version      string
	source       catalog.Source
	confirmer    Confirmer
	sys          System
	tempDir      string
	logger       *log.Logger
	diffMaxLines int
	states       []State
}

// Run installs the framework into paths.FrameworkDir.
//
// An existing framework directory is only replaced after opts.Confirmer agrees;
// a refusal returns StatusAborted with a nil error and no changes. Any failure
// after the directory tree is created removes the tree again, and the
// temporary workspace is removed on every exit path.
func Run(paths config.Paths, opts Options) (Result, error) {
	if strings.TrimSpace(paths.FrameworkDir) == "" {
		return Result{}, config.NewConfigurationError(messages.InstallFrameworkDirNeeded)
	}
	if opts.System == nil {
		return Result{}, fmt.Errorf(messages.InstallSystemRequired)
	}
	if opts.Source == nil {
		return Result{}, fmt.Errorf(messages.InstallSourceRequired)
	}
	if opts.Confirmer == nil {
		return Result{}, fmt.Errorf(messages.InstallConfirmerRequired)
	}
	inst := &installer{
		paths:        paths,
		version:      config.Request{Version: opts.Version}.Selector(),
		source:       opts.Source,
		confirmer:    opts.Confirmer,
		sys:          opts.System,
		tempDir:      opts.TempDir,
		logger:       loggerOrDiscard(opts.Logger),
		diffMaxLines: normalizeDiffMaxLines(opts.DiffMaxLines),
	}
	return inst.run()
}

func (inst *installer) run() (res Result, err error) {
	defer func() {
		res.States = append([]State(nil), inst.states...)
	}()
	inst.transition(StateIdle)
	inst.transition(StateDetectingExisting)
	exists, err := inst.detectExisting()
	if err != nil {
		return Result{}, err
	}
	if exists {
		inst.transition(StateConfirmOverwrite)
		overwrite, err := inst.confirmer.ConfirmOverwrite(inst.buildOverwritePreview())
		if err != nil {
			return Result{}, err
		}
		if !overwrite {
			inst.transition(StateIdle)
			return Result{Status: StatusAborted}, nil
		}
		if err := inst.sys.RemoveAll(inst.paths.FrameworkDir); err != nil {
			return Result{}, &DirectoryCreationError{
				Path: inst.paths.FrameworkDir,
				Err:  fmt.Errorf(messages.InstallRemoveExistingFmt, inst.paths.FrameworkDir, err),
			}
		}
		inst.logger.Debug(messages.StateTransitionExistingGone, "path", inst.paths.FrameworkDir)
	}

	defer func() {
		if err != nil {
			err = inst.rollback(err)
		}
	}()

	inst.transition(StateCreatingDirectories)
	if err := inst.createDirs(); err != nil {
		return Result{}, err
	}

	inst.transition(StateExtractingArchive)
	archive, err := inst.source.Resolve(inst.version)
	if err != nil {
		return Result{}, err
	}
	placed, err := inst.extractAndPlace(archive)
	if err != nil {
		return Result{}, err
	}

	inst.transition(StateDone)
	return Result{Status: StatusInstalled, Archive: archive, Placed: placed}, nil
}

func (inst *installer) detectExisting() (bool, error) {
	if _, err := inst.sys.Lstat(inst.paths.FrameworkDir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(messages.InstallStatExistingFmt, inst.paths.FrameworkDir, err)
	}
	return true, nil
}

func (inst *installer) createDirs() error {
	for _, dir := range inst.paths.Dirs() {
		if err := inst.sys.MkdirAll(dir, 0o755); err != nil {
			return &DirectoryCreationError{Path: dir, Err: err}
		}
	}
	return nil
}

// extractAndPlace owns the workspace: it is created here and removed before
// returning, whatever the outcome.
func (inst *installer) extractAndPlace(archive string) (map[string][]string, error) {
	workspace, err := inst.sys.MkdirTemp(inst.tempDir, workspacePattern)
	if err != nil {
		return nil, &DirectoryCreationError{Path: inst.tempDir, Err: fmt.Errorf(messages.InstallCreateWorkspaceFmt, err)}
	}
	defer inst.cleanWorkspace(workspace)

	if err := extractArchive(inst.sys, archive, workspace, inst.logger); err != nil {
		return nil, &FilePlacementError{Category: CategoryArchive, Path: archive, Err: err}
	}

	inst.transition(StatePlacingFiles)
	return inst.placeFiles(workspace)
}

func (inst *installer) cleanWorkspace(workspace string) {
	inst.transition(StateCleaningTemp)
	inst.logger.Debug(messages.StateTransitionWorkspace, "path", workspace)
	if err := inst.sys.RemoveAll(workspace); err != nil {
		inst.logger.Warn(fmt.Sprintf(messages.InstallWorkspaceCleanupFmt, workspace), "error", err)
	}
}

func (inst *installer) rollback(cause error) error {
	inst.transition(StateErrorRollback)
	inst.logger.Debug(messages.StateTransitionRollback, "path", inst.paths.FrameworkDir)
	if err := inst.sys.RemoveAll(inst.paths.FrameworkDir); err != nil {
		return fmt.Errorf(messages.InstallRollbackFailedFmt, cause, inst.paths.FrameworkDir, err)
	}
	return cause
}

func loggerOrDiscard(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return log.New(io.Discard)
}
