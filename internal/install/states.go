package install

import "github.com/scalerapps/scalerui/internal/messages"

// State names a step of the install state machine.
type State string

// Installer states in the order a successful install visits them.
const (
	StateIdle                State = "idle"
	StateDetectingExisting   State = "detecting_existing"
	StateConfirmOverwrite    State = "confirm_overwrite"
	StateCreatingDirectories State = "creating_directories"
	StateExtractingArchive   State = "extracting_archive"
	StatePlacingFiles        State = "placing_files"
	StateCleaningTemp        State = "cleaning_temp"
	StateDone                State = "done"
	// StateErrorRollback is entered from creating_directories, extracting_archive,
	// or placing_files when the attempt fails.
	StateErrorRollback State = "error_rollback"
)

func (inst *installer) transition(next State) {
	inst.states = append(inst.states, next)
	inst.logger.Debug(messages.StateTransition, "to", string(next), "framework", inst.paths.FrameworkDir)
}
