package install

import (
	"fmt"

	"github.com/scalerapps/scalerui/internal/messages"
)

// Confirmer decides whether an existing installation may be deleted and replaced.
type Confirmer interface {
	ConfirmOverwrite(preview OverwritePreview) (bool, error)
}

// ConfirmFunc adapts a function into a Confirmer.
type ConfirmFunc func(preview OverwritePreview) (bool, error)

// ConfirmOverwrite calls f. Returns an error if f is nil.
func (f ConfirmFunc) ConfirmOverwrite(preview OverwritePreview) (bool, error) {
	if f == nil {
		return false, fmt.Errorf(messages.InstallConfirmerRequired)
	}
	return f(preview)
}

// AlwaysOverwrite replaces existing installations without asking.
var AlwaysOverwrite Confirmer = ConfirmFunc(func(OverwritePreview) (bool, error) { return true, nil })

// NeverOverwrite leaves existing installations untouched and aborts the install.
var NeverOverwrite Confirmer = ConfirmFunc(func(OverwritePreview) (bool, error) { return false, nil })
