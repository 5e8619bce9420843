// Package prompt renders the interactive overwrite confirmation.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/scalerapps/scalerui/internal/install"
	"github.com/scalerapps/scalerui/internal/messages"
	"github.com/scalerapps/scalerui/internal/terminal"
)

// HuhConfirmer asks before an existing installation is replaced, using a
// charmbracelet/huh form that shows the file-level diff.
type HuhConfirmer struct {
	isTerminal func() bool
}

// runFormFunc runs form; answer is the value bound to the confirm field.
var runFormFunc = func(form *huh.Form, _ *bool) error { return form.Run() }

// NewHuhConfirmer creates a HuhConfirmer using the default terminal check.
func NewHuhConfirmer() *HuhConfirmer {
	return &HuhConfirmer{isTerminal: terminal.IsInteractive}
}

// ensureInteractive returns an error when the form is invoked without a terminal.
func (c *HuhConfirmer) ensureInteractive() error {
	checker := c.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return fmt.Errorf(messages.OverwriteRequiresTerm)
}

// confirmKeyMap binds both Esc and Ctrl+C to abort, which declines the overwrite.
func confirmKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "abort"))
	return km
}

// ConfirmOverwrite shows preview and reports whether to delete and reinstall.
// Aborting the form counts as a refusal.
func (c *HuhConfirmer) ConfirmOverwrite(preview install.OverwritePreview) (bool, error) {
	if err := c.ensureInteractive(); err != nil {
		return false, err
	}
	answer := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(messages.OverwriteFormTitle).
				Description(describePreview(preview)),
			huh.NewConfirm().
				Title(fmt.Sprintf(messages.OverwritePromptFmt, preview.FrameworkDir)).
				Affirmative(messages.OverwriteFormAffirm).
				Negative(messages.OverwriteFormNegative).
				Value(&answer),
		),
	)
	form.WithKeyMap(confirmKeyMap())
	form.WithProgramOptions(tea.WithOutput(os.Stderr))

	err := runFormFunc(form, &answer)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return answer, nil
}

func describePreview(preview install.OverwritePreview) string {
	if !preview.HasChanges() {
		return messages.OverwriteFormNoChanges
	}
	var b strings.Builder
	b.WriteString(messages.OverwritePreviewHeader)
	b.WriteString("\n\n")
	b.WriteString(preview.UnifiedDiff)
	return strings.TrimRight(b.String(), "\n")
}
