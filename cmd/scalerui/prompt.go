package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/scalerapps/scalerui/internal/install"
	"github.com/scalerapps/scalerui/internal/messages"
)

var (
	diffColorAdded   = color.New(color.FgGreen)
	diffColorRemoved = color.New(color.FgRed)
	diffColorHunk    = color.New(color.FgCyan)
)

// linePromptConfirmer asks on out and reads the answer from in. An empty
// answer or end of input declines.
func linePromptConfirmer(in io.Reader, out io.Writer) install.Confirmer {
	return install.ConfirmFunc(func(preview install.OverwritePreview) (bool, error) {
		if preview.HasChanges() {
			if _, err := fmt.Fprintln(out, messages.OverwritePreviewHeader); err != nil {
				return false, err
			}
			if err := printDiff(out, preview.UnifiedDiff); err != nil {
				return false, err
			}
		}
		return promptYesNo(in, out, fmt.Sprintf(messages.OverwritePromptFmt, preview.FrameworkDir), false)
	})
}

// printDiff writes a unified diff, coloring added, removed and header lines
// when the session is interactive.
func printDiff(out io.Writer, diff string) error {
	colorize := isTerminal()
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		var c *color.Color
		switch {
		case !colorize:
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			c = diffColorHunk
		case strings.HasPrefix(line, "+"):
			c = diffColorAdded
		case strings.HasPrefix(line, "-"):
			c = diffColorRemoved
		}
		var err error
		if c != nil {
			_, err = c.Fprintln(out, line)
		} else {
			_, err = fmt.Fprintln(out, line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// promptYesNo asks until it gets y/yes or n/no. End of input declines, even
// after an unrecognised answer.
func promptYesNo(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	reader := bufio.NewReader(in)
	for {
		if defaultYes {
			if _, err := fmt.Fprintf(out, messages.PromptYesDefaultFmt, prompt); err != nil {
				return false, err
			}
		} else {
			if _, err := fmt.Fprintf(out, messages.PromptNoDefaultFmt, prompt); err != nil {
				return false, err
			}
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			if err == nil {
				return defaultYes, nil
			}
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if _, err := fmt.Fprintln(out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}
