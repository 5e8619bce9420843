package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scalerapps/scalerui/internal/catalog"
	"github.com/scalerapps/scalerui/internal/testutil"
)

var standardArchive = map[string]string{
	"css/scalerui.css":       "body{}",
	"images/logo.png":        "png",
	"javascript/scalerui.js": "init();",
}

// isolateCLI stubs process-wide inputs so tests do not depend on the caller's
// terminal, environment or executable location.
func isolateCLI(t *testing.T, stdin string) {
	t.Helper()
	t.Setenv("TMPDIR", t.TempDir())
	t.Setenv("SCALERUI_CATALOG", "")

	origTerminal := isTerminal
	isTerminal = func() bool { return false }
	origStdin := stdinReader
	stdinReader = strings.NewReader(stdin)
	origExe := executablePath
	exeDir := t.TempDir()
	executablePath = func() (string, error) { return filepath.Join(exeDir, "scalerui"), nil }
	t.Cleanup(func() {
		isTerminal = origTerminal
		stdinReader = origStdin
		executablePath = origExe
	})
}

// writeCatalog writes one archive per version into a new catalog directory.
func writeCatalog(t *testing.T, dir string, versions map[string]map[string]string) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	for version, files := range versions {
		testutil.WriteArchive(t, filepath.Join(dir, catalog.ArchiveName(version)), files)
	}
	return dir
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runCLI(args ...string) cliResult {
	var stdout, stderr bytes.Buffer
	err := execute(append([]string{"scalerui"}, args...), &stdout, &stderr)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func frameworkDir(installDir string) string {
	return filepath.Join(installDir, "public", "scalerui")
}
