package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scalerapps/scalerui/internal/catalog"
	"github.com/scalerapps/scalerui/internal/config"
	"github.com/scalerapps/scalerui/internal/install"
	"github.com/scalerapps/scalerui/internal/testutil"
)

func writeProjectFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestInstallFresh(t *testing.T) {
	isolateCLI(t, "")
	catalogDir := writeCatalog(t, "", map[string]map[string]string{"0.1": standardArchive})
	dir := t.TempDir()

	res := runCLI("--install", "--dir", dir, "--catalog", catalogDir)
	require.NoError(t, res.err)

	assert.Equal(t, standardArchive, testutil.ReadTree(t, frameworkDir(dir)))
	assert.Contains(t, res.stdout, "Scaler UI installed into "+frameworkDir(dir))
	assert.Contains(t, res.stdout, `<link rel="stylesheet" href="/scalerui/css/scalerui.css" type="text/css" />`)
	assert.Contains(t, res.stdout, `<script src="/scalerui/javascript/scalerui.js" type="text/javascript"></script>`)
}

func TestInstallAssetsOverride(t *testing.T) {
	isolateCLI(t, "")
	catalogDir := writeCatalog(t, "", map[string]map[string]string{"0.1": standardArchive})
	dir := t.TempDir()
	assets := filepath.Join(dir, "static")

	res := runCLI("--install", "--dir", dir, "--assets", assets, "--catalog", catalogDir)
	require.NoError(t, res.err)
	assert.Equal(t, standardArchive, testutil.ReadTree(t, filepath.Join(assets, "scalerui")))
	_, err := os.Stat(frameworkDir(dir))
	assert.True(t, os.IsNotExist(err))
}

func TestInstallExplicitVersion(t *testing.T) {
	isolateCLI(t, "")
	catalogDir := writeCatalog(t, "", map[string]map[string]string{
		"0.1": {"css/scalerui.css": "v1"},
		"0.2": {"css/scalerui.css": "v2"},
	})
	dir := t.TempDir()

	require.NoError(t, runCLI("--install", "--dir", dir, "--catalog", catalogDir, "--version", "0.1").err)
	assert.Equal(t, map[string]string{"css/scalerui.css": "v1"}, testutil.ReadTree(t, frameworkDir(dir)))
}

func TestInstallMissingVersion(t *testing.T) {
	isolateCLI(t, "")
	catalogDir := writeCatalog(t, "", map[string]map[string]string{"0.1": standardArchive})
	dir := t.TempDir()

	res := runCLI("--install", "--dir", dir, "--catalog", catalogDir, "--version", "9.9")
	require.Error(t, res.err)
	assert.True(t, catalog.IsNoSourceArchive(res.err))
	_, err := os.Stat(frameworkDir(dir))
	assert.True(t, os.IsNotExist(err))
}

func TestInstallOverwritePrompt(t *testing.T) {
	tests := []struct {
		name      string
		stdin     string
		overwrite bool
	}{
		{name: "yes", stdin: "y\n", overwrite: true},
		{name: "no", stdin: "n\n", overwrite: false},
		{name: "empty", stdin: "\n", overwrite: false},
		{name: "eof", stdin: "", overwrite: false},
		{name: "unrecognised answer at eof", stdin: "maybe", overwrite: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateCLI(t, tt.stdin)
			catalogDir := writeCatalog(t, "", map[string]map[string]string{"0.1": standardArchive})
			dir := t.TempDir()
			writeProjectFile(t, filepath.Join(frameworkDir(dir), "css", "old.css"), "old")

			res := runCLI("--install", "--dir", dir, "--catalog", catalogDir)
			require.NoError(t, res.err)
			assert.Contains(t, res.stdout, "[y/N]")
			assert.Contains(t, res.stdout, "-css/old.css")

			tree := testutil.ReadTree(t, frameworkDir(dir))
			if tt.overwrite {
				assert.Equal(t, standardArchive, tree)
				return
			}
			assert.Equal(t, map[string]string{"css/old.css": "old"}, tree)
			assert.Contains(t, res.stderr, "Aborted")
		})
	}
}

func TestInstallOverwriteFlags(t *testing.T) {
	isolateCLI(t, "")
	catalogDir := writeCatalog(t, "", map[string]map[string]string{"0.1": standardArchive})
	dir := t.TempDir()
	writeProjectFile(t, filepath.Join(frameworkDir(dir), "css", "old.css"), "old")

	res := runCLI("--install", "--dir", dir, "--catalog", catalogDir, "--no-overwrite")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "[y/N]")
	assert.Equal(t, map[string]string{"css/old.css": "old"}, testutil.ReadTree(t, frameworkDir(dir)))

	res = runCLI("--install", "--dir", dir, "--catalog", catalogDir, "--yes")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "[y/N]")
	assert.Equal(t, standardArchive, testutil.ReadTree(t, frameworkDir(dir)))
}

func TestInstallUsesHuhOnTerminal(t *testing.T) {
	isolateCLI(t, "")
	isTerminal = func() bool { return true }
	called := false
	origHuh := newHuhConfirmer
	newHuhConfirmer = func() install.Confirmer {
		return install.ConfirmFunc(func(install.OverwritePreview) (bool, error) {
			called = true
			return true, nil
		})
	}
	t.Cleanup(func() { newHuhConfirmer = origHuh })

	catalogDir := writeCatalog(t, "", map[string]map[string]string{"0.1": standardArchive})
	dir := t.TempDir()
	writeProjectFile(t, filepath.Join(frameworkDir(dir), "css", "old.css"), "old")

	require.NoError(t, runCLI("--install", "--dir", dir, "--catalog", catalogDir).err)
	assert.True(t, called)
	assert.Equal(t, standardArchive, testutil.ReadTree(t, frameworkDir(dir)))
}

func TestInstallFromConfigFile(t *testing.T) {
	isolateCLI(t, "")
	dir := t.TempDir()
	writeCatalog(t, filepath.Join(dir, "vendor", "archives"), map[string]map[string]string{
		"0.1": {"css/scalerui.css": "v1"},
		"0.2": {"css/scalerui.css": "v2"},
	})
	writeProjectFile(t, filepath.Join(dir, config.FileName), `[install]
assets = "web"
version = "0.1"
catalog = "vendor/archives"
overwrite = "always"
`)
	writeProjectFile(t, filepath.Join(dir, "web", "scalerui", "css", "old.css"), "old")

	res := runCLI("--install", "--dir", dir)
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "[y/N]")
	assert.Equal(t, map[string]string{"css/scalerui.css": "v1"}, testutil.ReadTree(t, filepath.Join(dir, "web", "scalerui")))
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	isolateCLI(t, "")
	dir := t.TempDir()
	catalogDir := writeCatalog(t, "", map[string]map[string]string{
		"0.1": {"css/scalerui.css": "v1"},
		"0.2": {"css/scalerui.css": "v2"},
	})
	writeProjectFile(t, filepath.Join(dir, config.FileName), `[install]
version = "0.1"
catalog = "missing"
`)

	require.NoError(t, runCLI("--install", "--dir", dir, "--catalog", catalogDir, "--version", "latest").err)
	assert.Equal(t, map[string]string{"css/scalerui.css": "v2"}, testutil.ReadTree(t, frameworkDir(dir)))
}

func TestExplicitConfigFlag(t *testing.T) {
	isolateCLI(t, "")
	dir := t.TempDir()
	catalogDir := writeCatalog(t, "", map[string]map[string]string{"0.1": standardArchive})
	cfgPath := filepath.Join(t.TempDir(), "custom.toml")
	writeProjectFile(t, cfgPath, "[install]\ncatalog = \""+catalogDir+"\"\n")

	require.NoError(t, runCLI("--install", "--dir", dir, "--config", cfgPath).err)
	assert.Equal(t, standardArchive, testutil.ReadTree(t, frameworkDir(dir)))

	res := runCLI("--install", "--dir", dir, "--config", filepath.Join(dir, "nope.toml"))
	require.Error(t, res.err)
	assert.True(t, config.IsConfigurationError(res.err))
}

func TestInvalidConfigFile(t *testing.T) {
	isolateCLI(t, "")
	dir := t.TempDir()
	writeProjectFile(t, filepath.Join(dir, config.FileName), "[install]\nmirror = \"x\"\n")

	res := runCLI("--remove", "--dir", dir)
	require.Error(t, res.err)
	assert.True(t, config.IsConfigurationError(res.err))
	assert.Contains(t, res.err.Error(), "unrecognized keys")
}

func TestCatalogFromEnvironment(t *testing.T) {
	isolateCLI(t, "")
	catalogDir := writeCatalog(t, "", map[string]map[string]string{"0.1": standardArchive})
	t.Setenv("SCALERUI_CATALOG", catalogDir)
	dir := t.TempDir()

	res := runCLI("--install", "--dir", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Installing Scaler UI from "+catalogDir)
}

func TestCatalogNextToExecutable(t *testing.T) {
	isolateCLI(t, "")
	exeDir := t.TempDir()
	executablePath = func() (string, error) { return filepath.Join(exeDir, "scalerui"), nil }
	writeCatalog(t, filepath.Join(exeDir, "archives"), map[string]map[string]string{"0.3": standardArchive})
	dir := t.TempDir()

	res := runCLI("--install", "--dir", dir)
	require.NoError(t, res.err)
	assert.Equal(t, standardArchive, testutil.ReadTree(t, frameworkDir(dir)))
}

func TestVerboseLogsStateTransitions(t *testing.T) {
	isolateCLI(t, "")
	catalogDir := writeCatalog(t, "", map[string]map[string]string{"0.1": standardArchive})

	res := runCLI("--install", "--dir", t.TempDir(), "--catalog", catalogDir, "--verbose")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "extracting_archive")
	assert.Contains(t, res.stderr, "scalerui")

	res = runCLI("--install", "--dir", t.TempDir(), "--catalog", catalogDir)
	require.NoError(t, res.err)
	assert.NotContains(t, res.stderr, "extracting_archive")
}

func TestRemove(t *testing.T) {
	isolateCLI(t, "")
	dir := t.TempDir()
	writeProjectFile(t, filepath.Join(frameworkDir(dir), "css", "scalerui.css"), "body{}")
	writeProjectFile(t, filepath.Join(dir, "public", "app.js"), "app")

	res := runCLI("--remove", "--dir", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Removed "+frameworkDir(dir))
	_, err := os.Stat(frameworkDir(dir))
	assert.True(t, os.IsNotExist(err))
	assert.FileExists(t, filepath.Join(dir, "public", "app.js"))

	res = runCLI("--remove", "--dir", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Nothing to clean up")
}

func TestList(t *testing.T) {
	isolateCLI(t, "")
	catalogDir := writeCatalog(t, "", map[string]map[string]string{
		"0.1": standardArchive,
		"0.2": standardArchive,
	})
	writeProjectFile(t, filepath.Join(catalogDir, "README"), "not an archive")

	res := runCLI("--list", "--catalog", catalogDir)
	require.NoError(t, res.err)
	assert.Equal(t, "Available versions in "+catalogDir+":\n  - 0.1\n  - 0.2\n", res.stdout)

	empty := t.TempDir()
	res = runCLI("--list", "--catalog", empty)
	require.NoError(t, res.err)
	assert.Equal(t, "No archives found in "+empty+"\n", res.stdout)
}

func TestFlagValidation(t *testing.T) {
	isolateCLI(t, "")
	dir := t.TempDir()
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no action", args: []string{"--dir", dir}, wantErr: "one of --install, --remove, or --list is required"},
		{name: "install and remove", args: []string{"--install", "--remove", "--dir", dir}, wantErr: "only one of"},
		{name: "yes and no-overwrite", args: []string{"--install", "--yes", "--no-overwrite", "--dir", dir}, wantErr: "cannot be used together"},
		{name: "missing dir for install", args: []string{"--install"}, wantErr: "install directory is required"},
		{name: "missing dir for remove", args: []string{"--remove", "--dir", "  "}, wantErr: "install directory is required"},
		{name: "positional args", args: []string{"--install", "--dir", dir, "extra"}, wantErr: "unexpected arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(tt.args...)
			require.Error(t, res.err)
			assert.True(t, config.IsConfigurationError(res.err), "want ConfigurationError, got %T", res.err)
			assert.Contains(t, res.err.Error(), tt.wantErr)
		})
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPrintSnippet(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printSnippet(&out, map[string][]string{
		"css":        {"theme.css", "scalerui.css", "notes.txt"},
		"javascript": {"scalerui.js", "scalerui.js.map"},
	}))
	got := out.String()
	assert.Contains(t, got, "/scalerui/css/scalerui.css")
	assert.Contains(t, got, "/scalerui/css/theme.css")
	assert.NotContains(t, got, "notes.txt")
	assert.NotContains(t, got, "scalerui.js.map")

	out.Reset()
	require.NoError(t, printSnippet(&out, map[string][]string{}))
	assert.Contains(t, out.String(), "no stylesheets or scripts")
}
