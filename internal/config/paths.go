package config

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/scalerapps/scalerui/internal/messages"
)

// Fixed names of the installed layout.
const (
	FrameworkDirName     = "scalerui"
	ImagesDirName        = "images"
	ScriptsDirName       = "javascript"
	StylesDirName        = "css"
	DefaultAssetsDirName = "public"
	// LatestVersion selects the lexicographically greatest archive in the catalog.
	LatestVersion = "latest"
)

var expandHome = homedir.Expand

// Request is the caller's description of an install or removal target.
type Request struct {
	InstallDir string
	// AssetsDir overrides InstallDir/public when set.
	AssetsDir string
	// Version is "latest" or an explicit version token. Empty means latest.
	Version string
}

// Selector returns the version selector with the default applied.
func (r Request) Selector() string {
	version := strings.TrimSpace(r.Version)
	if version == "" {
		return LatestVersion
	}
	return version
}

// Paths holds every path derived from a Request. It is computed once and
// passed by value.
type Paths struct {
	InstallDir   string
	AssetsDir    string
	FrameworkDir string
	ImagesDir    string
	ScriptsDir   string
	StylesDir    string
}

// Category pairs an archive top-level directory with its install target.
type Category struct {
	Name string
	Dir  string
}

// Categories returns the archive directories and their targets in placement order.
func (p Paths) Categories() []Category {
	return []Category{
		{Name: StylesDirName, Dir: p.StylesDir},
		{Name: ImagesDirName, Dir: p.ImagesDir},
		{Name: ScriptsDirName, Dir: p.ScriptsDir},
	}
}

// Dirs returns the framework directory followed by its subdirectories.
func (p Paths) Dirs() []string {
	return []string{p.FrameworkDir, p.ImagesDir, p.ScriptsDir, p.StylesDir}
}

// ResolvePaths derives the path set for req. It touches nothing on disk and
// fails with a ConfigurationError when the install directory is missing.
func ResolvePaths(req Request) (Paths, error) {
	installDir, err := cleanPath(req.InstallDir)
	if err != nil {
		return Paths{}, err
	}
	if installDir == "" {
		return Paths{}, NewConfigurationError(messages.InstallDirRequired)
	}
	assetsDir, err := cleanPath(req.AssetsDir)
	if err != nil {
		return Paths{}, err
	}
	if assetsDir == "" {
		assetsDir = filepath.Join(installDir, DefaultAssetsDirName)
	}
	frameworkDir := filepath.Join(assetsDir, FrameworkDirName)
	return Paths{
		InstallDir:   installDir,
		AssetsDir:    assetsDir,
		FrameworkDir: frameworkDir,
		ImagesDir:    filepath.Join(frameworkDir, ImagesDirName),
		ScriptsDir:   filepath.Join(frameworkDir, ScriptsDirName),
		StylesDir:    filepath.Join(frameworkDir, StylesDirName),
	}, nil
}

// cleanPath trims, expands a leading ~ and cleans path. Empty input stays empty.
func cleanPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", wrapConfigurationError(err)
	}
	return filepath.Clean(expanded), nil
}
