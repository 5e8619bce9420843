package install

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/scalerapps/scalerui/internal/catalog"
	"github.com/scalerapps/scalerui/internal/config"
	"github.com/scalerapps/scalerui/internal/testutil"
)

// faultSystem is a test helper that allows deterministic error injection for the
// installer System interface without chmod-based permission tricks.
type faultSystem struct {
	base       System
	lstatErrs  map[string]error
	mkdirErrs  map[string]error
	removeErrs map[string]error
	renameErrs map[string]error
	readErrs   map[string]error
	tempErr    error
	// removeHook, when set, is consulted before removeErrs.
	removeHook func(path string) error
}

func newFaultSystem(base System) *faultSystem {
	return &faultSystem{
		base:       base,
		lstatErrs:  map[string]error{},
		mkdirErrs:  map[string]error{},
		removeErrs: map[string]error{},
		renameErrs: map[string]error{},
		readErrs:   map[string]error{},
	}
}

func normalizePath(path string) string {
	return filepath.Clean(path)
}

func (f *faultSystem) Lstat(name string) (os.FileInfo, error) {
	if err, ok := f.lstatErrs[normalizePath(name)]; ok {
		return nil, err
	}
	return f.base.Lstat(name)
}

func (f *faultSystem) Stat(name string) (os.FileInfo, error) {
	return f.base.Stat(name)
}

func (f *faultSystem) MkdirAll(path string, perm os.FileMode) error {
	if err, ok := f.mkdirErrs[normalizePath(path)]; ok {
		return err
	}
	return f.base.MkdirAll(path, perm)
}

func (f *faultSystem) MkdirTemp(dir string, pattern string) (string, error) {
	if f.tempErr != nil {
		return "", f.tempErr
	}
	return f.base.MkdirTemp(dir, pattern)
}

func (f *faultSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if err, ok := f.readErrs[normalizePath(name)]; ok {
		return nil, err
	}
	return f.base.ReadDir(name)
}

func (f *faultSystem) RemoveAll(path string) error {
	if f.removeHook != nil {
		if err := f.removeHook(path); err != nil {
			return err
		}
	}
	if err, ok := f.removeErrs[normalizePath(path)]; ok {
		return err
	}
	return f.base.RemoveAll(path)
}

// Rename faults are keyed by the destination path.
func (f *faultSystem) Rename(oldpath string, newpath string) error {
	if err, ok := f.renameErrs[normalizePath(newpath)]; ok {
		return err
	}
	return f.base.Rename(oldpath, newpath)
}

func (f *faultSystem) Open(name string) (io.ReadCloser, error) {
	return f.base.Open(name)
}

func (f *faultSystem) Create(name string, perm os.FileMode) (io.WriteCloser, error) {
	return f.base.Create(name, perm)
}

func (f *faultSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	return f.base.WalkDir(root, fn)
}

// standardArchive is the content of a well-formed framework archive.
var standardArchive = map[string]string{
	"css/scalerui.css":       "body{}",
	"images/logo.png":        "png",
	"javascript/scalerui.js": "init();",
}

type fixture struct {
	paths     config.Paths
	catalog   catalog.Dir
	workspace string
}

// newFixture resolves paths for a fresh install dir and writes archives into a
// catalog. archives maps version -> archive content.
func newFixture(t *testing.T, archives map[string]map[string]string) fixture {
	t.Helper()
	paths, err := config.ResolvePaths(config.Request{InstallDir: t.TempDir()})
	if err != nil {
		t.Fatalf("ResolvePaths: %v", err)
	}
	catalogDir := t.TempDir()
	for version, files := range archives {
		testutil.WriteArchive(t, filepath.Join(catalogDir, catalog.ArchiveName(version)), files)
	}
	return fixture{paths: paths, catalog: catalog.New(catalogDir), workspace: t.TempDir()}
}

func (fx fixture) options(sys System, confirmer Confirmer) Options {
	return Options{
		Source:    fx.catalog,
		Confirmer: confirmer,
		System:    sys,
		TempDir:   fx.workspace,
	}
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected %s to be empty, found %d entries", dir, len(entries))
	}
}

func requireMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent, got err=%v", path, err)
	}
}
