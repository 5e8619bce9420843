package testutil

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// ArchiveEntry describes one tar entry written by WriteArchiveEntries.
type ArchiveEntry struct {
	Name     string
	Body     string
	Typeflag byte
	Linkname string
}

// WriteArchive writes a gzip-compressed tar archive at archivePath holding files
// (slash path -> content). Parent directory entries are emitted before their files.
// t is the active test; archivePath is the destination file.
func WriteArchive(t *testing.T, archivePath string, files map[string]string) {
	t.Helper()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	seenDirs := map[string]struct{}{}
	entries := []ArchiveEntry{}
	for _, name := range names {
		for _, dir := range parentDirs(name) {
			if _, ok := seenDirs[dir]; ok {
				continue
			}
			seenDirs[dir] = struct{}{}
			entries = append(entries, ArchiveEntry{Name: dir + "/", Typeflag: tar.TypeDir})
		}
		entries = append(entries, ArchiveEntry{Name: name, Body: files[name], Typeflag: tar.TypeReg})
	}
	WriteArchiveEntries(t, archivePath, entries)
}

// WriteArchiveEntries writes entries verbatim, in order, as a tar.gz archive.
// t is the active test; archivePath is the destination file.
func WriteArchiveEntries(t *testing.T, archivePath string, entries []ArchiveEntry) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		t.Fatalf("create archive dir: %v", err)
	}
	f, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for _, entry := range entries {
		hdr := &tar.Header{
			Name:     entry.Name,
			Typeflag: entry.Typeflag,
			Linkname: entry.Linkname,
			Mode:     0o644,
		}
		switch entry.Typeflag {
		case tar.TypeDir:
			hdr.Mode = 0o755
		case tar.TypeReg:
			hdr.Size = int64(len(entry.Body))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write tar header %s: %v", entry.Name, err)
		}
		if entry.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(entry.Body)); err != nil {
				t.Fatalf("write tar body %s: %v", entry.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
}

// ReadTree returns every regular file under root as slash path -> content.
// t is the active test; root is the directory to walk.
func ReadTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("read tree %s: %v", root, err)
	}
	return out
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
// t is the active test; dir is the temporary working directory for fn.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}

func parentDirs(name string) []string {
	dir := path.Dir(strings.TrimSuffix(name, "/"))
	if dir == "." || dir == "/" {
		return nil
	}
	return append(parentDirs(dir), dir)
}
