// Package catalog locates versioned framework archives in a local directory.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scalerapps/scalerui/internal/messages"
)

// Archive naming convention: scalerui-<version>.tar.gz.
const (
	ArchivePrefix = "scalerui-"
	ArchiveSuffix = ".tar.gz"
	// Latest is the selector that picks the greatest archive name.
	Latest = "latest"
)

// Source resolves a version selector to an archive path.
type Source interface {
	Resolve(selector string) (string, error)
}

// Dir is a catalog backed by a directory on disk.
type Dir struct {
	Path string
}

// New returns a catalog rooted at path.
func New(path string) Dir {
	return Dir{Path: path}
}

// ArchiveName returns the file name expected for an explicit version.
func ArchiveName(version string) string {
	return ArchivePrefix + version + ArchiveSuffix
}

// Resolve returns the archive path for selector. "latest" (or an empty
// selector) picks the last entry of the catalog sorted by name, which is a
// lexicographic order and not a semantic-version order.
func (d Dir) Resolve(selector string) (string, error) {
	selector = strings.TrimSpace(selector)
	if strings.TrimSpace(d.Path) == "" {
		return "", d.fail(selector, messages.CatalogDirRequired, nil)
	}
	if selector == "" || strings.EqualFold(selector, Latest) {
		return d.resolveLatest(selector)
	}
	return d.resolveExplicit(selector)
}

func (d Dir) resolveLatest(selector string) (string, error) {
	if selector == "" {
		selector = Latest
	}
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return "", d.fail(selector, fmt.Sprintf(messages.CatalogReadFailedFmt, err), err)
	}
	if len(entries) == 0 {
		return "", d.fail(selector, messages.CatalogEmpty, nil)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	path := filepath.Join(d.Path, names[len(names)-1])
	if err := requireRegularFile(path); err != nil {
		return "", d.fail(selector, err.Error(), err)
	}
	return path, nil
}

func (d Dir) resolveExplicit(selector string) (string, error) {
	// The selector becomes part of a file name; it must not walk out of the catalog.
	if strings.ContainsAny(selector, `/\`) || strings.Contains(selector, "..") {
		return "", d.fail(selector, messages.CatalogInvalidSelector, nil)
	}
	path := filepath.Join(d.Path, ArchiveName(selector))
	if err := requireRegularFile(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", d.fail(selector, messages.CatalogMissing, err)
		}
		return "", d.fail(selector, err.Error(), err)
	}
	return path, nil
}

// Versions lists the version tokens of every well-named archive in ascending
// name order.
func (d Dir) Versions() ([]string, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, d.fail(Latest, fmt.Sprintf(messages.CatalogReadFailedFmt, err), err)
	}
	versions := []string{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		version, ok := VersionFromName(entry.Name())
		if !ok {
			continue
		}
		versions = append(versions, version)
	}
	sort.Strings(versions)
	return versions, nil
}

// VersionFromName extracts the version token from an archive file name.
func VersionFromName(name string) (string, bool) {
	if !strings.HasPrefix(name, ArchivePrefix) || !strings.HasSuffix(name, ArchiveSuffix) {
		return "", false
	}
	version := strings.TrimSuffix(strings.TrimPrefix(name, ArchivePrefix), ArchiveSuffix)
	if version == "" {
		return "", false
	}
	return version, true
}

func (d Dir) fail(selector string, reason string, err error) error {
	return &NoSourceArchiveError{Selector: selector, Dir: d.Path, Reason: reason, Err: err}
}

func requireRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf(messages.CatalogNotRegularFmt, filepath.Base(path))
	}
	return nil
}
