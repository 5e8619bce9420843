package install

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/scalerapps/scalerui/internal/config"
	"github.com/scalerapps/scalerui/internal/messages"
)

// placeFiles moves each category's entries from the workspace into the
// framework tree. Every category is attempted; failures are joined.
func (inst *installer) placeFiles(workspace string) (map[string][]string, error) {
	categories := inst.paths.Categories()
	root := inst.archiveRoot(workspace, categories)
	placed := make(map[string][]string, len(categories))
	var errs []error
	for _, category := range categories {
		names, err := inst.placeCategory(filepath.Join(root, category.Name), category)
		if err != nil {
			errs = append(errs, &FilePlacementError{Category: category.Name, Path: category.Dir, Err: err})
			continue
		}
		placed[category.Name] = names
	}
	if len(errs) > 0 {
		return placed, errors.Join(errs...)
	}
	return placed, nil
}

// archiveRoot returns the directory holding css/, images/ and javascript/.
// Archives that wrap everything in one top-level directory are unwrapped.
func (inst *installer) archiveRoot(workspace string, categories []config.Category) string {
	for _, category := range categories {
		if existsDir(inst.sys, filepath.Join(workspace, category.Name)) {
			return workspace
		}
	}
	entries, err := inst.sys.ReadDir(workspace)
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return workspace
	}
	inst.logger.Debug(fmt.Sprintf(messages.ArchiveRootFmt, entries[0].Name()))
	return filepath.Join(workspace, entries[0].Name())
}

func (inst *installer) placeCategory(src string, category config.Category) ([]string, error) {
	entries, err := inst.sys.ReadDir(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			inst.logger.Warn(fmt.Sprintf(messages.InstallCategoryMissingFmt, category.Name, category.Dir))
			return []string{}, nil
		}
		return nil, fmt.Errorf(messages.InstallReadDirFmt, src, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(category.Dir, entry.Name())
		if err := moveEntry(inst.sys, from, to); err != nil {
			return names, err
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// moveEntry renames src to dst, falling back to copy-and-delete when the
// workspace and the target live on different filesystems.
func moveEntry(sys System, src string, dst string) error {
	err := sys.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, unix.EXDEV) {
		return fmt.Errorf(messages.InstallMoveFmt, src, dst, err)
	}
	if err := copyTree(sys, src, dst); err != nil {
		return fmt.Errorf(messages.InstallCopyFmt, src, dst, err)
	}
	return sys.RemoveAll(src)
}

func copyTree(sys System, src string, dst string) error {
	return sys.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		switch {
		case d.IsDir():
			return sys.MkdirAll(target, 0o755)
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return copyFile(sys, path, target, info.Mode().Perm())
		default:
			return nil
		}
	})
}

func copyFile(sys System, src string, dst string, perm os.FileMode) (err error) {
	in, err := sys.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := sys.Create(dst, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	_, err = io.Copy(out, in)
	return err
}
