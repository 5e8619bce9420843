package install

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/scalerapps/scalerui/internal/messages"
)

// maxEntryBytes caps a single extracted file to guard against decompression bombs.
var maxEntryBytes int64 = 256 << 20

// archiveVisitFunc receives each safe archive entry. rel is the cleaned
// relative path in OS form; body is only readable for regular files.
type archiveVisitFunc func(hdr *tar.Header, rel string, body io.Reader) error

// walkArchive opens a gzip-compressed tar archive and calls fn for every entry
// whose name is safe to join under a destination directory.
func walkArchive(sys System, archivePath string, fn archiveVisitFunc) error {
	f, err := sys.Open(archivePath)
	if err != nil {
		return fmt.Errorf(messages.ArchiveOpenFmt, archivePath, err)
	}
	defer func() {
		// Read-only handle.
		_ = f.Close()
	}()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf(messages.ArchiveGzipFmt, archivePath, err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf(messages.ArchiveReadEntryFmt, err)
		}
		rel, ok, err := safeEntryPath(hdr.Name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := fn(hdr, rel, tr); err != nil {
			return err
		}
	}
}

// extractArchive decompresses archivePath into dest. Only directories and
// regular files are materialised; links and devices are skipped.
func extractArchive(sys System, archivePath string, dest string, logger *log.Logger) error {
	return walkArchive(sys, archivePath, func(hdr *tar.Header, rel string, body io.Reader) error {
		target := filepath.Join(dest, rel)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := sys.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf(messages.ArchiveCreateDirFmt, target, err)
			}
		case tar.TypeReg:
			parent := filepath.Dir(target)
			if err := sys.MkdirAll(parent, 0o755); err != nil {
				return fmt.Errorf(messages.ArchiveCreateDirFmt, parent, err)
			}
			return writeEntry(sys, target, hdr, body)
		default:
			logger.Debug(messages.ArchiveSkipEntry, "name", hdr.Name, "type", string(hdr.Typeflag))
		}
		return nil
	})
}

// manifestEntry is one regular file with a short digest of its contents.
type manifestEntry struct {
	Path string
	Sum  string
}

// listArchiveFiles returns the slash path and content digest of every regular
// file in the archive, in archive order.
func listArchiveFiles(sys System, archivePath string) ([]manifestEntry, error) {
	files := []manifestEntry{}
	err := walkArchive(sys, archivePath, func(hdr *tar.Header, rel string, body io.Reader) error {
		if hdr.Typeflag != tar.TypeReg {
			return nil
		}
		sum, err := contentSum(body)
		if err != nil {
			return fmt.Errorf(messages.ArchiveReadEntryFmt, err)
		}
		files = append(files, manifestEntry{Path: filepath.ToSlash(rel), Sum: sum})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// contentSum returns the first 12 hex digits of the SHA-256 of r, reading at
// most maxEntryBytes.
func contentSum(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, io.LimitReader(r, maxEntryBytes)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil))[:12], nil
}

func writeEntry(sys System, target string, hdr *tar.Header, body io.Reader) (err error) {
	mode := hdr.FileInfo().Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := sys.Create(target, mode)
	if err != nil {
		return fmt.Errorf(messages.ArchiveWriteEntryFmt, target, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf(messages.ArchiveWriteEntryFmt, target, closeErr)
		}
	}()
	written, err := io.Copy(out, io.LimitReader(body, maxEntryBytes+1))
	if err != nil {
		return fmt.Errorf(messages.ArchiveWriteEntryFmt, target, err)
	}
	if written > maxEntryBytes {
		return fmt.Errorf(messages.ArchiveEntryTooLarge, hdr.Name, maxEntryBytes)
	}
	return nil
}

// safeEntryPath cleans an archive entry name. It reports ok=false for the
// archive root and fails for absolute names or names that climb out of it.
func safeEntryPath(name string) (string, bool, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false, nil
	}
	slashed := strings.ReplaceAll(trimmed, `\`, "/")
	if path.IsAbs(slashed) || filepath.IsAbs(trimmed) || filepath.VolumeName(trimmed) != "" {
		return "", false, fmt.Errorf(messages.ArchiveUnsafePathFmt, name)
	}
	clean := path.Clean(slashed)
	if clean == "." {
		return "", false, nil
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false, fmt.Errorf(messages.ArchiveUnsafePathFmt, name)
	}
	return filepath.FromSlash(clean), true, nil
}

// isCategoryName reports whether name is one of the archive's asset directories.
func isCategoryName(name string, categories []string) bool {
	for _, category := range categories {
		if name == category {
			return true
		}
	}
	return false
}

// existsDir reports whether path is a directory according to sys.
func existsDir(sys System, path string) bool {
	info, err := sys.Stat(path)
	return err == nil && info.IsDir()
}
