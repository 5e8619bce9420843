package install

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/scalerapps/scalerui/internal/messages"
)

// DefaultDiffMaxLines is the default maximum number of preview diff lines.
const DefaultDiffMaxLines = 40

// OverwritePreview describes what replacing an existing installation changes.
// It is shown to the Confirmer before anything is deleted.
type OverwritePreview struct {
	FrameworkDir string
	// Archive is empty when the archive could not be resolved for the preview.
	Archive string
	// Installed and Incoming are sorted slash paths relative to FrameworkDir.
	Installed   []string
	Incoming    []string
	UnifiedDiff string
	Truncated   bool
}

// HasChanges reports whether the installed and incoming files differ in name or content.
func (p OverwritePreview) HasChanges() bool {
	return strings.TrimSpace(p.UnifiedDiff) != ""
}

func normalizeDiffMaxLines(value int) int {
	if value <= 0 {
		return DefaultDiffMaxLines
	}
	return value
}

// buildOverwritePreview is best effort: read failures leave the affected side empty.
// Each manifest line carries a content digest so changed files show up even
// when the file names match.
func (inst *installer) buildOverwritePreview() OverwritePreview {
	preview := OverwritePreview{FrameworkDir: inst.paths.FrameworkDir}
	installed, err := inst.installedFiles()
	if err != nil {
		inst.logger.Debug(messages.PreviewInstalledFailed, "error", err)
	}
	preview.Installed = manifestPaths(installed)

	var incoming []manifestEntry
	archive, err := inst.source.Resolve(inst.version)
	if err != nil {
		inst.logger.Debug(messages.PreviewResolveFailed, "error", err)
	} else {
		preview.Archive = archive
		files, err := listArchiveFiles(inst.sys, archive)
		if err != nil {
			inst.logger.Debug(messages.PreviewArchiveFailed, "error", err)
		}
		incoming = inst.incomingFiles(files)
		preview.Incoming = manifestPaths(incoming)
	}

	preview.UnifiedDiff, preview.Truncated = renderTruncatedUnifiedDiff(
		"installed",
		"incoming",
		manifestContent(installed),
		manifestContent(incoming),
		inst.diffMaxLines,
	)
	return preview
}

func (inst *installer) installedFiles() ([]manifestEntry, error) {
	root := inst.paths.FrameworkDir
	files := []manifestEntry{}
	err := inst.sys.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		sum, err := inst.fileSum(path)
		if err != nil {
			return err
		}
		files = append(files, manifestEntry{Path: filepath.ToSlash(rel), Sum: sum})
		return nil
	})
	sortManifest(files)
	return files, err
}

func (inst *installer) fileSum(path string) (string, error) {
	f, err := inst.sys.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	return contentSum(f)
}

// incomingFiles maps archive paths onto the installed layout, unwrapping a
// single top-level directory and dropping files outside the asset categories.
func (inst *installer) incomingFiles(archiveFiles []manifestEntry) []manifestEntry {
	categories := make([]string, 0, 3)
	for _, category := range inst.paths.Categories() {
		categories = append(categories, category.Name)
	}
	paths := stripSharedRoot(manifestPaths(archiveFiles), categories)
	out := []manifestEntry{}
	for i, file := range paths {
		first, _, found := strings.Cut(file, "/")
		if !found || !isCategoryName(first, categories) {
			continue
		}
		out = append(out, manifestEntry{Path: file, Sum: archiveFiles[i].Sum})
	}
	sortManifest(out)
	return out
}

func sortManifest(entries []manifestEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
}

func manifestPaths(entries []manifestEntry) []string {
	if entries == nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Path)
	}
	return out
}

func stripSharedRoot(files []string, categories []string) []string {
	if len(files) == 0 {
		return files
	}
	shared := ""
	for _, file := range files {
		first, _, found := strings.Cut(file, "/")
		if !found || isCategoryName(first, categories) {
			return files
		}
		if shared == "" {
			shared = first
		}
		if first != shared {
			return files
		}
	}
	out := make([]string, 0, len(files))
	for _, file := range files {
		out = append(out, strings.TrimPrefix(file, shared+"/"))
	}
	return out
}

func manifestContent(entries []manifestEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, messages.PreviewManifestLineFmt, entry.Path, entry.Sum)
	}
	return b.String()
}

func renderTruncatedUnifiedDiff(fromName string, toName string, fromContent string, toContent string, maxLines int) (string, bool) {
	limit := normalizeDiffMaxLines(maxLines)
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := splitDiffLines(diff)
	if len(lines) <= limit {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}
	truncated := append(lines[:limit:limit], fmt.Sprintf(messages.PreviewDiffTruncateFmt, limit))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" {
		return ""
	}
	if strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
