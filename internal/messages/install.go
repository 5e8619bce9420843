package messages

// Install and remove messages.
const (
	// InstallSystemRequired indicates system is required for install.
	InstallSystemRequired     = "install system is required"
	InstallSourceRequired     = "archive source is required"
	InstallConfirmerRequired  = "overwrite confirmation handler is required"
	InstallFrameworkDirNeeded = "framework directory is required"

	InstallStatExistingFmt     = "failed to stat %s: %w"
	InstallRemoveExistingFmt   = "failed to remove existing installation %s: %w"
	InstallCreateWorkspaceFmt  = "failed to create temporary workspace: %w"
	InstallCategoryMissingFmt  = "archive has no %s/ directory; %s left empty"
	InstallRollbackFailedFmt   = "%w; rollback of %s failed: %v"
	InstallReadDirFmt          = "read %s: %w"
	InstallMoveFmt             = "move %s to %s: %w"
	InstallCopyFmt             = "copy %s to %s: %w"
	InstallWorkspaceCleanupFmt = "failed to remove temporary workspace %s"

	ArchiveOpenFmt         = "open archive %s: %w"
	ArchiveGzipFmt         = "read gzip stream of %s: %w"
	ArchiveReadEntryFmt    = "read tar entry: %w"
	ArchiveUnsafePathFmt   = "unsafe archive path: %s"
	ArchiveEntryTooLarge   = "archive entry %s exceeds %d bytes"
	ArchiveWriteEntryFmt   = "write extracted file %s: %w"
	ArchiveCreateDirFmt    = "create directory %s: %w"
	ArchiveSkipEntry       = "skipping unsupported archive entry"
	ArchiveRootFmt         = "using %s/ as archive root"
	PreviewDiffTruncateFmt = "... (truncated to %d lines)"
	PreviewManifestLineFmt = "%s  sha256:%s\n"
	PreviewInstalledFailed = "preview: list installed files"
	PreviewResolveFailed   = "preview: resolve archive"
	PreviewArchiveFailed   = "preview: list archive"

	RemoveStatFmt      = "failed to stat %s: %w"
	RemoveFailedFmt    = "failed to remove %s: %w"
	RemoveNothingDebug = "nothing to remove"
	RemoveDoneDebug    = "removed framework directory"

	ConfigurationErrorFmt       = "configuration error: %s"
	NoSourceArchiveErrorFmt     = "no source archive for version %q in %s"
	NoSourceArchiveReasonFmt    = "no source archive for version %q in %s: %s"
	DirectoryCreationErrorFmt   = "directory creation failed for %s: %v"
	FilePlacementErrorFmt       = "file placement failed for %s: %v"
	CatalogEmpty                = "catalog is empty"
	CatalogNotRegularFmt        = "%s is not a regular file"
	CatalogMissing              = "archive not found"
	CatalogReadFailedFmt        = "read catalog: %v"
	CatalogInvalidSelector      = "version must not contain path separators"
	CatalogDirRequired          = "catalog directory is required"
	InstallDirRequired          = "install directory is required (use --dir)"
	StateTransition             = "state"
	StateTransitionRollback     = "rolling back framework directory"
	StateTransitionWorkspace    = "removing temporary workspace"
	StateTransitionExistingGone = "removed existing installation"
)
