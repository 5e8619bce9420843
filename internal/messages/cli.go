package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse   = "scalerui"
	RootShort = "Install, upgrade, or remove the Scaler UI framework"
	RootLong  = `Scaler UI Framework

Installs, upgrades, or removes Scaler UI in a web application's public
asset directory. Assets are taken from a local catalog of versioned archives
(scalerui-<version>.tar.gz) and placed under <assets>/scalerui/{css,images,javascript}.`
	RootExample = `  scalerui --install --dir ./myapp
  scalerui --install --dir ./myapp --version 0.2 --yes
  scalerui --remove --dir ./myapp
  scalerui --list`

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionBannerFmt = "scalerui %s\n"
	VersionUse       = "version"
	VersionShort     = "Print the scalerui version"

	FlagInstall     = "Install the UI framework (upgrades an existing installation after confirmation)"
	FlagRemove      = "Remove an installed UI framework"
	FlagList        = "List the framework versions available in the catalog"
	FlagVersion     = "Framework version to install (\"latest\" selects the greatest archive name)"
	FlagDir         = "Web application directory to install into (required for --install and --remove)"
	FlagAssets      = "Assets directory override (default <dir>/public)"
	FlagCatalog     = "Directory holding scalerui-<version>.tar.gz archives"
	FlagConfig      = "Config file (default <dir>/.scalerui.toml when present)"
	FlagYes         = "Overwrite an existing installation without prompting"
	FlagNoOverwrite = "Abort instead of overwriting an existing installation"
	FlagVerbose     = "Log installer state transitions to stderr"

	CLIActionRequired         = "one of --install, --remove, or --list is required"
	CLIActionConflict         = "only one of --install, --remove, or --list may be given"
	CLIOverwriteFlagsConflict = "--yes and --no-overwrite cannot be used together"
	CLIUnexpectedArgsFmt      = "unexpected arguments: %v"
	CLIResolveExecutableFmt   = "resolve executable path: %w"

	// PromptYesDefaultFmt formats yes/no prompts with yes as default.
	PromptYesDefaultFmt = "%s [Y/n]: "
	PromptNoDefaultFmt  = "%s [y/N]: "
	PromptRetryYesNo    = "Please enter y or n."

	OverwritePromptFmt     = "Existing Scaler UI detected at %s. All files in it will be deleted. Continue?"
	OverwritePreviewHeader = "Changes to installed files:"
	OverwriteFormTitle     = "Existing Scaler UI detected"
	OverwriteFormAffirm    = "Delete and reinstall"
	OverwriteFormNegative  = "Abort"
	OverwriteFormNoChanges = "Installed files already match the archive."
	OverwriteRequiresTerm  = "overwrite confirmation requires an interactive terminal; re-run with --yes or --no-overwrite"

	InstallStartFmt      = "Installing Scaler UI from %s into %s\n"
	InstallDoneFmt       = "Scaler UI installed into %s\n"
	InstallAborted       = "Aborted: existing installation left untouched."
	InstallSnippetHeader = "\nAdd the following to the <head> of your layout:\n\n"
	InstallSnippetCSSFmt = "<link rel=\"stylesheet\" href=\"/scalerui/css/%s\" type=\"text/css\" />\n"
	InstallSnippetJSFmt  = "<script src=\"/scalerui/javascript/%s\" type=\"text/javascript\"></script>\n"
	InstallSnippetEmpty  = "(the archive contained no stylesheets or scripts)\n"

	RemoveDoneFmt      = "Removed %s\n"
	RemoveNothingFmt   = "Nothing to clean up: %s does not exist\n"
	ListEmptyFmt       = "No archives found in %s\n"
	ListHeaderFmt      = "Available versions in %s:\n"
	ListLineFmt        = "  - %s\n"
	ErrorPrefixFmt     = "Error: %v\n"
	LoggerPrefix       = "scalerui"
	LockTimeoutFmt     = "another scalerui process is working on %s (timed out after %s)"
	LockOpenFmt        = "open lock %s: %w"
	LockAcquireFmt     = "lock %s: %w"
	CatalogEnvVar      = "SCALERUI_CATALOG"
	CatalogDefaultName = "archives"
)
