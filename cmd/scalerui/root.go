package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scalerapps/scalerui/internal/catalog"
	"github.com/scalerapps/scalerui/internal/config"
	"github.com/scalerapps/scalerui/internal/install"
	"github.com/scalerapps/scalerui/internal/lock"
	"github.com/scalerapps/scalerui/internal/messages"
	"github.com/scalerapps/scalerui/internal/prompt"
	"github.com/scalerapps/scalerui/internal/terminal"
)

var installRun = install.Run
var removeRun = install.Remove
var withTargetLock = lock.WithTarget
var isTerminal = terminal.IsInteractive
var executablePath = os.Executable
var newHuhConfirmer = func() install.Confirmer { return prompt.NewHuhConfirmer() }

const (
	flagInstall     = "install"
	flagRemove      = "remove"
	flagList        = "list"
	flagVersion     = "version"
	flagDir         = "dir"
	flagAssets      = "assets"
	flagCatalog     = "catalog"
	flagConfig      = "config"
	flagYes         = "yes"
	flagNoOverwrite = "no-overwrite"
	flagVerbose     = "verbose"
)

type rootOptions struct {
	install     bool
	remove      bool
	list        bool
	version     string
	dir         string
	assets      string
	catalog     string
	configPath  string
	yes         bool
	noOverwrite bool
	verbose     bool
}

// invocation is everything a command needs after flags, environment and
// config have been merged.
type invocation struct {
	opts       rootOptions
	cfg        *config.Config
	paths      config.Paths
	catalogDir string
	logger     *log.Logger
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Example:       messages.RootExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return config.NewConfigurationError(fmt.Sprintf(messages.CLIUnexpectedArgsFmt, args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed(flagVersion) {
				opts.version = ""
			}
			return runRoot(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&opts.install, flagInstall, false, messages.FlagInstall)
	flags.BoolVar(&opts.remove, flagRemove, false, messages.FlagRemove)
	flags.BoolVar(&opts.list, flagList, false, messages.FlagList)
	flags.StringVar(&opts.version, flagVersion, config.LatestVersion, messages.FlagVersion)
	flags.StringVar(&opts.dir, flagDir, "", messages.FlagDir)
	flags.StringVar(&opts.assets, flagAssets, "", messages.FlagAssets)
	flags.StringVar(&opts.catalog, flagCatalog, "", messages.FlagCatalog)
	flags.StringVar(&opts.configPath, flagConfig, "", messages.FlagConfig)
	flags.BoolVarP(&opts.yes, flagYes, "y", false, messages.FlagYes)
	flags.BoolVar(&opts.noOverwrite, flagNoOverwrite, false, messages.FlagNoOverwrite)
	flags.BoolVarP(&opts.verbose, flagVerbose, "v", false, messages.FlagVerbose)
	return cmd
}

func runRoot(cmd *cobra.Command, opts rootOptions) error {
	if err := validateActions(opts); err != nil {
		return err
	}
	inv, err := resolveInvocation(cmd, opts)
	if err != nil {
		return err
	}
	switch {
	case opts.list:
		return runList(cmd.OutOrStdout(), inv)
	case opts.remove:
		return withTargetLock(inv.paths.FrameworkDir, func() error {
			return runRemove(cmd.OutOrStdout(), inv)
		})
	default:
		return withTargetLock(inv.paths.FrameworkDir, func() error {
			return runInstall(cmd, inv)
		})
	}
}

func validateActions(opts rootOptions) error {
	actions := 0
	for _, set := range []bool{opts.install, opts.remove, opts.list} {
		if set {
			actions++
		}
	}
	if actions == 0 {
		return config.NewConfigurationError(messages.CLIActionRequired)
	}
	if actions > 1 {
		return config.NewConfigurationError(messages.CLIActionConflict)
	}
	if opts.yes && opts.noOverwrite {
		return config.NewConfigurationError(messages.CLIOverwriteFlagsConflict)
	}
	return nil
}

// resolveInvocation merges flags, environment and config. Precedence is
// flags, then environment, then the config file, then defaults.
func resolveInvocation(cmd *cobra.Command, opts rootOptions) (invocation, error) {
	inv := invocation{opts: opts, logger: newLogger(cmd.ErrOrStderr(), opts.verbose)}

	var installDir string
	if !opts.list || strings.TrimSpace(opts.dir) != "" {
		base, err := config.ResolvePaths(config.Request{InstallDir: opts.dir})
		if err != nil {
			return invocation{}, err
		}
		installDir = base.InstallDir
	}

	cfg, source, err := loadConfig(opts.configPath, installDir)
	if err != nil {
		return invocation{}, err
	}
	if source != "" {
		inv.logger.Debug(messages.ConfigLoadedDebug, "path", source)
	}
	inv.cfg = cfg

	if installDir != "" {
		assets := opts.assets
		if strings.TrimSpace(assets) == "" {
			assets = cfg.AssetsDir(installDir)
		}
		version := opts.version
		if strings.TrimSpace(version) == "" {
			version = cfg.VersionSelector()
		}
		paths, err := config.ResolvePaths(config.Request{InstallDir: installDir, AssetsDir: assets, Version: version})
		if err != nil {
			return invocation{}, err
		}
		inv.paths = paths
		inv.opts.version = config.Request{Version: version}.Selector()
	}

	catalogDir, err := resolveCatalogDir(opts.catalog, cfg, installDir)
	if err != nil {
		return invocation{}, err
	}
	inv.catalogDir = catalogDir
	return inv, nil
}

func loadConfig(path string, installDir string) (*config.Config, string, error) {
	if strings.TrimSpace(path) != "" {
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return config.LoadOptional(installDir)
}

// resolveCatalogDir picks the catalog directory: --catalog, $SCALERUI_CATALOG,
// the config file, then an archives directory next to the executable.
func resolveCatalogDir(flagValue string, cfg *config.Config, installDir string) (string, error) {
	if dir := strings.TrimSpace(flagValue); dir != "" {
		return filepath.Clean(dir), nil
	}
	if dir := strings.TrimSpace(os.Getenv(messages.CatalogEnvVar)); dir != "" {
		return filepath.Clean(dir), nil
	}
	if dir := cfg.CatalogDir(installDir); dir != "" {
		return dir, nil
	}
	exe, err := executablePath()
	if err != nil {
		return "", fmt.Errorf(messages.CLIResolveExecutableFmt, err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), messages.CatalogDefaultName), nil
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{Prefix: messages.LoggerPrefix, Level: level})
}

// selectConfirmer applies --yes/--no-overwrite, then the config policy. The
// prompt policy uses the huh form on a terminal and a line prompt otherwise.
func selectConfirmer(cmd *cobra.Command, inv invocation) install.Confirmer {
	switch {
	case inv.opts.yes:
		return install.AlwaysOverwrite
	case inv.opts.noOverwrite:
		return install.NeverOverwrite
	}
	switch inv.cfg.OverwritePolicy() {
	case config.OverwriteAlways:
		return install.AlwaysOverwrite
	case config.OverwriteNever:
		return install.NeverOverwrite
	}
	if isTerminal() {
		return newHuhConfirmer()
	}
	return linePromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
}

func runInstall(cmd *cobra.Command, inv invocation) error {
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, messages.InstallStartFmt, inv.catalogDir, inv.paths.FrameworkDir); err != nil {
		return err
	}
	res, err := installRun(inv.paths, install.Options{
		Version:   inv.opts.version,
		Source:    catalog.New(inv.catalogDir),
		Confirmer: selectConfirmer(cmd, inv),
		System:    install.RealSystem{},
		Logger:    inv.logger,
	})
	if err != nil {
		return err
	}
	if res.Status == install.StatusAborted {
		_, _ = color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), messages.InstallAborted)
		return nil
	}
	if _, err := fmt.Fprintf(out, messages.InstallDoneFmt, inv.paths.FrameworkDir); err != nil {
		return err
	}
	return printSnippet(out, res.Placed)
}

// printSnippet prints the tags that load the installed stylesheets and scripts.
func printSnippet(out io.Writer, placed map[string][]string) error {
	styles := filterExt(placed[config.StylesDirName], ".css")
	scripts := filterExt(placed[config.ScriptsDirName], ".js")
	if _, err := fmt.Fprint(out, messages.InstallSnippetHeader); err != nil {
		return err
	}
	if len(styles) == 0 && len(scripts) == 0 {
		_, err := fmt.Fprint(out, messages.InstallSnippetEmpty)
		return err
	}
	for _, name := range styles {
		if _, err := fmt.Fprintf(out, messages.InstallSnippetCSSFmt, name); err != nil {
			return err
		}
	}
	for _, name := range scripts {
		if _, err := fmt.Fprintf(out, messages.InstallSnippetJSFmt, name); err != nil {
			return err
		}
	}
	return nil
}

func filterExt(names []string, ext string) []string {
	out := []string{}
	for _, name := range names {
		if strings.EqualFold(filepath.Ext(name), ext) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func runRemove(out io.Writer, inv invocation) error {
	res, err := removeRun(inv.paths, install.RemoveOptions{System: install.RealSystem{}, Logger: inv.logger})
	if err != nil {
		return err
	}
	if res.Status == install.StatusNothingToRemove {
		_, err = fmt.Fprintf(out, messages.RemoveNothingFmt, res.Path)
		return err
	}
	_, err = fmt.Fprintf(out, messages.RemoveDoneFmt, res.Path)
	return err
}

func runList(out io.Writer, inv invocation) error {
	versions, err := catalog.New(inv.catalogDir).Versions()
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		_, err := fmt.Fprintf(out, messages.ListEmptyFmt, inv.catalogDir)
		return err
	}
	if _, err := fmt.Fprintf(out, messages.ListHeaderFmt, inv.catalogDir); err != nil {
		return err
	}
	for _, version := range versions {
		if _, err := fmt.Fprintf(out, messages.ListLineFmt, version); err != nil {
			return err
		}
	}
	return nil
}
