// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ingest/internal/config"
	"github.com/temirov/ingest/internal/ingest"
	"github.com/temirov/ingest/internal/services/clipboard"
	"github.com/temirov/ingest/internal/utils"
)

const (
	defaultPath          = "."
	rootUse              = "ingest [directory]"
	rootShortDescription = "ingest a project directory into a single text or markdown file"
	rootLongDescription  = `ingest walks a project directory, honours .gitignore and .ingestignore rules,
skips binary and oversized files, and writes every remaining file into one artifact.
Use --format to select text or markdown output and --output to choose the destination.`
	rootUsageExample = `  # Ingest the current directory into project_ingest.txt
  ingest

  # Markdown report of the src tree, only Go files, copied to the clipboard
  ingest ./src --format markdown -i '*.go' --clipboard

  # Exclude fixtures and truncate files larger than 64 KB
  ingest -e 'testdata/' --truncate 64 -o context.txt`

	initUse              = "init"
	initShortDescription = "write a default " + utils.ConfigFileName + " configuration file"
	initLongDescription  = `Write the default configuration into the working directory,
or into ~/` + utils.GlobalConfigDirectoryName + ` with --global.`

	outputFlagName         = "output"
	formatFlagName         = "format"
	excludeFlagName        = "exclude"
	includeFlagName        = "include"
	maxSizeFlagName        = "max-size"
	truncateFlagName       = "truncate"
	concurrencyFlagName    = "concurrency"
	noGitignoreFlagName    = "no-gitignore"
	separatorFlagName      = "separator"
	separatorWidthFlagName = "separator-width"
	topLanguagesFlagName   = "top-languages"
	tokensFlagName         = "tokens"
	modelFlagName          = "model"
	clipboardFlagName      = "clipboard"
	configFlagName         = "config"
	verboseFlagName        = "verbose"
	versionFlagName        = "version"
	globalFlagName         = "global"
	forceFlagName          = "force"

	outputFlagDescription         = "output file path (default <directory>_ingest.txt or .md)"
	formatFlagDescription         = "output format: text or markdown"
	excludeFlagDescription        = "exclude pattern in .gitignore syntax (repeatable)"
	includeFlagDescription        = "only ingest files matching pattern (repeatable)"
	maxSizeFlagDescription        = "skip files larger than this many megabytes"
	truncateFlagDescription       = "truncate file content after this many kilobytes (0 disables)"
	concurrencyFlagDescription    = "number of files read concurrently"
	noGitignoreFlagDescription    = "do not apply .gitignore rules"
	separatorFlagDescription      = "character used for plain text separators"
	separatorWidthFlagDescription = "width of plain text separators"
	topLanguagesFlagDescription   = "number of languages listed in markdown statistics"
	tokensFlagDescription         = "estimate token counts"
	modelFlagDescription          = "tokenizer model used for token counts"
	clipboardFlagDescription      = "copy the artifact to the clipboard"
	configFlagDescription         = "configuration file (default ./" + utils.ConfigFileName + ")"
	verboseFlagDescription        = "enable debug logging"
	versionFlagDescription        = "display application version"
	globalFlagDescription         = "write the global configuration instead of the local one"
	forceFlagDescription          = "overwrite an existing configuration file"

	versionTemplate           = "ingest version: %s\n"
	completedTemplate         = "Wrote %s: %d processed, %d skipped, %d errors in %s\n"
	tokensTemplate            = "Estimated tokens: %d (%s)\n"
	clipboardTemplate         = "Copied %s to the clipboard\n"
	initCompletedTemplate     = "Configuration written to %s\n"
	workingDirectoryErrFormat = "unable to determine working directory: %w"
	loadConfigErrFormat       = "load configuration: %w"
	readArtifactErrFormat     = "read artifact for clipboard: %w"
	clipboardWarning          = "Failed to copy artifact to clipboard"
)

// Dependencies are the collaborators of the command tree; zero values select the real ones.
type Dependencies struct {
	Stdout           io.Writer
	Clipboard        clipboard.Copier
	WorkingDirectory string
	HomeDirectory    string
	NewLogger        func(verbose bool) (*zap.Logger, error)
}

func (dependencies Dependencies) withDefaults() Dependencies {
	resolved := dependencies
	if resolved.Stdout == nil {
		resolved.Stdout = os.Stdout
	}
	if resolved.Clipboard == nil {
		resolved.Clipboard = clipboard.NewService()
	}
	if resolved.NewLogger == nil {
		resolved.NewLogger = func(verbose bool) (*zap.Logger, error) {
			return utils.NewApplicationLogger(utils.LoggerOptions{Verbose: verbose})
		}
	}
	return resolved
}

// Execute runs the ingest application with the process arguments.
func Execute(ctx context.Context) error {
	rootCommand := NewRootCommand(Dependencies{})
	rootCommand.SetArgs(expandToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// runFlags holds the raw flag values of the root command.
type runFlags struct {
	output         string
	format         string
	exclude        []string
	include        []string
	maxSizeMB      float64
	truncateKB     float64
	concurrency    int
	noGitignore    bool
	separator      string
	separatorWidth int
	topLanguages   int
	tokens         bool
	model          string
	clipboard      bool
	configPath     string
	verbose        bool
	showVersion    bool
}

// NewRootCommand builds the ingest command tree.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	resolved := dependencies.withDefaults()
	var flags runFlags

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if flags.showVersion {
				fmt.Fprintf(resolved.Stdout, versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			directory := defaultPath
			if len(arguments) > 0 {
				directory = arguments[0]
			}
			return runIngest(command, resolved, flags, directory)
		},
	}

	defaults := config.DefaultOptions()
	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&flags.output, outputFlagName, "o", "", outputFlagDescription)
	flagSet.StringVarP(&flags.format, formatFlagName, "f", defaults.Format, formatFlagDescription)
	flagSet.StringArrayVarP(&flags.exclude, excludeFlagName, "e", nil, excludeFlagDescription)
	flagSet.StringArrayVarP(&flags.include, includeFlagName, "i", nil, includeFlagDescription)
	flagSet.Float64Var(&flags.maxSizeMB, maxSizeFlagName, defaults.MaxFileSizeMB, maxSizeFlagDescription)
	flagSet.Float64Var(&flags.truncateKB, truncateFlagName, defaults.TruncateSizeKB, truncateFlagDescription)
	flagSet.IntVarP(&flags.concurrency, concurrencyFlagName, "j", defaults.Concurrency, concurrencyFlagDescription)
	registerToggleFlag(flagSet, &flags.noGitignore, noGitignoreFlagName, noGitignoreFlagDescription)
	flagSet.StringVar(&flags.separator, separatorFlagName, defaults.SeparatorChar, separatorFlagDescription)
	flagSet.IntVar(&flags.separatorWidth, separatorWidthFlagName, defaults.SeparatorWidth, separatorWidthFlagDescription)
	flagSet.IntVar(&flags.topLanguages, topLanguagesFlagName, defaults.TopLanguages, topLanguagesFlagDescription)
	registerToggleFlag(flagSet, &flags.tokens, tokensFlagName, tokensFlagDescription)
	flagSet.StringVar(&flags.model, modelFlagName, defaults.TokenModel, modelFlagDescription)
	registerToggleFlag(flagSet, &flags.clipboard, clipboardFlagName, clipboardFlagDescription)
	flagSet.StringVar(&flags.configPath, configFlagName, "", configFlagDescription)
	rootCommand.PersistentFlags().BoolVarP(&flags.verbose, verboseFlagName, "v", false, verboseFlagDescription)
	flagSet.BoolVar(&flags.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(newInitCommand(resolved))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

func newInitCommand(dependencies Dependencies) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			path, err := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: dependencies.WorkingDirectory,
				HomeDirectory:    dependencies.HomeDirectory,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(dependencies.Stdout, initCompletedTemplate, path)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&global, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

func runIngest(command *cobra.Command, dependencies Dependencies, flags runFlags, directory string) error {
	logger, loggerError := dependencies.NewLogger(flags.verbose)
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	defer func() { _ = logger.Sync() }()

	workingDirectory := dependencies.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return fmt.Errorf(workingDirectoryErrFormat, err)
		}
		workingDirectory = currentDirectory
	}

	applicationConfiguration, configError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: flags.configPath,
		HomeDirectory:    dependencies.HomeDirectory,
	})
	if configError != nil {
		return fmt.Errorf(loadConfigErrFormat, configError)
	}

	options := applyFlags(command, applicationConfiguration.Apply(config.DefaultOptions()), flags)
	copyToClipboard := applicationConfiguration.Clipboard != nil && *applicationConfiguration.Clipboard
	if command.Flags().Changed(clipboardFlagName) {
		copyToClipboard = flags.clipboard
	}

	result, runError := ingest.Run(command.Context(), ingest.Request{
		Root:             directory,
		Options:          options,
		WorkingDirectory: workingDirectory,
		Logger:           logger,
	})
	if runError != nil {
		return runError
	}

	fmt.Fprintf(dependencies.Stdout, completedTemplate,
		result.OutputPath,
		result.Stats.FilesProcessed,
		result.Stats.FilesSkipped,
		result.Stats.Errors,
		result.Elapsed.Round(time.Millisecond))
	if result.Stats.TokenModel != "" {
		fmt.Fprintf(dependencies.Stdout, tokensTemplate, result.Stats.TotalTokens, result.Stats.TokenModel)
	}

	if copyToClipboard {
		// The artifact is already complete, so a clipboard failure is only reported.
		if copyError := copyArtifact(dependencies.Clipboard, result.OutputPath); copyError != nil {
			logger.Warn(clipboardWarning, zap.String("path", result.OutputPath), zap.Error(copyError))
		} else {
			fmt.Fprintf(dependencies.Stdout, clipboardTemplate, result.OutputPath)
		}
	}
	return nil
}

// applyFlags overlays explicitly set flags onto options. Excludes extend the configured list,
// every other flag replaces the configured value. Choosing a model implies token counting.
func applyFlags(command *cobra.Command, options config.Options, flags runFlags) config.Options {
	flagSet := command.Flags()
	result := options
	if flagSet.Changed(outputFlagName) {
		result.OutputPath = flags.output
	}
	if flagSet.Changed(formatFlagName) {
		result.Format = strings.ToLower(strings.TrimSpace(flags.format))
	}
	if flagSet.Changed(excludeFlagName) {
		result.Exclude = utils.DeduplicatePatterns(append(append([]string{}, result.Exclude...), flags.exclude...))
	}
	if flagSet.Changed(includeFlagName) {
		result.Include = append([]string{}, flags.include...)
	}
	if flagSet.Changed(maxSizeFlagName) {
		result.MaxFileSizeMB = flags.maxSizeMB
	}
	if flagSet.Changed(truncateFlagName) {
		result.TruncateSizeKB = flags.truncateKB
	}
	if flagSet.Changed(concurrencyFlagName) {
		result.Concurrency = flags.concurrency
	}
	if flagSet.Changed(noGitignoreFlagName) {
		result.UseGitignore = !flags.noGitignore
	}
	if flagSet.Changed(separatorFlagName) {
		result.SeparatorChar = flags.separator
	}
	if flagSet.Changed(separatorWidthFlagName) {
		result.SeparatorWidth = flags.separatorWidth
	}
	if flagSet.Changed(topLanguagesFlagName) {
		result.TopLanguages = flags.topLanguages
	}
	if flagSet.Changed(modelFlagName) {
		result.TokenModel = flags.model
		result.CountTokens = true
	}
	if flagSet.Changed(tokensFlagName) {
		result.CountTokens = flags.tokens
	}
	return result
}

// #nosec G304
func copyArtifact(copier clipboard.Copier, outputPath string) error {
	content, readError := os.ReadFile(outputPath)
	if readError != nil {
		return fmt.Errorf(readArtifactErrFormat, readError)
	}
	return copier.Copy(string(content))
}
