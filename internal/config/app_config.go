package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/ingest/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	// HomeDirectory overrides the user's home directory when locating the global file.
	HomeDirectory string
}

// ApplicationConfiguration mirrors the YAML configuration file. Unset fields are nil or empty
// so that a local file only overrides what it mentions.
type ApplicationConfiguration struct {
	Output         string                 `mapstructure:"output"`
	Format         string                 `mapstructure:"format"`
	MaxFileSizeMB  *float64               `mapstructure:"max_size_mb"`
	TruncateSizeKB *float64               `mapstructure:"truncate_kb"`
	Concurrency    *int                   `mapstructure:"concurrency"`
	Paths          PathConfiguration      `mapstructure:"paths"`
	Separator      SeparatorConfiguration `mapstructure:"separator"`
	TopLanguages   *int                   `mapstructure:"top_languages"`
	Tokens         TokenConfiguration     `mapstructure:"tokens"`
	Clipboard      *bool                  `mapstructure:"clipboard"`
}

// PathConfiguration configures inclusion and exclusion rules for traversal.
type PathConfiguration struct {
	Exclude      []string `mapstructure:"exclude"`
	Include      []string `mapstructure:"include"`
	UseGitignore *bool    `mapstructure:"use_gitignore"`
}

// SeparatorConfiguration controls plain text block separators.
type SeparatorConfiguration struct {
	Character string `mapstructure:"character"`
	Width     *int   `mapstructure:"width"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads the global file, then the local one on top of it.
// Missing files contribute nothing.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	homeDirectory := options.HomeDirectory
	if homeDirectory == "" {
		if resolvedHome, err := os.UserHomeDir(); err == nil {
			homeDirectory = resolvedHome
		}
	}
	if homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if options.ExplicitFilePath != "" {
		if _, statErr := os.Stat(localPath); statErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf("configuration file %s: %w", localPath, statErr)
		}
	}
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.Paths.Exclude = utils.DeduplicatePatterns(merged.Paths.Exclude)
	merged.Paths.Include = utils.DeduplicatePatterns(merged.Paths.Include)
	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.MaxFileSizeMB != nil {
		result.MaxFileSizeMB = clonePointer(override.MaxFileSizeMB)
	}
	if override.TruncateSizeKB != nil {
		result.TruncateSizeKB = clonePointer(override.TruncateSizeKB)
	}
	if override.Concurrency != nil {
		result.Concurrency = clonePointer(override.Concurrency)
	}
	result.Paths = result.Paths.merge(override.Paths)
	result.Separator = result.Separator.merge(override.Separator)
	if override.TopLanguages != nil {
		result.TopLanguages = clonePointer(override.TopLanguages)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Clipboard != nil {
		result.Clipboard = clonePointer(override.Clipboard)
	}
	return result
}

// Apply overlays the configured values onto options and returns the result.
func (config ApplicationConfiguration) Apply(options Options) Options {
	result := options
	if config.Output != "" {
		result.OutputPath = config.Output
	}
	if config.Format != "" {
		result.Format = config.Format
	}
	if config.MaxFileSizeMB != nil {
		result.MaxFileSizeMB = *config.MaxFileSizeMB
	}
	if config.TruncateSizeKB != nil {
		result.TruncateSizeKB = *config.TruncateSizeKB
	}
	if config.Concurrency != nil {
		result.Concurrency = *config.Concurrency
	}
	if len(config.Paths.Exclude) > 0 {
		result.Exclude = append([]string{}, config.Paths.Exclude...)
	}
	if len(config.Paths.Include) > 0 {
		result.Include = append([]string{}, config.Paths.Include...)
	}
	if config.Paths.UseGitignore != nil {
		result.UseGitignore = *config.Paths.UseGitignore
	}
	if config.Separator.Character != "" {
		result.SeparatorChar = config.Separator.Character
	}
	if config.Separator.Width != nil {
		result.SeparatorWidth = *config.Separator.Width
	}
	if config.TopLanguages != nil {
		result.TopLanguages = *config.TopLanguages
	}
	if config.Tokens.Enabled != nil {
		result.CountTokens = *config.Tokens.Enabled
	}
	if config.Tokens.Model != "" {
		result.TokenModel = config.Tokens.Model
	}
	return result
}

func (config PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := config
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if len(override.Include) > 0 {
		result.Include = append([]string{}, utils.DeduplicatePatterns(override.Include)...)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = clonePointer(override.UseGitignore)
	}
	return result
}

func (config SeparatorConfiguration) merge(override SeparatorConfiguration) SeparatorConfiguration {
	result := config
	if override.Character != "" {
		result.Character = override.Character
	}
	if override.Width != nil {
		result.Width = clonePointer(override.Width)
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = clonePointer(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func clonePointer[T any](value *T) *T {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
