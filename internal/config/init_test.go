package config_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/ingest/internal/config"
	"github.com/temirov/ingest/internal/utils"
)

func TestInitializeConfigurationLocal(t *testing.T) {
	t.Parallel()

	workingDirectory := t.TempDir()
	path, err := config.InitializeConfiguration(config.InitOptions{WorkingDirectory: workingDirectory})
	if err != nil {
		t.Fatalf("InitializeConfiguration: %v", err)
	}
	if path != filepath.Join(workingDirectory, utils.ConfigFileName) {
		t.Fatalf("unexpected path %s", path)
	}

	if _, err := config.InitializeConfiguration(config.InitOptions{WorkingDirectory: workingDirectory}); err == nil {
		t.Fatalf("expected error when configuration exists")
	}
	if _, err := config.InitializeConfiguration(config.InitOptions{WorkingDirectory: workingDirectory, Force: true}); err != nil {
		t.Fatalf("forced initialization failed: %v", err)
	}
}

func TestInitializeConfigurationGlobal(t *testing.T) {
	t.Parallel()

	homeDirectory := t.TempDir()
	path, err := config.InitializeConfiguration(config.InitOptions{Target: config.InitTargetGlobal, HomeDirectory: homeDirectory})
	if err != nil {
		t.Fatalf("InitializeConfiguration: %v", err)
	}
	if path != filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName) {
		t.Fatalf("unexpected path %s", path)
	}
}

func TestInitializedTemplateMatchesDefaults(t *testing.T) {
	t.Parallel()

	workingDirectory := t.TempDir()
	if _, err := config.InitializeConfiguration(config.InitOptions{WorkingDirectory: workingDirectory}); err != nil {
		t.Fatalf("InitializeConfiguration: %v", err)
	}
	configuration, err := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory, HomeDirectory: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration: %v", err)
	}
	if options := configuration.Apply(config.DefaultOptions()); !reflect.DeepEqual(options, config.DefaultOptions()) {
		t.Fatalf("template diverges from defaults: %+v", options)
	}
}
