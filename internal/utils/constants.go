package utils

const (
	// ApplicationName is the binary and project name.
	ApplicationName = "ingest"
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = ".ingest"
	// ConfigFileName is the name of the configuration file, both local and global.
	ConfigFileName = ".ingest.yaml"
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "ingest execution failed"
)
