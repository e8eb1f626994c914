package main

// Exit codes returned by refcheck commands.
const (
	ExitSuccess     = 0 // Success, no errors found
	ExitError       = 1 // General error, or verification found errors
	ExitConfigError = 2 // Configuration error (invalid config, missing paths)
	ExitDataError   = 3 // Data error (unreadable input, no parseable entries)
)
