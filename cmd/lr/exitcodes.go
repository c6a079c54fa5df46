package main

// Exit codes.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitDataError   = 3 // Data error (malformed input, validation failure)
	ExitNotFound    = 4 // Review or paper not found
	ExitDuplicate   = 5 // Paper already exists in the library
	ExitNoData      = 6 // Not enough data (e.g. no dual-screened papers)
)
