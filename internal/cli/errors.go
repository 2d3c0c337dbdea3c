package cli

import "errors"

// Error variables for command handling.
var (
	ErrFlagRequiresArg = errors.New("flag requires an argument")
	ErrUnknownFlag     = errors.New("unknown flag")
	ErrDepthTimeNeeded = errors.New("options -d and -t are required")
	ErrUnexpectedArgs  = errors.New("unexpected arguments")
	ErrNestedShell     = errors.New("already in the shell")
)
