package qiime

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for package qiime.
var (
	ErrToolNotFound   = errors.New("qiime tool not found")
	ErrNoConfig       = errors.New("no .qiime_config found")
	ErrMissingBlastDB = errors.New("formatted blast database file missing")
)

// ParamError reports an invalid or missing parameter of a tool invocation.
type ParamError struct {
	Tool   string
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Tool, e.Param, e.Reason)
}

func required(tool, param, value string) error {
	if value == "" {
		return &ParamError{Tool: tool, Param: param, Reason: "is required"}
	}
	return nil
}

// ToolError wraps a failed external tool run.
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Err      error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }
