package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Order matters: wrapped chains often carry several sentinels (a timed out stage is
// both ErrCommandTimeout and ErrExternalTool), and the first match wins.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	// ===================
	// Command execution
	// ===================
	{
		err: ErrCommandTimeout,
		info: ErrorInfo{
			Message: "An external tool did not finish within its timeout.",
			Action:  "Check that the tool is not waiting for input, or raise compiler.timeout / generator.timeout.",
		},
	},
	{
		err: ErrCommandNotStarted,
		info: ErrorInfo{
			Message: "An external tool could not be started.",
			Action:  "Make sure the tool is installed and on PATH, then run 'nanogen tools'.",
		},
	},
	{
		err: ErrLockHeld,
		info: ErrorInfo{
			Message: "Another nanogen run is generating the same schema.",
			Action:  "Wait for the other build to finish, or set pipeline.lock to false.",
		},
	},

	// ===================
	// Pipeline kinds
	// ===================
	{
		err: ErrMissingInput,
		info: ErrorInfo{
			Message: "The schema file does not exist.",
			Action:  "Check schema.dir and schema.file in .nanogen/config.yaml or pass --schema-dir/--schema.",
		},
	},
	{
		err: ErrToolNotFound,
		info: ErrorInfo{
			Message: "No nanopb generator could be found.",
			Action:  "Install the code-generation package: pip install nanopb",
		},
	},
	{
		err: ErrExternalTool,
		info: ErrorInfo{
			Message: "An external tool reported an error. Its output is shown above.",
			Action:  "Fix the reported problem in the schema or options file and run the pipeline again.",
		},
	},
	{
		err: ErrIncompleteOutput,
		info: ErrorInfo{
			Message: "The tool exited successfully but did not write every expected file.",
			Action:  "This usually means a tool version mismatch. Check 'nanogen tools' and upgrade nanopb/protoc.",
		},
	},
	{
		err: ErrUnexpected,
		info: ErrorInfo{
			Message: "The pipeline failed for a reason outside the external tools.",
			Action:  "Check file permissions and free disk space, then run again with --verbose.",
		},
	},

	// ===================
	// Configuration & CLI
	// ===================
	{
		err: ErrMissingRequiredTools,
		info: ErrorInfo{
			Message: "Required tools are missing.",
			Action:  "Install the tools listed above.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrPathTraversal,
		info: ErrorInfo{
			Message: "A configured file name escapes its directory.",
			Action:  "Use a plain file name for schema.file, schema.options and schema.descriptor.",
		},
	},
}

//nolint:gochecknoglobals // Built once from errorInfoEntries
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Direct sentinels hit the map; wrapped errors fall back to errors.Is() in table order.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve the issue. The action is empty for
// errors without a known remedy.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
