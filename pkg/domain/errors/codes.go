package errors

// Code represents an error code
type Code string

const (
	CodeUnknown              Code = "UNKNOWN"               // Unknown error occurred
	CodeInternalError        Code = "INTERNAL_ERROR"        // Internal system error
	CodeValidationFailed     Code = "VALIDATION_FAILED"     // Input validation failed
	CodeInvalidParameter     Code = "INVALID_PARAMETER"     // Invalid parameter provided
	CodeMissingParameter     Code = "MISSING_PARAMETER"     // Required parameter missing
	CodeIoError              Code = "IO_ERROR"              // Input/output operation failed
	CodeFileNotFound         Code = "FILE_NOT_FOUND"        // File not found
	CodePermissionDenied     Code = "PERMISSION_DENIED"     // Permission denied
	CodeUnsupportedFormat    Code = "UNSUPPORTED_FORMAT"    // Input file format not supported
	CodeMissingColumns       Code = "MISSING_COLUMNS"       // Required table columns missing
	CodeNotFound             Code = "NOT_FOUND"             // Not found
	CodeAlreadyExists        Code = "ALREADY_EXISTS"        // Already exists
	CodeToolNotFound         Code = "TOOL_NOT_FOUND"        // Tool not found
	CodeToolExecutionFailed  Code = "TOOL_EXECUTION_FAILED" // Tool execution failed
	CodeConfigurationInvalid Code = "CONFIGURATION_INVALID" // Configuration invalid
	CodeOperationFailed      Code = "OPERATION_FAILED"      // Operation failed
	CodeUnauthorized         Code = "UNAUTHORIZED"          // Credentials missing
	CodeForbidden            Code = "FORBIDDEN"             // Credentials rejected
)
