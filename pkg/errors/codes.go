package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	CodeUnknown       ErrorCode = "COMMON_001"
	CodeUsage         ErrorCode = "COMMON_002"
	CodeFileNotFound  ErrorCode = "COMMON_003"
	CodeInvalidFormat ErrorCode = "COMMON_004"
	CodeOK            ErrorCode = "OK"
)

// Input validation error codes.
const (
	CodeMissingColumn ErrorCode = "INPUT_001"
	CodeEmptyTable    ErrorCode = "INPUT_002"
)

// Extraction / feature-table error codes.
const (
	CodeNoValidInput ErrorCode = "FEAT_001"
)

// Model artifact and inference error codes.
const (
	CodeArtifactNotFound ErrorCode = "MODEL_001"
	CodeArtifactLoad     ErrorCode = "MODEL_002"
	CodePrediction       ErrorCode = "MODEL_003"
)

// Envelope kinds.  The terminal error envelope's "type" field carries these
// names so downstream consumers of the batch output keep a stable contract
// regardless of the internal code taxonomy.
const (
	KindUsageError        = "UsageError"
	KindFileNotFoundError = "FileNotFoundError"
	KindValidationError   = "ValidationError"
	KindNoValidInputError = "NoValidInputError"
	KindArtifactLoadError = "ArtifactLoadError"
	KindPredictionError   = "PredictionError"
	KindInternalError     = "InternalError"
)

// errorCodeKind maps each ErrorCode to its envelope kind.
var errorCodeKind = map[ErrorCode]string{
	CodeUsage:            KindUsageError,
	CodeFileNotFound:     KindFileNotFoundError,
	CodeInvalidFormat:    KindValidationError,
	CodeMissingColumn:    KindValidationError,
	CodeEmptyTable:       KindValidationError,
	CodeNoValidInput:     KindNoValidInputError,
	CodeArtifactNotFound: KindFileNotFoundError,
	CodeArtifactLoad:     KindArtifactLoadError,
	CodePrediction:       KindPredictionError,
}

// KindForCode returns the envelope kind for an ErrorCode.  Codes without an
// explicit mapping fall back to InternalError.
func KindForCode(code ErrorCode) string {
	if kind, ok := errorCodeKind[code]; ok {
		return kind
	}
	return KindInternalError
}

// IsFatal reports whether an ErrorCode aborts the whole batch.  Every code in
// the taxonomy is fatal; per-row extraction failures never become errors at
// all, they only reduce the surviving row set.
func IsFatal(code ErrorCode) bool {
	return code != CodeOK
}
