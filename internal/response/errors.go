package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Spreadsheet ───────────────────────────────────────────────────
	ErrFileRequired       ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile    ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge       ErrCode = "FILE_TOO_LARGE"
	ErrInvalidSpreadsheet ErrCode = "INVALID_SPREADSHEET"
	ErrEmptySpreadsheet   ErrCode = "EMPTY_SPREADSHEET"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."

	// ─── Spreadsheet ───────────────────────────────────────────────────
	case ErrFileRequired:
		return "A spreadsheet file is required."
	case ErrUnsupportedFile:
		return "Unsupported file type. Upload an .xlsx or .xlsm workbook."
	case ErrFileTooLarge:
		return "File size exceeds the limit."
	case ErrInvalidSpreadsheet:
		return "The file could not be read as a spreadsheet."
	case ErrEmptySpreadsheet:
		return "The spreadsheet has no data rows."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
