package constant

// Upload policy enforced client-side before any request is issued.
// The backend applies the same limits, so a rejected file never leaves
// the machine.
const (
	MaxUploadSize = 50 * 1024 * 1024 // 50 MiB

	InvalidFileTypeMessage = "Invalid file type. Allowed: .pdf, .txt, .docx"
	FileTooLargeMessage    = "File size exceeds 50MB limit"
)

// AllowedUploadExtensions is the extension whitelist, lower-case with
// leading dot.
var AllowedUploadExtensions = []string{".pdf", ".txt", ".docx"}

// Message roles in a chat transcript.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleError     = "error"
)

// Fallback error strings used when the backend gives no detail.
const (
	FallbackListNotebooksError  = "Failed to load notebooks"
	FallbackCreateNotebookError = "Failed to create notebook"
	FallbackDeleteNotebookError = "Failed to delete notebook"
	FallbackRenameNotebookError = "Failed to rename notebook"
	FallbackListDocumentsError  = "Failed to load documents"
	FallbackUploadError         = "Upload failed"
	FallbackDeleteDocumentError = "Failed to delete document"
	FallbackChatError           = "Failed to get response"
)
