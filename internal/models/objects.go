package models

type PresignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Folder      string `json:"folder,omitempty"`
}

type PresignResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	FileURL   string `json:"fileUrl"`
}

type ListObjectsQuery struct {
	ProjectCode string
	OwnerKey    string
	Folder      string
	Limit       string
	Cursor      string
	IncludeTags bool
}

type ObjectSummary struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size"`
	LastModified string            `json:"lastModified,omitempty"`
	Tags         map[string]string `json:"tags,omitempty"`
}

type ListObjectsResponse struct {
	Objects    []ObjectSummary `json:"objects"`
	NextCursor *string         `json:"nextCursor"`
}

type DeleteRequest struct {
	Key string `json:"key"`
}

type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	Key     string `json:"key"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Caller-facing error messages shared by the HTTP and Lambda adapters.
const (
	MsgMissingAddress   = "Missing bucket or key"
	MsgProcessingFailed = "Image processing failed"
	MsgInternalError    = "Internal server error"
	MsgAPIKeyRequired   = "Forbidden: API Key required"
	MsgAPIKeyInvalid    = "Forbidden: Invalid API Key"
)
