package models

// Envelope is the uniform response shape returned by every endpoint,
// so callers have one success/failure check pattern.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Failure(message string) Envelope {
	return Envelope{Success: false, Error: message}
}

type HealthResponse struct {
	Status string `json:"status"`
}

// UploadedImage reports one stored file in an upload response.
type UploadedImage struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Path       string `json:"path"`
	OrderIndex int    `json:"order_index"`
}

// UploadResult reports the outcome of a multi-file upload. Files that
// failed validation or storage are listed in Skipped with the reason;
// their failure does not abort the remaining files.
type UploadResult struct {
	Images  []UploadedImage `json:"images"`
	Skipped []SkippedFile   `json:"skipped,omitempty"`
}

type SkippedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}
