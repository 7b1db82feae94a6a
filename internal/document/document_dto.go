package document

import (
	"io"
	"time"
)

type DocumentResponse struct {
	ID             string `json:"id"`
	LeaveRequestID string `json:"leave_request_id"`
	Filename       string `json:"filename"`
	ContentType    string `json:"content_type"`
	SizeBytes      int64  `json:"size_bytes"`
	UploadedBy     string `json:"uploaded_by"`
	CreatedAt      string `json:"created_at"`
}

// Download is an open document body. The caller closes Body.
type Download struct {
	Filename    string
	ContentType string
	SizeBytes   int64
	Body        io.ReadCloser
}

func mapToResponse(d Document) DocumentResponse {
	return DocumentResponse{
		ID:             d.ID.String(),
		LeaveRequestID: d.LeaveRequestID.String(),
		Filename:       d.Filename,
		ContentType:    d.ContentType,
		SizeBytes:      d.SizeBytes,
		UploadedBy:     d.UploadedBy.String(),
		CreatedAt:      d.CreatedAt.UTC().Format(time.RFC3339),
	}
}
