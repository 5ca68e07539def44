package record

import "encoding/json"

// UploadRequest is the ingest body. Every field is optional; missing or
// malformed sub-documents are replaced with their defaults rather than
// rejected.
type UploadRequest struct {
	Username   string          `json:"username"`
	Cookies    json.RawMessage `json:"cookies"`
	History    json.RawMessage `json:"history"`
	SystemInfo json.RawMessage `json:"systemInfo"`
	// Screenshot is a base64 image, with or without a data-URI prefix.
	Screenshot string `json:"screenshot"`
}

// UploadResult reports the stored id plus any fields that were coerced or
// dropped on the way in.
type UploadResult struct {
	ID       int64
	Warnings []string
}
