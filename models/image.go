package models

// UploadedImage is the photo as received, persisted to a temp file for the
// lifetime of one request.
type UploadedImage struct {
	Filename    string // client supplied name
	ContentType string
	Size        int64
	Path        string // temp location on disk
}

// NormalizedImage is the re-encoded JPEG that gets sent for inference.
// When Optimized is false, Data holds the original upload bytes and Path
// points at the upload itself.
type NormalizedImage struct {
	Path      string
	Data      []byte
	Width     int
	Height    int
	Optimized bool
}
