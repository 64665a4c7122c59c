package requests

// UploadPhoto carries a base64 photo payload for offload to object
// storage. Data accepts either a bare base64 string together with
// ContentType, or a full data URI with the content type embedded.
type UploadPhoto struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        string `json:"data" validate:"required"`
}
