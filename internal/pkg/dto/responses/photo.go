package responses

// UploadPhoto reports where an offloaded photo attachment landed. Url
// is what the photo form field should reference.
type UploadPhoto struct {
	ObjectName string `json:"object_name"`
	Url        string `json:"url"`
}
