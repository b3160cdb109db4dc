package client

// SetTestImageHostURL overrides the upload endpoint on an image host.
// This should only be used in tests.
func SetTestImageHostURL(h *ImageHost, uploadURL string) {
	if uploadURL != "" {
		h.uploadURL = uploadURL
	}
}
