package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"time"
)

const defaultImageHostURL = "https://api.imgbb.com/1/upload"

// ImageHost uploads listing photos to imgbb and returns their public URL.
type ImageHost struct {
	apiKey     string
	uploadURL  string
	httpClient *http.Client
}

// NewImageHost creates an uploader for the given imgbb API key.
func NewImageHost(apiKey string) (*ImageHost, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("IMGBB_API_KEY is required")
	}
	return &ImageHost{
		apiKey:     apiKey,
		uploadURL:  defaultImageHostURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
}

// Upload sends the image in r as filename and returns the hosted URL.
func (h *ImageHost) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing form: %w", err)
	}

	u := h.uploadURL + "?" + url.Values{"key": {h.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp uploadResponse
	if err := doJSON(h.httpClient, req, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.Data.URL == "" {
		return "", fmt.Errorf("image host did not return a URL")
	}
	return resp.Data.URL, nil
}
