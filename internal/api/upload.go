package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Upload limits, enforced client-side before any network call.
const (
	MaxUploadFiles    = 5
	MaxUploadFileSize = 10 << 20 // 10MB
)

// File is a document to upload.
type File struct {
	// Name of the file, as reported to the backend.
	Name string
	// Data is the raw file content.
	Data []byte
}

// UploadResponse holds the outcome of an upload: the session id that scopes
// all subsequent asks.
type UploadResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// UploadPDFs validates and uploads documents, creating a backend session.
// Validation failures return an *UploadError without touching the network.
func (c *Client) UploadPDFs(ctx context.Context, files []File, customPrompt string) (*UploadResponse, error) {
	if err := validateUpload(files); err != nil {
		return nil, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, file := range files {
		part, err := writer.CreateFormFile("files", file.Name)
		if err != nil {
			return nil, errors.Wrap(err, "creating form file")
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, errors.Wrap(err, "writing form file")
		}
	}
	if customPrompt != "" {
		if err := writer.WriteField("custom_prompt", customPrompt); err != nil {
			return nil, errors.Wrap(err, "writing custom prompt field")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "closing multipart writer")
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", body)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	httpRequest.Header.Set("Content-Type", writer.FormDataContentType())

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, errors.Wrap(err, "uploading documents")
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, newAPIError(httpResponse)
	}

	response := &UploadResponse{}
	if err := json.NewDecoder(io.LimitReader(httpResponse.Body, 1<<20)).Decode(response); err != nil {
		return nil, errors.Wrap(err, "decoding response")
	}
	return response, nil
}

func validateUpload(files []File) error {
	if len(files) == 0 {
		return &UploadError{Reason: "no files provided"}
	}
	if len(files) > MaxUploadFiles {
		return &UploadError{Reason: fmt.Sprintf("too many files: %d (maximum %d)", len(files), MaxUploadFiles)}
	}
	for _, file := range files {
		if !strings.HasSuffix(strings.ToLower(file.Name), ".pdf") {
			return &UploadError{Reason: fmt.Sprintf("%s is not a PDF", file.Name)}
		}
		if len(file.Data) > MaxUploadFileSize {
			return &UploadError{Reason: fmt.Sprintf("%s exceeds the %dMB size cap", file.Name, MaxUploadFileSize>>20)}
		}
	}
	return nil
}
