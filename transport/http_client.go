package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/meysamhadeli/zendocs/report"
	reportmodels "github.com/meysamhadeli/zendocs/report/models"
	"github.com/meysamhadeli/zendocs/session/models"
	"github.com/meysamhadeli/zendocs/transport/contracts"
)

const (
	DefaultBaseURL = "https://codenarrator-production.up.railway.app/api/docs"
	DefaultTimeout = 180 * time.Second

	archiveFormField = "projectZip"
	requestIDHeader  = "X-Request-ID"
	maxErrorMessage  = 300
)

// HTTPConfig configures the documentation service client.
type HTTPConfig struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// HTTPClient talks to the documentation generation service over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type artifactURLResponse struct {
	URL string `json:"url"`
}

type serviceError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewHTTPClient initializes a transport client, falling back to defaults for
// empty settings.
func NewHTTPClient(config *HTTPConfig) contracts.ITransportClient {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// SubmitArchive uploads the archive as multipart form data and decodes the
// generated documentation payload.
func (c *HTTPClient) SubmitArchive(ctx context.Context, archive models.Archive) (*reportmodels.RawResponse, error) {
	body, contentType, err := encodeArchive(archive)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	c.logger.Debug("submitting archive",
		"request_id", requestID,
		"archive", archive.Name,
		"size_bytes", archive.SizeBytes,
	)

	started := time.Now()
	payload, err := c.do(req)
	if err != nil {
		c.logger.Debug("archive submission failed", "request_id", requestID, "error", err)
		return nil, err
	}

	var raw reportmodels.RawResponse
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, report.NewIngestError(report.UndecodablePayload, "", err)
	}

	c.logger.Debug("archive submitted",
		"request_id", requestID,
		"files", len(raw.Files),
		"elapsed", time.Since(started).Round(time.Millisecond),
	)

	return &raw, nil
}

// FetchArtifactURL resolves a generated artifact identifier to a download URL.
func (c *HTTPClient) FetchArtifactURL(ctx context.Context, identifier string) (string, error) {
	if strings.TrimSpace(identifier) == "" {
		return "", errors.New("artifact identifier cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/download/"+url.PathEscape(identifier), nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	payload, err := c.do(req)
	if err != nil {
		return "", err
	}

	var resp artifactURLResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return "", report.NewIngestError(report.UndecodablePayload, "", err)
	}
	if resp.URL == "" {
		return "", report.NewIngestError(report.UndecodablePayload, "artifact response has no url", nil)
	}

	return resp.URL, nil
}

func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, Classify(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Classify(fmt.Errorf("error reading response: %w", err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &TransportError{
			Kind:       ServerRejected,
			StatusCode: resp.StatusCode,
			Message:    rejectionMessage(payload),
		}
	}

	return payload, nil
}

func encodeArchive(archive models.Archive) (io.Reader, string, error) {
	content, err := archive.Open()
	if err != nil {
		return nil, "", err
	}
	defer content.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, archiveFormField, escapeQuotes(archive.Name)))
	mimeType := archive.MIMEHint
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	partHeader.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, "", fmt.Errorf("error creating form part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, "", fmt.Errorf("error reading archive: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("error closing form: %w", err)
	}

	return &body, writer.FormDataContentType(), nil
}

func rejectionMessage(payload []byte) string {
	var apiError serviceError
	if err := json.Unmarshal(payload, &apiError); err == nil {
		if apiError.Message != "" {
			return apiError.Message
		}
		if apiError.Error != "" {
			return apiError.Error
		}
	}

	message := strings.TrimSpace(string(payload))
	if utf8.RuneCountInString(message) > maxErrorMessage {
		message = string([]rune(message)[:maxErrorMessage]) + "..."
	}
	return message
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
