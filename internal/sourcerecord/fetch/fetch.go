// Package fetch downloads court documents from the UJS portal.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	dErrors "cleanslate/pkg/domain-errors"
)

// userAgent identifies us to the UJS portal, which rejects blank agents.
const userAgent = "CleanSlateRecordScreening/1.0"

// maxDocumentSize caps a downloaded docket or summary sheet at 32 MiB.
const maxDocumentSize = 32 << 20

// Downloader fetches documents over HTTP.
type Downloader struct {
	client *http.Client
}

// New constructs a Downloader. A nil client uses a default with a timeout.
func New(client *http.Client) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Downloader{client: client}
}

// Download fetches one document.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid document url")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "document download failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, dErrors.Newf(dErrors.CodeUnavailable,
			"document download returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "reading document body")
	}
	if len(body) > maxDocumentSize {
		return nil, dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("document larger than %d bytes", maxDocumentSize))
	}
	return body, nil
}
