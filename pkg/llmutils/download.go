package llmutils

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// MaxImageSize is the largest image accepted by DownloadImageData.
const MaxImageSize = 3_750_000

// HTTPClient is the subset of http.Client used to download content.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// DownloadImageData fetches an image and returns its format and bytes,
// the format is the MIME subtype, e.g. png for image/png.
// A nil client uses http.DefaultClient.
func DownloadImageData(ctx context.Context, client HTTPClient, url string) (string, []byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to create image request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to fetch image from url")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, errors.Newf("failed to fetch image: %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", nil, errors.Newf("invalid mime type %q", contentType)
	}
	format, ok := strings.CutPrefix(mediaType, "image/")
	if !ok || format == "" {
		return "", nil, errors.Newf("unsupported mime type %q", mediaType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageSize+1))
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to read image bytes")
	}
	if len(data) > MaxImageSize {
		return "", nil, errors.Newf("image exceeds %d bytes", MaxImageSize)
	}
	return format, data, nil
}
