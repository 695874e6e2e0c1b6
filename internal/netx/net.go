// Package netx uploads document content to object storage through
// presigned URLs issued by the server.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// UploadToPresignedURL PUTs body to url. Any status other than 200 is an error
// carrying the response body.
func UploadToPresignedURL(ctx context.Context, client *http.Client, url string, body io.Reader, size int64) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if size >= 0 {
		req.ContentLength = size
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

// UploadFile streams the file at path to a presigned url.
func UploadFile(ctx context.Context, client *http.Client, url, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	return UploadToPresignedURL(ctx, client, url, f, info.Size())
}
