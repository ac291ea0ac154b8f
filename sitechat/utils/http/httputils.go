// sitechat/utils/http/httputils.go
package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of a failed response is kept in StatusError.
const maxErrorBody = 4 << 10

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad status: %d", e.StatusCode)
	}
	return fmt.Sprintf("bad status: %d - %s", e.StatusCode, e.Body)
}

func post(ctx context.Context, client *http.Client, url string, headers map[string]string, body any) (*http.Response, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if client == nil {
		client = http.DefaultClient
	}
	r, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if r.StatusCode < 200 || r.StatusCode > 299 {
		defer r.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(r.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: r.StatusCode, Body: string(bytes.TrimSpace(b))}
	}
	return r, nil
}

// PostJSON posts body as JSON and decodes the response into resp.
func PostJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body, resp any) error {
	r, err := post(ctx, client, url, headers, body)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if resp != nil {
		return json.NewDecoder(r.Body).Decode(resp)
	}
	return nil
}

// PostStream posts body as JSON and hands back the open response body. The
// caller closes it.
func PostStream(ctx context.Context, client *http.Client, url string, headers map[string]string, body any) (io.ReadCloser, error) {
	r, err := post(ctx, client, url, headers, body)
	if err != nil {
		return nil, err
	}
	return r.Body, nil
}

// Bearer builds the Authorization header used by OpenAI-style APIs.
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
