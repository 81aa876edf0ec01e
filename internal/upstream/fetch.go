package upstream

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Doer is the subset of *http.Client used by Fetcher.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// maxBody caps how much of a response is read; the full catalog is well below it.
const maxBody = 8 << 20

// NewHTTPClient returns a client with the given timeout. Certificate
// verification is always on.
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	return &http.Client{Timeout: timeout, Transport: tr}
}

type Fetcher struct {
	HTTP Doer
}

func NewFetcher(d Doer) *Fetcher {
	if d == nil {
		d = NewHTTPClient(10 * time.Second)
	}
	return &Fetcher{HTTP: d}
}

// Get issues one GET to rawURL and returns the body of a 2xx response.
// op names the call in error messages.
func (f *Fetcher) Get(ctx context.Context, op, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindUnreachable, Message: "build request", Err: redactURL(err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindUnreachable, Err: redactURL(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, &Error{Op: op, Kind: KindUnreachable, Message: "read body", Err: redactURL(err)}
	}
	if len(body) > maxBody {
		return nil, Malformed(op, fmt.Sprintf("response too large (over %d bytes)", maxBody), nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Op: op, Kind: KindStatus, Status: resp.StatusCode, Message: statusMessage(resp, body)}
	}
	return body, nil
}

// redactURL drops the query string from any *url.Error in err's chain so
// credentials passed as query parameters never reach error text.
func redactURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		if i := strings.IndexByte(ue.URL, '?'); i >= 0 {
			ue.URL = ue.URL[:i] + "?[redacted]"
		}
	}
	return err
}

// statusMessage prefers the JSON "message" field many APIs return with errors
// (OpenWeatherMap: {"cod":"404","message":"city not found"}).
func statusMessage(resp *http.Response, body []byte) string {
	if gjson.ValidBytes(body) {
		if m := gjson.GetBytes(body, "message"); m.Type == gjson.String && m.Str != "" {
			return m.Str
		}
	}
	return http.StatusText(resp.StatusCode)
}
