// Package davtransport defines the HTTP transport interface the resource
// operation layer is built against. The concrete transport — connection
// pooling, TLS, authentication challenges — is explicitly out of scope for
// this engine; this package specifies only the interface the
// core consumes, plus a thin default implementation over net/http.
package davtransport

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// Request is everything the core needs to issue one HTTP(S) request.
type Request struct {
	Method  string
	URL     string
	Header  http.Header
	Body    io.Reader
}

// Response is what the transport hands back: status, headers, and a body
// stream the caller is responsible for closing.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       io.ReadCloser
}

// Transport performs HTTP requests on behalf of DavResource. It MUST NOT
// follow redirects itself — the resource operation layer enforces redirect
// discipline (5-hop cap, HTTPS→HTTP refusal) and needs to see every 3xx.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport adapts *http.Client to Transport. The constructor fails
// fast if the client's CheckRedirect is nil (net/http's default
// auto-following policy); a non-nil CheckRedirect is accepted without
// checking whether it actually refuses to follow.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport wraps client, which MUST have a CheckRedirect func that
// refuses to follow (e.g. returning http.ErrUseLastResponse). A nil
// CheckRedirect means the client uses net/http's default auto-following
// policy, which this engine cannot safely layer redirect discipline on top
// of, so construction fails.
func NewHTTPTransport(client *http.Client) (*HTTPTransport, error) {
	if client == nil {
		return nil, errors.New("davtransport: client must not be nil")
	}
	if client.CheckRedirect == nil {
		return nil, errors.New("davtransport: client must set CheckRedirect to refuse auto-redirects")
	}
	return &HTTPTransport{client: client}, nil
}

func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, req.Body)
	if err != nil {
		return nil, errors.Wrap(err, "davtransport: build request")
	}
	if req.Header != nil {
		httpReq.Header = req.Header.Clone()
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "davtransport: round trip")
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

// RefusingRedirects is the CheckRedirect callers should install on any
// *http.Client passed to NewHTTPTransport.
func RefusingRedirects(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}
