package dav

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/rclone/dav/davtransport"
)

// ResultHandler receives the raw, still-open response for operations that
// don't drive Multi-Status parsing. The body is released on every exit
// path once the handler returns.
type ResultHandler func(resp *davtransport.Response) error

func runHandler(resp *davtransport.Response, handler ResultHandler) error {
	defer resp.Body.Close()
	if handler == nil {
		return nil
	}
	return handler(resp)
}

// MkCol sends MKCOL, with an optional extended-MKCOL (RFC 5689) XML body,
// following redirects. body is re-read from scratch on every redirect hop
// so a redirected extended-MKCOL re-sends its body unchanged.
func (r *DavResource) MkCol(ctx context.Context, body []byte, handler ResultHandler) error {
	defer r.enter("mkcol")()

	header := http.Header{}
	if body != nil {
		header.Set("Content-Type", "application/xml; charset=utf-8")
	}

	resp, err := r.followRedirects(ctx, "mkcol", func(ctx context.Context, target *url.URL) (*davtransport.Response, error) {
		var reader *bytes.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req := &davtransport.Request{
			Method: "MKCOL",
			URL:    target.String(),
			Header: header,
		}
		if reader != nil {
			req.Body = reader
		}
		return r.Transport.Do(ctx, req)
	})
	if err != nil {
		return err
	}
	if err := checkStatus(resp); err != nil {
		return err
	}
	return runHandler(resp, handler)
}
