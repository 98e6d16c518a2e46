package dav

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rclone/dav/davtransport"
)

// Head sends HEAD, following redirects.
func (r *DavResource) Head(ctx context.Context, handler ResultHandler) error {
	defer r.enter("head")()

	resp, err := r.followRedirects(ctx, "head", func(ctx context.Context, target *url.URL) (*davtransport.Response, error) {
		return r.Transport.Do(ctx, &davtransport.Request{Method: http.MethodHead, URL: target.String()})
	})
	if err != nil {
		return err
	}
	if err := checkStatus(resp); err != nil {
		return err
	}
	return runHandler(resp, handler)
}

// Get sends GET. Accept is always transmitted; the library does not
// disable compression by default — callers that need ETag stability across
// compression inject "Accept-Encoding: identity" via extraHeaders.
func (r *DavResource) Get(ctx context.Context, accept string, extraHeaders http.Header, handler ResultHandler) error {
	defer r.enter("get")()

	header := cloneOrNew(extraHeaders)
	header.Set("Accept", accept)

	resp, err := r.followRedirects(ctx, "get", func(ctx context.Context, target *url.URL) (*davtransport.Response, error) {
		return r.Transport.Do(ctx, &davtransport.Request{Method: http.MethodGet, URL: target.String(), Header: header})
	})
	if err != nil {
		return err
	}
	if err := checkStatus(resp); err != nil {
		return err
	}
	return runHandler(resp, handler)
}

// GetRange sends a ranged GET covering [offset, offset+size). The handler
// MUST inspect resp.StatusCode to distinguish 200 (full content, range not
// honored) from 206 (partial content) — this operation does not fail on
// either, since both are valid successful outcomes of a Range request.
func (r *DavResource) GetRange(ctx context.Context, accept string, offset, size int64, extraHeaders http.Header, handler ResultHandler) error {
	defer r.enter("getrange")()

	header := cloneOrNew(extraHeaders)
	if accept != "" {
		header.Set("Accept", accept)
	}
	header.Set("Range", fmt.Sprintf("bytes=%d-%d", offset, offset+size-1))

	resp, err := r.followRedirects(ctx, "getrange", func(ctx context.Context, target *url.URL) (*davtransport.Response, error) {
		return r.Transport.Do(ctx, &davtransport.Request{Method: http.MethodGet, URL: target.String(), Header: header})
	})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		if err := checkStatus(resp); err != nil {
			return err
		}
	}
	return runHandler(resp, handler)
}

func cloneOrNew(h http.Header) http.Header {
	if h == nil {
		return http.Header{}
	}
	return h.Clone()
}
