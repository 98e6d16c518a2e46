package dav

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rclone/dav/daverr"
	"github.com/rclone/dav/davtransport"
)

func copyMoveHeader(dest *url.URL, forceOverwrite bool) http.Header {
	h := http.Header{"Destination": []string{dest.String()}}
	if !forceOverwrite {
		h.Set("Overwrite", "F")
	}
	return h
}

// Copy emits COPY with Destination and, unless forceOverwrite, Overwrite:
// F. A 207 response signals partial failure and is raised as an error.
func (r *DavResource) Copy(ctx context.Context, dest *url.URL, forceOverwrite bool, handler ResultHandler) error {
	defer r.enter("copy")()

	header := copyMoveHeader(dest, forceOverwrite)
	resp, err := r.followRedirects(ctx, "copy", func(ctx context.Context, target *url.URL) (*davtransport.Response, error) {
		return r.Transport.Do(ctx, &davtransport.Request{Method: "COPY", URL: target.String(), Header: header})
	})
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusMultiStatus {
		resp.Body.Close()
		return daverr.NewDavError("copy", "partial failure (207 Multi-Status)", nil)
	}
	if err := checkStatus(resp); err != nil {
		return err
	}
	return runHandler(resp, handler)
}

// Move emits MOVE with Destination and, unless forceOverwrite, Overwrite:
// F. On success, the handle's location is updated to the Location response
// header if present, else to dest.
func (r *DavResource) Move(ctx context.Context, dest *url.URL, forceOverwrite bool, handler ResultHandler) error {
	defer r.enter("move")()

	header := copyMoveHeader(dest, forceOverwrite)
	resp, err := r.followRedirects(ctx, "move", func(ctx context.Context, target *url.URL) (*davtransport.Response, error) {
		return r.Transport.Do(ctx, &davtransport.Request{Method: "MOVE", URL: target.String(), Header: header})
	})
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusMultiStatus {
		resp.Body.Close()
		return daverr.NewDavError("move", "partial failure (207 Multi-Status)", nil)
	}
	if err := checkStatus(resp); err != nil {
		return err
	}

	if loc := resp.Header.Get("Location"); loc != "" {
		if parsed, err := url.Parse(loc); err == nil {
			r.location = r.location.ResolveReference(parsed)
		} else {
			r.location = dest
		}
	} else {
		r.location = dest
	}

	return runHandler(resp, handler)
}
