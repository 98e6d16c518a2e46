package dav

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rclone/dav/daverr"
	"github.com/rclone/dav/davtransport"
)

// Delete emits DELETE with optional conditional headers. A 207
// Multi-Status response is treated as an error per RFC 4918 §9.6.1: some
// member resource failed to delete.
func (r *DavResource) Delete(ctx context.Context, ifETag, ifScheduleTag string, handler ResultHandler) error {
	defer r.enter("delete")()

	header := http.Header{}
	if ifETag != "" {
		header.Set("If-Match", quoteString(ifETag))
	}
	if ifScheduleTag != "" {
		header.Set("If-Schedule-Tag-Match", quoteString(ifScheduleTag))
	}

	resp, err := r.followRedirects(ctx, "delete", func(ctx context.Context, target *url.URL) (*davtransport.Response, error) {
		return r.Transport.Do(ctx, &davtransport.Request{Method: http.MethodDelete, URL: target.String(), Header: header})
	})
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusMultiStatus {
		resp.Body.Close()
		return daverr.NewDavError("delete", "partial failure (207 Multi-Status)", nil)
	}
	if err := checkStatus(resp); err != nil {
		return err
	}
	return runHandler(resp, handler)
}
