package dav

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/rclone/dav/daverr"
	"github.com/rclone/dav/davtransport"
)

// Put emits PUT with optional conditional headers: If-Match (quoted
// ifETag), If-Schedule-Tag-Match (quoted ifScheduleTag), and If-None-Match:
// * when ifNoneMatchStar is true. body is re-read from scratch on every
// redirect hop, since a 3xx must re-send the original PUT body unchanged.
func (r *DavResource) Put(ctx context.Context, body []byte, ifETag, ifScheduleTag string, ifNoneMatchStar bool, handler ResultHandler) error {
	defer r.enter("put")()

	header := http.Header{}
	if ifETag != "" {
		header.Set("If-Match", quoteString(ifETag))
	}
	if ifScheduleTag != "" {
		header.Set("If-Schedule-Tag-Match", quoteString(ifScheduleTag))
	}
	if ifNoneMatchStar {
		header.Set("If-None-Match", "*")
	}

	resp, err := r.followRedirects(ctx, "put", func(ctx context.Context, target *url.URL) (*davtransport.Response, error) {
		return r.Transport.Do(ctx, &davtransport.Request{
			Method: http.MethodPut,
			URL:    target.String(),
			Header: header,
			Body:   bytes.NewReader(body),
		})
	})
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusMultiStatus {
		resp.Body.Close()
		return daverr.NewDavError("put", "unexpected 207 Multi-Status", nil)
	}
	if err := checkStatus(resp); err != nil {
		return err
	}
	return runHandler(resp, handler)
}
