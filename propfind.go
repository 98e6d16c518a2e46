package dav

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/rclone/dav/davcolxml"
	"github.com/rclone/dav/daverr"
	"github.com/rclone/dav/davmulti"
	"github.com/rclone/dav/davprop"
	"github.com/rclone/dav/davresponse"
	"github.com/rclone/dav/davtransport"
)

// Depth is the WebDAV "Depth" header value.
type Depth int

const (
	DepthZero     Depth = 0
	DepthOne      Depth = 1
	DepthInfinity Depth = -1
)

func (d Depth) String() string {
	switch {
	case d < 0:
		return "infinity"
	case d == 0:
		return "0"
	default:
		return "1"
	}
}

// ResponseCallback is invoked once per "<D:response>" element, in document
// order, during a Multi-Status parse.
type ResponseCallback func(resp *davresponse.Response, relation davresponse.HrefRelation) error

// Propfind sends PROPFIND with the given Depth and requested property
// names, driving Multi-Status parsing and returning the residual top-level
// properties (e.g. sync-token).
func (r *DavResource) Propfind(ctx context.Context, depth Depth, props []davcolxml.QName, cb ResponseCallback) ([]davprop.Property, error) {
	defer r.enter("propfind")()

	body := davcolxml.NewPropfindBody(props...)

	resp, err := r.followRedirects(ctx, "propfind", func(ctx context.Context, target *url.URL) (*davtransport.Response, error) {
		return r.Transport.Do(ctx, &davtransport.Request{
			Method: "PROPFIND",
			URL:    target.String(),
			Header: http.Header{
				"Depth":        []string{depth.String()},
				"Content-Type": []string{"application/xml; charset=utf-8"},
			},
			Body: bytes.NewReader(body),
		})
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusMultiStatus {
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		resp.Body.Close()
		return nil, daverr.NewDavError("propfind", "expected 207 Multi-Status", nil)
	}
	defer resp.Body.Close()

	return davmulti.Parse(resp.Body, resp.StatusCode, resp.Header.Get("Content-Type"), r.location, func(dr *davresponse.Response) error {
		if cb == nil {
			return nil
		}
		return cb(dr, dr.HrefRelation)
	})
}
