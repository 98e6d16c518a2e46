package dav

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/rclone/dav/davcolxml"
	"github.com/rclone/dav/daverr"
	"github.com/rclone/dav/davmulti"
	"github.com/rclone/dav/davresponse"
	"github.com/rclone/dav/davtransport"
)

// PropPatch sends PROPPATCH with a "<D:set>" group for setProps and a
// "<D:remove>" group for removeProps, then drives Multi-Status parsing.
func (r *DavResource) PropPatch(ctx context.Context, setProps []davcolxml.SetProp, removeProps []davcolxml.QName, cb ResponseCallback) error {
	defer r.enter("proppatch")()

	body := davcolxml.NewPropPatchBody(setProps, removeProps)

	resp, err := r.followRedirects(ctx, "proppatch", func(ctx context.Context, target *url.URL) (*davtransport.Response, error) {
		return r.Transport.Do(ctx, &davtransport.Request{
			Method: "PROPPATCH",
			URL:    target.String(),
			Header: http.Header{
				"Content-Type": []string{"application/xml; charset=utf-8"},
			},
			Body: bytes.NewReader(body),
		})
	})
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusMultiStatus {
		if err := checkStatus(resp); err != nil {
			return err
		}
		resp.Body.Close()
		return daverr.NewDavError("proppatch", "expected 207 Multi-Status", nil)
	}
	defer resp.Body.Close()

	_, err = davmulti.Parse(resp.Body, resp.StatusCode, resp.Header.Get("Content-Type"), r.location, func(dr *davresponse.Response) error {
		if cb == nil {
			return nil
		}
		return cb(dr, dr.HrefRelation)
	})
	return err
}
