package davsync

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/rclone/dav"
	"github.com/rclone/dav/davcolxml"
	"github.com/rclone/dav/davlog"
	"github.com/rclone/dav/davprop"
	"github.com/rclone/dav/davresponse"
	"github.com/rclone/dav/davtransport"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	method string
	body   []byte
}

func (r *recordingTransport) Do(ctx context.Context, req *davtransport.Request) (*davtransport.Response, error) {
	r.method = req.Method
	if req.Body != nil {
		r.body, _ = io.ReadAll(req.Body)
	}
	respBody := `<?xml version="1.0"?>
	<multistatus xmlns="DAV:">
		<response>
			<href>/calendars/alice/new.ics</href>
			<propstat>
				<prop><getetag>"v2"</getetag></prop>
				<status>HTTP/1.1 200 OK</status>
			</propstat>
		</response>
		<sync-token>https://example.com/sync/2</sync-token>
	</multistatus>`
	return &davtransport.Response{
		StatusCode: http.StatusMultiStatus,
		Status:     "207 Multi-Status",
		Header:     http.Header{"Content-Type": []string{"application/xml"}},
		Body:       io.NopCloser(bytes.NewBufferString(respBody)),
	}, nil
}

func TestSyncCollectionReturnsNewTokenAndUsesReportVerb(t *testing.T) {
	rt := &recordingTransport{}
	loc, err := url.Parse("https://example.com/calendars/alice/")
	require.NoError(t, err)
	resource := dav.NewDavResource(rt, loc, davlog.Default())
	coll := dav.NewDavCollection(resource)

	var seen []string
	newToken, err := SyncCollection(context.Background(), coll, dav.DepthOne, "https://example.com/sync/1", 0,
		[]davcolxml.QName{davprop.NameGetETag},
		func(resp *davresponse.Response, rel davresponse.HrefRelation) error {
			seen = append(seen, resp.Href.Path)
			return nil
		})
	require.NoError(t, err)
	require.Equal(t, "REPORT", rt.method)
	require.Contains(t, string(rt.body), "sync-collection")
	require.Contains(t, string(rt.body), "https://example.com/sync/1")
	require.Equal(t, "https://example.com/sync/2", newToken)
	require.Equal(t, []string{"/calendars/alice/new.ics"}, seen)
}

func TestSyncCollectionWithLimitSendsLimitElement(t *testing.T) {
	rt := &recordingTransport{}
	loc, err := url.Parse("https://example.com/calendars/alice/")
	require.NoError(t, err)
	resource := dav.NewDavResource(rt, loc, davlog.Default())
	coll := dav.NewDavCollection(resource)

	_, err = SyncCollection(context.Background(), coll, dav.DepthOne, "", 50, nil, nil)
	require.NoError(t, err)
	require.Contains(t, string(rt.body), "<limit>")
	require.Contains(t, string(rt.body), "50")
}
