package dav

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/rclone/dav/davlog"
	"github.com/rclone/dav/davtransport"
	"github.com/stretchr/testify/require"
)

// capturingTransport records the single request it receives and always
// answers with a scripted status.
type capturingTransport struct {
	status int
	header http.Header
	req    *davtransport.Request
}

func (c *capturingTransport) Do(ctx context.Context, req *davtransport.Request) (*davtransport.Response, error) {
	c.req = req
	return respond(c.status, c.header, ""), nil
}

func newCapturingResource(loc string, ct *capturingTransport) *DavResource {
	u, _ := url.Parse(loc)
	return NewDavResource(ct, u, davlog.Default())
}

func TestPutQuotesIfMatchHeader(t *testing.T) {
	ct := &capturingTransport{status: http.StatusNoContent}
	r := newCapturingResource("https://example.com/a.ics", ct)

	err := r.Put(context.Background(), []byte("body"), "abc123", "sched1", false, nil)
	require.NoError(t, err)
	require.Equal(t, `"abc123"`, ct.req.Header.Get("If-Match"))
	require.Equal(t, `"sched1"`, ct.req.Header.Get("If-Schedule-Tag-Match"))
}

func TestPutSetsIfNoneMatchStar(t *testing.T) {
	ct := &capturingTransport{status: http.StatusCreated}
	r := newCapturingResource("https://example.com/a.ics", ct)

	err := r.Put(context.Background(), []byte("body"), "", "", true, nil)
	require.NoError(t, err)
	require.Equal(t, "*", ct.req.Header.Get("If-None-Match"))
}

func TestPutRejects207AsError(t *testing.T) {
	ct := &capturingTransport{status: http.StatusMultiStatus}
	r := newCapturingResource("https://example.com/a.ics", ct)

	err := r.Put(context.Background(), []byte("body"), "", "", false, nil)
	require.Error(t, err)
}

func TestDeleteRejects207AsError(t *testing.T) {
	ct := &capturingTransport{status: http.StatusMultiStatus}
	r := newCapturingResource("https://example.com/collection/", ct)

	err := r.Delete(context.Background(), "", "", nil)
	require.Error(t, err)
}

func TestMoveUpdatesLocationToDestinationOnSuccess(t *testing.T) {
	ct := &capturingTransport{status: http.StatusCreated}
	r := newCapturingResource("https://example.com/a.ics", ct)

	dest, _ := url.Parse("https://example.com/b.ics")
	err := r.Move(context.Background(), dest, false, nil)
	require.NoError(t, err)
	require.Equal(t, "/b.ics", r.Location().Path)
	require.Equal(t, "F", ct.req.Header.Get("Overwrite"))
}

func TestMoveUpdatesLocationFromLocationHeader(t *testing.T) {
	ct := &capturingTransport{status: http.StatusCreated, header: http.Header{"Location": []string{"/c.ics"}}}
	r := newCapturingResource("https://example.com/a.ics", ct)

	dest, _ := url.Parse("https://example.com/b.ics")
	err := r.Move(context.Background(), dest, true, nil)
	require.NoError(t, err)
	require.Equal(t, "/c.ics", r.Location().Path)
	require.Equal(t, "", ct.req.Header.Get("Overwrite"))
}

func TestCopyRejects207AsError(t *testing.T) {
	ct := &capturingTransport{status: http.StatusMultiStatus}
	r := newCapturingResource("https://example.com/a.ics", ct)

	dest, _ := url.Parse("https://example.com/b.ics")
	err := r.Copy(context.Background(), dest, false, nil)
	require.Error(t, err)
}
