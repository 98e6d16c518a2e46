package dav

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/rclone/dav/davlog"
	"github.com/rclone/dav/davresponse"
	"github.com/rclone/dav/davtransport"
	"github.com/stretchr/testify/require"
)

// fakeTransport replays a scripted sequence of responses, one per call to
// Do, so redirect-hop behavior can be exercised without a real server.
type fakeTransport struct {
	responses []*davtransport.Response
	calls     []*davtransport.Request
}

func (f *fakeTransport) Do(ctx context.Context, req *davtransport.Request) (*davtransport.Response, error) {
	f.calls = append(f.calls, req)
	if len(f.responses) == 0 {
		panic("fakeTransport: ran out of scripted responses")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func respond(status int, header http.Header, body string) *davtransport.Response {
	if header == nil {
		header = http.Header{}
	}
	return &davtransport.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     header,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func newResource(t *testing.T, ft *fakeTransport) *DavResource {
	t.Helper()
	loc, err := url.Parse("https://example.com/start")
	require.NoError(t, err)
	return NewDavResource(ft, loc, davlog.Default())
}

func TestFollowRedirectsUpdatesLocation(t *testing.T) {
	ft := &fakeTransport{responses: []*davtransport.Response{
		respond(http.StatusFound, http.Header{"Location": []string{"/moved"}}, ""),
		respond(http.StatusOK, nil, "ok"),
	}}
	r := newResource(t, ft)

	err := r.Get(context.Background(), "", nil, func(resp *davtransport.Response) error {
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "/moved", r.Location().Path)
	require.Len(t, ft.calls, 2)
}

func TestFollowRedirectsRefusesHTTPSToHTTPDowngrade(t *testing.T) {
	ft := &fakeTransport{responses: []*davtransport.Response{
		respond(http.StatusFound, http.Header{"Location": []string{"http://example.com/insecure"}}, ""),
	}}
	r := newResource(t, ft)

	err := r.Get(context.Background(), "", nil, func(resp *davtransport.Response) error { return nil })
	require.Error(t, err)
	// No second request should ever be issued once the downgrade is detected.
	require.Len(t, ft.calls, 1)
}

func TestFollowRedirectsRefusesMissingLocation(t *testing.T) {
	ft := &fakeTransport{responses: []*davtransport.Response{
		respond(http.StatusFound, nil, ""),
	}}
	r := newResource(t, ft)

	err := r.Get(context.Background(), "", nil, func(resp *davtransport.Response) error { return nil })
	require.Error(t, err)
	require.Len(t, ft.calls, 1)
}

func TestFollowRedirectsEnforcesHopLimit(t *testing.T) {
	ft := &fakeTransport{}
	for i := 0; i < maxRedirects+2; i++ {
		ft.responses = append(ft.responses, respond(http.StatusFound, http.Header{"Location": []string{"/next"}}, ""))
	}
	r := newResource(t, ft)

	err := r.Get(context.Background(), "", nil, func(resp *davtransport.Response) error { return nil })
	require.Error(t, err)
	require.LessOrEqual(t, len(ft.calls), maxRedirects+2)
}

func TestOptionsParsesDAVHeaderAndNeverFollowsRedirects(t *testing.T) {
	ft := &fakeTransport{responses: []*davtransport.Response{
		respond(http.StatusOK, http.Header{"Dav": []string{"1, 2, access-control, calendar-access"}}, ""),
	}}
	r := newResource(t, ft)

	var got []string
	err := r.Options(context.Background(), func(classes []string) error {
		got = classes
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "access-control", "calendar-access"}, got)

	redirect := &fakeTransport{responses: []*davtransport.Response{
		respond(http.StatusFound, http.Header{"Location": []string{"/elsewhere"}}, ""),
	}}
	err = newResource(t, redirect).Options(context.Background(), nil)
	require.Error(t, err)
	require.Len(t, redirect.calls, 1)
}

func TestPropfindParsesMultiStatusBody(t *testing.T) {
	body := `<?xml version="1.0"?>
	<multistatus xmlns="DAV:">
		<response>
			<href>/start</href>
			<propstat>
				<prop><displayname>Start</displayname></prop>
				<status>HTTP/1.1 200 OK</status>
			</propstat>
		</response>
	</multistatus>`
	ft := &fakeTransport{responses: []*davtransport.Response{
		respond(http.StatusMultiStatus, http.Header{"Content-Type": []string{"application/xml"}}, body),
	}}
	r := newResource(t, ft)

	var relation davresponse.HrefRelation
	_, err := r.Propfind(context.Background(), DepthZero, nil, func(resp *davresponse.Response, rel davresponse.HrefRelation) error {
		relation = rel
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, davresponse.Self, relation)
}

func TestPropfindRejectsNon207Status(t *testing.T) {
	ft := &fakeTransport{responses: []*davtransport.Response{
		respond(http.StatusOK, nil, ""),
	}}
	r := newResource(t, ft)

	_, err := r.Propfind(context.Background(), DepthZero, nil, nil)
	require.Error(t, err)
}
