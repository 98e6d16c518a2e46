package davlog

import (
	"bytes"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDebugfWritesSubjectAndMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	u, err := url.Parse("https://example.com/calendars/alice/")
	require.NoError(t, err)

	l.Debugf(u, "propfind depth=%d", 0)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	require.Equal(t, "https://example.com/calendars/alice/", fields["subject"])
	require.Equal(t, "propfind depth=0", fields["message"])
}

func TestDebugfWithNilSubject(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Warnf(nil, "unexpected content-type %q", "text/plain")

	var fields map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	require.Equal(t, "", fields["subject"])
	require.Equal(t, `unexpected content-type "text/plain"`, fields["message"])
}
