package davcolxml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("HTTP/1.1 200 OK")
	require.NoError(t, err)
	require.Equal(t, "1.1", st.Version)
	require.Equal(t, 200, st.Code)
	require.Equal(t, "OK", st.Reason)
	require.True(t, st.IsOK())
}

func TestParseStatusNoReason(t *testing.T) {
	st, err := ParseStatus("HTTP/1.1 404")
	require.NoError(t, err)
	require.Equal(t, 404, st.Code)
	require.Equal(t, "", st.Reason)
	require.False(t, st.IsOK())
}

func TestParseStatusVerbatimReason(t *testing.T) {
	st, err := ParseStatus("HTTP/1.1 207 Multi Status Extended")
	require.NoError(t, err)
	require.Equal(t, "Multi Status Extended", st.Reason)
}

func TestParseStatusInvalid(t *testing.T) {
	_, err := ParseStatus("bogus")
	require.Error(t, err)
}
