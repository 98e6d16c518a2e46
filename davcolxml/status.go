package davcolxml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Status is the parsed form of a WebDAV "<D:status>" value, e.g.
// "HTTP/1.1 200 OK". The integer Code is authoritative; Version and Reason
// are advisory only.
type Status struct {
	Version string
	Code    int
	Reason  string
}

// ParseStatus parses a status-line-shaped string of the form
// "HTTP/<version> <code> <reason...>". The reason phrase may be empty or
// contain spaces; it is returned verbatim.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	fields := strings.SplitN(s, " ", 3)
	if len(fields) < 2 {
		return Status{}, errors.Errorf("davcolxml: invalid status %q", s)
	}
	version := strings.TrimPrefix(fields[0], "HTTP/")
	if version == fields[0] {
		return Status{}, errors.Errorf("davcolxml: invalid status %q: missing HTTP version", s)
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return Status{}, errors.Wrapf(err, "davcolxml: invalid status %q: bad code", s)
	}
	reason := ""
	if len(fields) == 3 {
		reason = fields[2]
	}
	return Status{Version: version, Code: code, Reason: reason}, nil
}

// IsOK reports whether the status represents an overall success (2xx).
func (s Status) IsOK() bool {
	return s.Code >= 200 && s.Code < 300
}

func (s Status) String() string {
	return fmt.Sprintf("HTTP/%s %d %s", s.Version, s.Code, s.Reason)
}
