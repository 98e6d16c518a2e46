// Package davmulti drives the streaming parse of a 207 Multi-Status body:
// it advances a pull-parser to the "<multistatus>" root,
// dispatches each "<response>" child through davresponse and the caller's
// callback, and accumulates residual top-level properties such as
// "sync-token".
package davmulti

import (
	"bufio"
	"encoding/xml"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/rclone/dav/daverr"
	"github.com/rclone/dav/davlog"
	"github.com/rclone/dav/davprop"
	"github.com/rclone/dav/davresponse"
)

// ResponseFunc is invoked once per "<D:response>" element in document
// order. Returning a non-nil error fails the overall parse.
type ResponseFunc func(resp *davresponse.Response) error

// Parse validates and streams a 207 Multi-Status body. status and
// contentType come from the HTTP response; base is the request location,
// used to resolve and classify each response href.
func Parse(body io.Reader, status int, contentType string, base *url.URL, cb ResponseFunc) ([]davprop.Property, error) {
	br := bufio.NewReaderSize(body, 4096)

	if status != http.StatusMultiStatus {
		return nil, daverr.NewDavError("multistatus", "expected 207 Multi-Status", nil)
	}

	warn := false
	if contentType == "" {
		warn = true
	} else if t, _, err := mime.ParseMediaType(contentType); err != nil || (t != "application/xml" && t != "text/xml") {
		peek, _ := br.Peek(5)
		if string(peek) == "<?xml" {
			warn = true
		} else {
			return nil, daverr.NewDavError("multistatus", "non-XML 207 response", nil)
		}
	}
	if warn {
		davlog.Default().Warnf(nil, "multistatus response has unexpected or missing Content-Type %q", contentType)
	}

	dec := xml.NewDecoder(br)

	if err := advanceToRoot(dec); err != nil {
		return nil, daverr.NewDavError("multistatus", "incomplete or invalid multistatus", err)
	}

	var residual []davprop.Property
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, daverr.NewDavError("multistatus", "incomplete or invalid multistatus", io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, daverr.NewDavError("multistatus", "incomplete or invalid multistatus", err)
		}

		if end, ok := tok.(xml.EndElement); ok {
			if end.Name.Local == "multistatus" {
				return residual, nil
			}
			continue
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "response":
			responses, err := davresponse.Parse(dec, base)
			if err != nil {
				return nil, daverr.NewDavError("multistatus", "invalid response element", err)
			}
			for _, r := range responses {
				r.HrefRelation = davresponse.ComputeHrefRelation(r.Href, base)
				if cb != nil {
					if err := cb(r); err != nil {
						return nil, err
					}
				}
			}
		case "sync-token":
			text, err := readText(dec)
			if err != nil {
				return nil, err
			}
			residual = append(residual, davprop.SyncToken{Token: strings.TrimSpace(text)})
		case "response-description":
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		default:
			davlog.Default().Debugf(nil, "skipping unrecognized multistatus child <%s>", start.Name.Local)
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		}
	}
}

// advanceToRoot skips declarations, comments and whitespace until it finds
// the "<multistatus>" element.
func advanceToRoot(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != "multistatus" {
				return daverr.NewDavError("multistatus", "unexpected root element <"+start.Name.Local+">", nil)
			}
			return nil
		}
	}
}

func readText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := dec.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}
