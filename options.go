package dav

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/rclone/dav/davtransport"
)

// OptionsHandler receives the server's advertised DAV compliance classes
// once the OPTIONS request succeeds.
type OptionsHandler func(classes []string) error

// Options sends OPTIONS, explicitly disabling content-encoding because
// some servers mishandle compressed OPTIONS responses, and never follows
// redirects.
func (r *DavResource) Options(ctx context.Context, handler OptionsHandler) error {
	defer r.enter("options")()

	resp, err := r.doNoRedirect(ctx, func(ctx context.Context, target *url.URL) (*davtransport.Response, error) {
		return r.Transport.Do(ctx, &davtransport.Request{
			Method: http.MethodOptions,
			URL:    target.String(),
			Header: http.Header{"Accept-Encoding": []string{"identity"}},
		})
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	classes := splitTokens(resp.Header.Get("DAV"))
	if handler != nil {
		return handler(classes)
	}
	return nil
}

func splitTokens(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
