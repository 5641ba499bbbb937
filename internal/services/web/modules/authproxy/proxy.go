package authproxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	log "github.com/sirupsen/logrus"

	apperrors "github.com/eighthwonder/eighthwonder/internal/services/web/platform/errors"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/sessioncookie"
	"github.com/eighthwonder/eighthwonder/internal/services/web/session"
)

func newProxy(target *url.URL, transport http.RoundTripper) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			stripSessionCookie(pr.Out)
		},
		Transport:      transport,
		ModifyResponse: resetProfile,
		ErrorHandler:   writeProxyError,
	}
}

// stripSessionCookie keeps the web session token away from the backend.
func stripSessionCookie(out *http.Request) {
	cookies := out.Cookies()
	out.Header.Del("Cookie")
	for _, cookie := range cookies {
		if cookie.Name == sessioncookie.Name {
			continue
		}
		out.AddCookie(cookie)
	}
}

// resetProfile drops the visitor's cached profile after any sign-in or
// sign-out exchange so the next read sees the new identity.
func resetProfile(resp *http.Response) error {
	if resp == nil || resp.Request == nil {
		return nil
	}
	if ws, ok := session.FromContext(resp.Request.Context()); ok {
		ws.ResetProfile()
	}
	return nil
}

func writeProxyError(w http.ResponseWriter, r *http.Request, err error) {
	log.WithError(err).WithFields(log.Fields{"path": r.URL.Path}).Warn("auth proxy failed")
	httpx.WriteError(w, apperrors.Wrap(apperrors.KindBadGateway, "authentication backend is unreachable", err))
}
