package geocoding

import "net/http"

// userAgentTransport stamps every outgoing request with a fixed User-Agent.
type userAgentTransport struct {
	transport http.RoundTripper
	userAgent string
}

// RoundTrip implements the http.RoundTripper interface.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)

	return t.transport.RoundTrip(clone)
}
