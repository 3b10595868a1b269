package google

import (
	"context"
	"errors"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/teemow/gworkspace-mcp/internal/instrumentation"
)

// ErrMissingCredentials is returned by every API call made without a complete
// set of credentials.
var ErrMissingCredentials = errors.New("google credentials are not configured: set GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REFRESH_TOKEN")

// Credentials identify the OAuth client and the user it acts for.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Complete reports whether all values are present.
func (c Credentials) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// OAuthConfig returns the OAuth2 configuration for Google with the server's scopes.
func (c Credentials) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
}

// RefreshRecorder observes access token refreshes.
type RefreshRecorder interface {
	RecordOAuthTokenRefresh(ctx context.Context, result string)
}

// NewHTTPClient returns a client that authorizes every request with an access
// token derived from creds. Missing credentials do not fail here; each request
// fails with ErrMissingCredentials instead, so the server can start and report
// the problem per tool call.
func NewHTTPClient(ctx context.Context, creds Credentials, recorder RefreshRecorder) *http.Client {
	if !creds.Complete() {
		return newClient(errorSource{err: ErrMissingCredentials})
	}
	return NewHTTPClientWithConfig(ctx, creds.OAuthConfig(), creds.RefreshToken, recorder)
}

// NewHTTPClientWithConfig is NewHTTPClient for an explicit OAuth configuration.
func NewHTTPClientWithConfig(ctx context.Context, conf *oauth2.Config, refreshToken string, recorder RefreshRecorder) *http.Client {
	// Token endpoint calls share the base transport.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: baseTransport()})

	src := &recordingSource{
		ctx:      ctx,
		base:     conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}),
		recorder: recorder,
	}
	return newClient(oauth2.ReuseTokenSource(nil, src))
}

func newClient(src oauth2.TokenSource) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: src,
			Base:   baseTransport(),
		},
	}
}

// baseTransport forces HTTP/1.1; the Google APIs intermittently reset
// long-lived HTTP/2 streams used for exports.
func baseTransport() http.RoundTripper {
	return otelhttp.NewTransport(&http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		ForceAttemptHTTP2: false,
	})
}

// recordingSource reports each refresh. It sits below ReuseTokenSource so
// cached tokens are not counted.
type recordingSource struct {
	ctx      context.Context
	base     oauth2.TokenSource
	recorder RefreshRecorder
}

func (s *recordingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if s.recorder != nil {
		result := instrumentation.OAuthResultSuccess
		if err != nil {
			result = instrumentation.OAuthResultFailure
		}
		s.recorder.RecordOAuthTokenRefresh(s.ctx, result)
	}
	return tok, err
}

type errorSource struct {
	err error
}

func (s errorSource) Token() (*oauth2.Token, error) {
	return nil, s.err
}
