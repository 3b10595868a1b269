package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// CallbackPath is where the loopback listener receives the authorization code.
const CallbackPath = "/callback"

type callbackResult struct {
	code string
	err  error
}

// AuthorizeLoopback runs the installed-app flow: it listens on a random
// loopback port, prints the consent URL to out and waits for Google to
// redirect back with a code. Offline access and forced consent make Google
// return a refresh token even for users who granted access before.
func AuthorizeLoopback(ctx context.Context, conf *oauth2.Config, out io.Writer) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start callback listener: %w", err)
	}

	flow := *conf
	flow.RedirectURL = fmt.Sprintf("http://%s%s", listener.Addr().String(), CallbackPath)

	state, err := randomState()
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.Handle(CallbackPath, callbackHandler(state, results))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			results <- callbackResult{err: fmt.Errorf("callback server failed: %w", err)}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := flow.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Fprintf(out, "Open the following URL in your browser and grant access:\n\n%s\n\n", authURL)
	fmt.Fprintf(out, "Waiting for the authorization callback on %s ...\n", flow.RedirectURL)

	var res callbackResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-results:
	}
	if res.err != nil {
		return nil, res.err
	}

	tok, err := flow.Exchange(ctx, res.code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if tok.RefreshToken == "" {
		return nil, errors.New("google did not return a refresh token; revoke the app's access and try again")
	}
	return tok, nil
}

// callbackHandler delivers at most one result. Requests with a foreign state
// are rejected so another page cannot inject its own code.
func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var res callbackResult
		switch {
		case q.Get("state") != state:
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		case q.Get("error") != "":
			res.err = fmt.Errorf("authorization denied: %s", q.Get("error"))
			http.Error(w, "Authorization failed. You can close this window.", http.StatusBadRequest)
		case q.Get("code") == "":
			res.err = errors.New("authorization callback did not include a code")
			http.Error(w, "Missing authorization code.", http.StatusBadRequest)
		default:
			res.code = q.Get("code")
			fmt.Fprintln(w, "Authorization complete. You can close this window.")
		}

		select {
		case results <- res:
		default:
		}
	})
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
