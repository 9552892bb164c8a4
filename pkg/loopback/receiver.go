package loopback

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/authbridge/pkg/logger"
	"github.com/dmitrymomot/authbridge/pkg/oauth"
)

// Receiver is a single-use loopback redirect listener.
type Receiver struct {
	ln              net.Listener
	opener          Opener
	logger          *slog.Logger
	path            string
	timeout         time.Duration
	shutdownTimeout time.Duration

	used     bool
	mu       sync.Mutex
	once     sync.Once
	received chan oauth.Redirect
}

// Listen binds addr and returns a Receiver ready to Prompt. Use port 0 to
// let the OS pick a free port.
func Listen(addr string, opts ...Option) (*Receiver, error) {
	r := &Receiver{
		logger:          logger.NewNope(),
		path:            "/callback",
		timeout:         5 * time.Minute,
		shutdownTimeout: 5 * time.Second,
		received:        make(chan oauth.Redirect, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.opener == nil {
		r.opener = func(ctx context.Context, authURL string) error {
			r.logger.InfoContext(ctx, "open authorization url", slog.String("url", authURL))
			return nil
		}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Join(ErrListen, err)
	}
	r.ln = ln
	return r, nil
}

// Addr returns the bound address.
func (r *Receiver) Addr() net.Addr {
	return r.ln.Addr()
}

// RedirectURI returns the URL to register as the provider redirect.
func (r *Receiver) RedirectURI() string {
	return "http://" + r.ln.Addr().String() + r.path
}

// Close releases the listener without prompting.
func (r *Receiver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.used {
		return nil
	}
	r.used = true
	return r.ln.Close()
}

// Prompt opens the authorization URL and blocks until the provider
// redirects back, ctx is done, or the timeout elapses. A timeout reports
// oauth.ErrCancelled since the user never completed the prompt.
func (r *Receiver) Prompt(ctx context.Context, req *oauth.Request, state, nonce string) (oauth.Redirect, error) {
	r.mu.Lock()
	if r.used {
		r.mu.Unlock()
		return oauth.Redirect{}, ErrClosed
	}
	r.used = true
	r.mu.Unlock()

	srv := &http.Server{
		Handler:           r.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	var result oauth.Redirect

	g.Go(func() error {
		if err := srv.Serve(r.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("loopback: serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer r.shutdown(srv)

		if err := r.opener(gctx, req.AuthURL(state, nonce)); err != nil {
			return errors.Join(ErrOpen, err)
		}

		timer := time.NewTimer(r.timeout)
		defer timer.Stop()

		select {
		case result = <-r.received:
			r.logger.DebugContext(ctx, "redirect received", slog.String("type", string(result.Type)))
			return nil
		case <-timer.C:
			return errors.Join(oauth.ErrCancelled, ErrTimeout)
		case <-gctx.Done():
			return gctx.Err()
		}
	})

	if err := g.Wait(); err != nil {
		return oauth.Redirect{}, err
	}
	return result, nil
}

func (r *Receiver) shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		r.logger.Warn("loopback shutdown", slog.Any("error", err))
	}
}

func (r *Receiver) routes() http.Handler {
	mux := chi.NewRouter()
	mux.Get(r.path, r.handleGet)
	mux.Post(r.path, r.handleFormPost)
	mux.Get(r.path+"/complete", r.handleComplete)
	return mux
}

// handleGet accepts redirects that carry parameters in the query, and
// otherwise serves the fragment forwarding page.
func (r *Receiver) handleGet(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	if q.Has("error") || q.Has("code") || q.Has("id_token") || q.Has("access_token") {
		r.deliver(w, q)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = forwardPage.Execute(w, r.path+"/complete")
}

func (r *Receiver) handleComplete(w http.ResponseWriter, req *http.Request) {
	r.deliver(w, req.URL.Query())
}

func (r *Receiver) handleFormPost(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, 64<<10)
	if err := req.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	r.deliver(w, req.PostForm)
}

func (r *Receiver) deliver(w http.ResponseWriter, values url.Values) {
	delivered := false
	r.once.Do(func() {
		r.received <- oauth.RedirectFromValues(values)
		delivered = true
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if !delivered {
		w.WriteHeader(http.StatusConflict)
	}
	_ = donePage.Execute(w, delivered)
}

var forwardPage = template.Must(template.New("forward").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Signing in</title></head>
<body><p>Completing sign-in...</p>
<script>
var target = {{.}};
window.location.replace(target + "?" + window.location.hash.substring(1));
</script>
</body></html>`))

var donePage = template.Must(template.New("done").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Sign-in</title></head>
<body><p>{{if .}}You can close this window and return to the application.{{else}}This sign-in was already completed.{{end}}</p></body></html>`))
