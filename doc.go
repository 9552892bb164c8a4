// Package authbridge signs users in with Google, Facebook or Apple and
// exchanges the provider token for an identity backend session.
//
// A Bridge drives one sign-in attempt at a time through a fixed sequence:
//
//	Idle → RequestBuilt → AwaitingRedirect → TokenReceived → Exchanging → Authenticated
//
// Any step may move the attempt to Failed. A dismissed prompt fails the
// attempt with credential.KindUserCancelled and no exchange is made. There
// are no retries; a new attempt starts from Idle with a fresh state value
// and, for Apple, a fresh nonce pair.
//
// # Quick Start
//
//	backend, _ := identitytoolkit.New(cfg.Firebase)
//	bridge, err := authbridge.New(
//	    authbridge.WithApp(cfg.App),
//	    authbridge.WithGoogle(cfg.Google),
//	    authbridge.WithBackend(backend),
//	    authbridge.WithSessionStore(store),
//	)
//	if err != nil {
//	    return err
//	}
//
//	res, attempt := bridge.SignInWithGoogle(ctx, prompter)
//	if res.Cancelled() {
//	    return nil
//	}
//	if !res.Success {
//	    log.Warn("sign-in failed", "kind", res.ErrorKind, "attempt", attempt.ID)
//	}
//
// # Ports
//
// The Bridge never talks to a browser or an OS directly. A [Prompter]
// presents a web authorization request and returns the redirect it
// produced; pkg/loopback provides one for desktop and CLI use. A [Platform]
// exposes native Sign in with Apple. The identity backend is a
// credential.Backend, usually an identitytoolkit.Client.
//
// # Sessions
//
// The authenticated session lives in an explicit session.Store passed with
// WithSessionStore. It is written only after a successful exchange and
// cleared only by SignOut.
package authbridge
