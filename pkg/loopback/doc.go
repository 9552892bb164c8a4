// Package loopback receives OAuth redirects on a local HTTP server.
//
// Desktop and CLI clients cannot register a custom URL scheme, so the
// provider is pointed at http://127.0.0.1:<port>/callback instead. A Receiver
// listens on that address, hands the authorization URL to an Opener and
// waits for the browser to come back.
//
// Implicit flows put the token in the URL fragment, which browsers never
// send to servers. GET /callback therefore serves a tiny page that forwards
// the fragment to /callback/complete as a query string. Apple's form_post
// response arrives as POST /callback.
//
//	rcv, err := loopback.Listen("127.0.0.1:0", loopback.WithOpener(loopback.PrintOpener(os.Stdout)))
//	req, _ := oauth.NewGoogleRequest(cfg.Google, cfg.App, oauth.WithRedirectURI(rcv.RedirectURI()))
//	res, err := rcv.Prompt(ctx, req, state, "")
//
// A Receiver serves a single prompt and closes its listener afterwards.
package loopback
