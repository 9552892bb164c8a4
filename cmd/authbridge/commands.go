package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authbridge/pkg/credential"
	"github.com/dmitrymomot/authbridge/pkg/health"
	"github.com/dmitrymomot/authbridge/pkg/loopback"
	"github.com/dmitrymomot/authbridge/pkg/nonce"
	"github.com/dmitrymomot/authbridge/pkg/oauth"
	"github.com/dmitrymomot/authbridge/pkg/session"
)

var errUnsupported = errors.New("provider not supported by this command")

func providerArg(args []string) (oauth.ProviderID, error) {
	return oauth.ParseProviderID(strings.ToLower(args[0]))
}

func newURLCmd(rt *runtime) *cobra.Command {
	var redirect string
	cmd := &cobra.Command{
		Use:       "url <google|facebook|apple>",
		Short:     "Print an authorization URL with fresh state and nonce",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"google", "facebook", "apple"},
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := providerArg(args)
			if err != nil {
				return err
			}

			var opts []oauth.Option
			if redirect != "" {
				opts = append(opts, oauth.WithRedirectURI(redirect))
			}

			var req *oauth.Request
			switch provider {
			case oauth.Google:
				req, err = oauth.NewGoogleRequest(rt.cfg.Google, rt.cfg.App, opts...)
			case oauth.Facebook:
				req, err = oauth.NewFacebookRequest(rt.cfg.Facebook, rt.cfg.App, opts...)
			case oauth.Apple:
				req, err = oauth.NewAppleRequest(rt.cfg.Apple, rt.cfg.App, opts...)
			}
			if err != nil {
				return err
			}

			state, err := oauth.NewState()
			if err != nil {
				return err
			}
			pair, err := nonce.NewBuilder().Build()
			if err != nil {
				return err
			}

			// Apple receives the digest; Google echoes whatever it is given.
			sent := ""
			switch provider {
			case oauth.Google:
				sent = pair.Raw
			case oauth.Apple:
				sent = pair.Hashed
			}

			out := map[string]string{
				"url":          req.AuthURL(state, sent),
				"state":        state,
				"redirect_uri": req.RedirectURI(),
			}
			if provider == oauth.Apple {
				out["raw_nonce"] = pair.Raw
			}
			if rt.jsonOut {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out["url"])
			fmt.Fprintf(cmd.ErrOrStderr(), "state=%s\n", state)
			if raw, ok := out["raw_nonce"]; ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "raw_nonce=%s\n", raw)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&redirect, "redirect-uri", "", "override the app-scheme redirect URI")
	return cmd
}

func newNonceCmd(rt *runtime) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "nonce",
		Short: "Generate an Apple nonce pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pair, err := nonce.NewBuilder(nonce.WithSize(size)).Build()
			if err != nil {
				return err
			}
			if rt.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"raw": pair.Raw, "hashed": pair.Hashed})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "raw=%s\nhashed=%s\n", pair.Raw, pair.Hashed)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", nonce.DefaultSize, "entropy size in bytes (minimum 16)")
	return cmd
}

func newExchangeCmd(rt *runtime) *cobra.Command {
	var token, rawNonce string
	cmd := &cobra.Command{
		Use:   "exchange <google|facebook|apple>",
		Short: "Exchange a provider token for an identity backend session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := providerArg(args)
			if err != nil {
				return err
			}
			ex, err := rt.exchanger()
			if err != nil {
				return err
			}

			cred, err := credential.FromToken(oauth.Token{Provider: provider, Kind: provider.TokenKind(), Value: token}, rawNonce)
			if err != nil {
				return err
			}
			res := ex.Exchange(cmd.Context(), cred)
			if err := rt.printResult(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Success && !res.Cancelled() {
				return fmt.Errorf("exchange failed: %s", res.ErrorKind)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "provider token (id token, access token or identity token)")
	cmd.Flags().StringVar(&rawNonce, "nonce", "", "raw nonce (apple only)")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func newSignInCmd(rt *runtime) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "signin <google|facebook>",
		Short: "Sign in through the browser using a loopback redirect",
		Long: "Starts a local HTTP listener, prints the authorization URL and waits for the\n" +
			"provider to redirect back. The listener address must be registered as a\n" +
			"redirect URI with the provider.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := providerArg(args)
			if err != nil {
				return err
			}
			if provider == oauth.Apple {
				return fmt.Errorf("%w: native apple sign-in needs an apple platform", errUnsupported)
			}

			bridge, err := rt.bridge()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = rt.cfg.LoopbackAddr
			}
			rcv, err := loopback.Listen(addr,
				loopback.WithOpener(loopback.PrintOpener(cmd.ErrOrStderr())),
				loopback.WithLogger(rt.log),
			)
			if err != nil {
				return err
			}
			defer rcv.Close()

			signIn := bridge.SignInWithGoogle
			if provider == oauth.Facebook {
				signIn = bridge.SignInWithFacebook
			}
			res, attempt := signIn(cmd.Context(), rcv)
			rt.log.DebugContext(cmd.Context(), "attempt finished",
				"attempt_id", attempt.ID, "state", attempt.State.String())

			if err := rt.printResult(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Success && !res.Cancelled() {
				return fmt.Errorf("sign-in failed: %s", res.ErrorKind)
			}
			if res.Success && !rt.persist {
				fmt.Fprintln(cmd.ErrOrStderr(), "note: REDIS_URL is not set, the session ends with this process")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "loopback listen address (default AUTHBRIDGE_LOOPBACK_ADDR)")
	return cmd
}

func newWhoamiCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rt.sessions.Current(cmd.Context())
			if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) {
				fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			if err != nil {
				return err
			}
			if rt.jsonOut {
				return writeJSON(cmd.OutOrStdout(), credential.User{ID: s.UserID, Email: s.Email, DisplayName: s.DisplayName})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user_id=%s email=%s provider=%s expires_at=%s\n",
				s.UserID, s.Email, s.Provider, s.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"))
			return nil
		},
	}
}

func newSignOutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Clear the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.sessions.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rt.msgs.T(rt.locale, "signin.signed_out"))
			return nil
		},
	}
}

func newDoctorCmd(rt *runtime) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := health.Run(cmd.Context(), rt.checks,
				health.WithTimeout(timeout),
				health.WithLogger(rt.log),
			)
			if rt.jsonOut {
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
				return report.Err()
			}
			for _, name := range report.Names() {
				c := report.Checks[name]
				line := fmt.Sprintf("%-18s %s", name, c.Status)
				if c.Error != "" {
					line += "  " + c.Error
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return report.Err()
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "overall check timeout")
	return cmd
}
