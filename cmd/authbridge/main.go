// Command authbridge signs in with Google, Facebook or Apple from the
// terminal and exchanges the provider token for an identity backend session.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:           "authbridge",
		Short:         "Social sign-in bridge for Google, Facebook and Apple",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&rt.configFile, "config", "", "YAML config file")
	root.PersistentFlags().StringSliceVar(&rt.envFiles, "env-file", []string{".env"}, ".env files to load (missing files are skipped)")
	root.PersistentFlags().StringVar(&rt.locale, "locale", "", "language for messages (default AUTHBRIDGE_LOCALE)")
	root.PersistentFlags().BoolVar(&rt.jsonOut, "json", false, "print results as JSON")
	root.PersistentFlags().StringVar(&rt.metricsFile, "metrics-file", "", "write prometheus metrics to this file on exit")

	root.AddCommand(
		newURLCmd(rt),
		newNonceCmd(rt),
		newExchangeCmd(rt),
		newSignInCmd(rt),
		newWhoamiCmd(rt),
		newSignOutCmd(rt),
		newDoctorCmd(rt),
	)
	for _, cmd := range root.Commands() {
		cmd.RunE = rt.wrap(cmd.RunE)
	}
	return root
}
