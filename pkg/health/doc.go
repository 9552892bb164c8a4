// Package health runs dependency checks concurrently and aggregates them
// into a Report.
//
//	report := health.Run(ctx, health.Checks{
//		"redis":  redis.Healthcheck(client),
//		"config": func(context.Context) error { return cfg.Validate() },
//	}, health.WithTimeout(3*time.Second))
//	if err := report.Err(); err != nil {
//		return err
//	}
//
// The authbridge CLI uses it for the doctor command.
package health
