package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wahlandcase/attuned.relnotes/internal/ciout"
	"github.com/wahlandcase/attuned.relnotes/internal/notify"
	"github.com/wahlandcase/attuned.relnotes/internal/reconcile"
	"github.com/wahlandcase/attuned.relnotes/internal/tickets"
	"github.com/wahlandcase/attuned.relnotes/internal/tracker"
	"github.com/wahlandcase/attuned.relnotes/internal/ui"
)

type checkOptions struct {
	input  inputOptions
	notify bool
}

func newCheckCmd(global *globalOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [TEXT]",
		Short: "Check release-note tickets against the tracker fix version",
		Long: "check finds the fix version URL and the ticket IDs in the release notes,\n" +
			"fetches the fix version's tickets from the tracker and exits non-zero\n" +
			"when the two sets differ.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, global, opts)
		},
	}

	opts.input.addFlags(cmd.Flags())
	cmd.Flags().BoolVar(&opts.notify, "notify", false, "Post a Slack summary when the tickets differ")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, global *globalOptions, opts *checkOptions) error {
	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}

	release, err := opts.input.readRelease(cmd, args)
	if err != nil {
		return err
	}

	email, token, err := cfg.Credentials()
	if err != nil {
		return err
	}
	client, err := tracker.NewClient(tracker.Config{
		BaseURL:    cfg.Tracker.BaseURL,
		Email:      email,
		Token:      token,
		SearchPath: cfg.Tracker.SearchPath,
		MaxResults: cfg.Tracker.MaxResults,
		Logger:     global.logger,
	})
	if err != nil {
		return err
	}

	gate := &reconcile.Gate{
		Extractor: tickets.NewExtractor(cfg.TicketRegex()),
		Tracker:   client,
		Project:   cfg.Tracker.Project,
		Logger:    global.logger,
	}

	report, runErr := gate.Run(cmd.Context(), release.Body)
	if report == nil {
		if tracker.IsUnauthorized(runErr) {
			return fmt.Errorf("%w (check %s and %s)", runErr, cfg.Tracker.EmailEnv, cfg.Tracker.TokenEnv)
		}
		return runErr
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderReport(release.Name, report))

	out, err := ciout.Open(opts.input.outputPath())
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.WriteComparison(report.FixVersion, report.Comparison, report.OnlyInRelease(), report.OnlyInTracker()); err != nil {
		return fmt.Errorf("writing CI output: %w", err)
	}

	if opts.notify && errors.Is(runErr, reconcile.ErrTicketMismatch) {
		notifier := notify.New(notify.Config{
			WebhookURL:  cfg.Slack.WebhookURL,
			UnfurlLinks: cfg.Slack.UnfurlLinks,
			UnfurlMedia: cfg.Slack.UnfurlMedia,
			Logger:      global.logger,
		})
		message := notify.MismatchMessage(release.Name, report.FixVersion, report.OnlyInRelease(), report.OnlyInTracker())
		notifier.PostBestEffort(cmd.Context(), message)
	}

	return runErr
}
