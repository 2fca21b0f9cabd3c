package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wahlandcase/attuned.relnotes/internal/ciout"
	"github.com/wahlandcase/attuned.relnotes/internal/markup"
	"github.com/wahlandcase/attuned.relnotes/internal/notify"
)

// SlackMessageOutput is the CI output key holding the formatted message
const SlackMessageOutput = "slack_message"

type formatOptions struct {
	input inputOptions
	post  bool
}

func newFormatCmd(global *globalOptions) *cobra.Command {
	opts := &formatOptions{}

	cmd := &cobra.Command{
		Use:   "format [TEXT]",
		Short: "Convert GitHub release notes into Slack markup",
		Example: "  relnotes format --file notes.md\n" +
			"  gh release view v1.2.0 --json body -q .body | relnotes format -f - --name v1.2.0 --post",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, global, opts)
		},
	}

	opts.input.addFlags(cmd.Flags())
	cmd.Flags().BoolVar(&opts.post, "post", false, "Post the message to the configured Slack webhook")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, global *globalOptions, opts *formatOptions) error {
	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}

	release, err := opts.input.readRelease(cmd, args)
	if err != nil {
		return err
	}

	message := markup.NewFormatter(cfg).Message(*release)
	fmt.Fprintln(cmd.OutOrStdout(), message)

	out, err := ciout.Open(opts.input.outputPath())
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.Set(SlackMessageOutput, message); err != nil {
		return fmt.Errorf("writing CI output: %w", err)
	}

	if !opts.post {
		return nil
	}

	notifier := notify.New(notify.Config{
		WebhookURL:  cfg.Slack.WebhookURL,
		UnfurlLinks: cfg.Slack.UnfurlLinks,
		UnfurlMedia: cfg.Slack.UnfurlMedia,
		Logger:      global.logger,
	})
	if !notifier.Enabled() {
		return errors.New("--post needs a Slack webhook: set SLACK_WEBHOOK_URL or slack.webhook_url")
	}
	return notifier.Post(cmd.Context(), message)
}
