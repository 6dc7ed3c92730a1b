package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"madiskarte.ai/rpc"
)

func newTrendsCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "trends <location>",
		Short: "Ask for local market trends and wholesale sources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()

			resp, err := app.grpc.GetMarketTrends(ctx, &rpc.MarketTrendsRequest{Location: strings.Join(args, " ")})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Text)
			if len(resp.Sources) > 0 {
				fmt.Fprintln(out, "\nSources:")
				for _, src := range resp.Sources {
					fmt.Fprintf(out, "  - %s (%s)\n", src.Title, src.URI)
				}
			}
			printCompleteness(out, resp.Completeness)
			return nil
		},
	}
}

func newProfitCmd(app *application) *cobra.Command {
	var req rpc.ProfitAdviceRequest

	cmd := &cobra.Command{
		Use:   "profit",
		Short: "Get pricing and profit advice for a small business",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()

			resp, err := app.grpc.CalculateProfitAdvice(ctx, &req)
			if err != nil {
				return err
			}
			printText(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Business, "business", "", "what you sell")
	cmd.Flags().StringVar(&req.Capital, "capital", "", "starting capital in PHP")
	cmd.Flags().StringVar(&req.Expenses, "expenses", "", "monthly expenses in PHP")
	_ = cmd.MarkFlagRequired("business")
	return cmd
}

func newRegisterCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "register <business type>",
		Short: "Show the DTI, barangay and BIR registration steps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()

			resp, err := app.grpc.GetBusinessRegistrationGuide(ctx, &rpc.RegistrationGuideRequest{
				BusinessType: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			printText(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}

func newMetadataCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata",
		Short: "Generate Play Store listing metadata for the app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()

			resp, err := app.grpc.GeneratePlayStoreMetadata(ctx, &rpc.PlayStoreMetadataRequest{})
			if err != nil {
				return err
			}
			printText(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}

func newChecklistCmd(app *application) *cobra.Command {
	var done []string

	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Show Play Store publishing progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.requestContext(cmd.Context())
			defer cancel()

			states := make(map[string]bool, len(done))
			for _, id := range done {
				states[id] = true
			}

			resp, err := app.grpc.GetPublishingChecklist(ctx, &rpc.GetPublishingChecklistRequest{States: states})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Progress: %d/%d (%d%%)\n\n", resp.Completed, resp.Total, resp.Percent)
			for _, item := range resp.Items {
				mark := " "
				if item.Done {
					mark = "x"
				}
				fmt.Fprintf(out, "[%s] %-14s %s\n", mark, item.ID, item.Label)
			}
			fmt.Fprintln(out, "\nUpload to GitHub:")
			for _, c := range resp.GitCommands {
				fmt.Fprintf(out, "  %-50s # %s\n", c.Command, c.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&done, "done", nil, "checklist item ids already completed")
	return cmd
}

func newChatCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the business mentor interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runChat(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func (app *application) runChat(ctx context.Context, in io.Reader, out io.Writer) error {
	start, err := app.grpc.StartMentorChat(ctx, &rpc.StartMentorChatRequest{})
	if err != nil {
		return err
	}
	app.logger.Info("mentor chat started", "session_id", start.SessionID)

	fmt.Fprintln(out, "Madiskarte-E mentor - type your message and press Enter")
	fmt.Fprintf(out, "Commands: '%s' to exit, Ctrl+C to quit\n", quitCommand)
	fmt.Fprint(out, "> ")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())

		if input == "" {
			fmt.Fprint(out, "> ")
			continue
		}
		if input == quitCommand {
			break
		}

		if err := app.sendMessage(ctx, out, start.SessionID, input); err != nil {
			app.logger.Error("failed to send message", "error", err)
		}
		fmt.Fprint(out, "> ")
	}

	app.endChat(ctx, out, start.SessionID)

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// endChat releases the server-side session; an expired one is not an error
func (app *application) endChat(ctx context.Context, out io.Writer, sessionID string) {
	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	resp, err := app.grpc.EndMentorChat(ctx, &rpc.EndMentorChatRequest{SessionID: sessionID})
	if err != nil {
		app.logger.Warn("failed to end mentor chat", "session_id", sessionID, "error", err)
		return
	}
	fmt.Fprintf(out, "Chat ended after %d messages.\n", resp.MessageCount)
}

func (app *application) sendMessage(ctx context.Context, out io.Writer, sessionID, message string) error {
	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	resp, err := app.grpc.SendMentorMessage(ctx, &rpc.SendMentorMessageRequest{
		SessionID: sessionID,
		Message:   message,
	})
	if err != nil {
		return err
	}

	payloadOut, payloadIn := app.metrics.getPayloadTotals()
	wireOut, wireIn := app.metrics.getWireTotals()
	fmt.Fprintf(out, "[Total: %s sent, %s received | wire %s / %s]\n",
		formatBytes(payloadOut), formatBytes(payloadIn), formatBytes(wireOut), formatBytes(wireIn))
	fmt.Fprintf(out, "Mentor: %s\n", resp.Reply)
	return nil
}

func (app *application) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if app.config.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, app.config.timeout)
}

func printText(out io.Writer, resp *rpc.TextResponse) {
	fmt.Fprintln(out, resp.Text)
	printCompleteness(out, resp.Completeness)
}

func printCompleteness(out io.Writer, completeness string) {
	if completeness != rpc.CompletenessComplete {
		fmt.Fprintf(out, "\n(%s result)\n", completeness)
	}
}
