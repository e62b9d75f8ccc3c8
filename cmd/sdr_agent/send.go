package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shegge-stack/EmailGenerator/internal/config"
	"github.com/shegge-stack/EmailGenerator/internal/delivery"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a generated email through Postmark",
	Long: `Deliver an email through the Postmark API. Requires POSTMARK_API_KEY
and POSTMARK_FROM_EMAIL in the environment. When TRACKING_SECRET and
TRACKING_BASE_URL are also set, the HTML body gets an open pixel,
click-tracked links, and an unsubscribe footer.`,
	RunE: runSend,
}

var (
	sendTo         string
	sendToName     string
	sendCompany    string
	sendFrom       string
	sendSubject    string
	sendBody       string
	sendFile       string
	sendTrackOpens bool
	sendTrackLinks bool
)

func init() {
	sendCmd.Flags().StringVar(&sendTo, "to", "", "Recipient email address (required)")
	sendCmd.Flags().StringVar(&sendToName, "to-name", "", "Recipient display name (required)")
	sendCmd.Flags().StringVar(&sendCompany, "company", "", "Recipient company name (for delivery metadata)")
	sendCmd.Flags().StringVar(&sendFrom, "from", "", "Sender display name (required)")
	sendCmd.Flags().StringVar(&sendSubject, "subject", "", "Email subject")
	sendCmd.Flags().StringVar(&sendBody, "body", "", "Email body text")
	sendCmd.Flags().StringVar(&sendFile, "file", "", "Path to a file holding the email (Subject: line + body)")
	sendCmd.Flags().BoolVar(&sendTrackOpens, "track-opens", true, "Track opens via pixel")
	sendCmd.Flags().BoolVar(&sendTrackLinks, "track-links", true, "Rewrite links for click tracking")

	_ = sendCmd.MarkFlagRequired("to")
	_ = sendCmd.MarkFlagRequired("to-name")
	_ = sendCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(sendCmd)
}

func runSend(_ *cobra.Command, _ []string) error {
	subject := sendSubject
	body := sendBody

	if sendFile != "" {
		if body != "" {
			return fmt.Errorf("--file and --body are mutually exclusive")
		}
		data, err := os.ReadFile(sendFile)
		if err != nil {
			return fmt.Errorf("failed to read email file: %w", err)
		}
		fileSubject, fileBody := splitEmailFile(string(data))
		body = fileBody
		if subject == "" {
			subject = fileSubject
		}
	}
	if subject == "" || body == "" {
		return fmt.Errorf("subject and body are required (--subject/--body or --file)")
	}

	apiKey := os.Getenv("POSTMARK_API_KEY")
	fromEmail := os.Getenv("POSTMARK_FROM_EMAIL")
	if apiKey == "" || fromEmail == "" {
		return fmt.Errorf("POSTMARK_API_KEY and POSTMARK_FROM_EMAIL environment variables are required")
	}

	var opts []delivery.SenderOption
	if trackingBase := os.Getenv("TRACKING_BASE_URL"); trackingBase != "" {
		trackingCfg, err := config.NewTrackingConfig()
		if err != nil {
			return err
		}
		opts = append(opts, delivery.WithTracking(delivery.NewTokenService(trackingCfg), trackingBase))
	}

	sender, err := delivery.NewSender(apiKey, fromEmail, opts...)
	if err != nil {
		return err
	}

	result, err := sender.Send(context.Background(), delivery.SendRequest{
		ToEmail:     sendTo,
		ToName:      sendToName,
		SenderName:  sendFrom,
		Subject:     subject,
		TextBody:    body,
		CompanyName: sendCompany,
		TrackOpens:  sendTrackOpens,
		TrackLinks:  sendTrackLinks,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Sent to %s (message id: %s)\n", result.To, result.MessageID)
	return nil
}
