package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Register a tenant against a running bridge",
	RunE:  runProvision,
}

var (
	provisionBridgeURL    string
	provisionClientID     string
	provisionClientSecret string
	provisionWebhookURL   string
	provisionCompanyID    string
)

func init() {
	provisionCmd.Flags().StringVar(&provisionBridgeURL, "bridge-url", "http://127.0.0.1:5050", "Base URL of the running bridge")
	provisionCmd.Flags().StringVar(&provisionClientID, "client-id", "", "Slack app client id")
	provisionCmd.Flags().StringVar(&provisionClientSecret, "client-secret", "", "Slack app client secret")
	provisionCmd.Flags().StringVar(&provisionWebhookURL, "webhook-url", "", "Destination webhook for normalized events")
	provisionCmd.Flags().StringVar(&provisionCompanyID, "company-id", "", "Upstream company reference id")
	provisionCmd.MarkFlagRequired("client-id")
	provisionCmd.MarkFlagRequired("client-secret")
	provisionCmd.MarkFlagRequired("webhook-url")
	provisionCmd.MarkFlagRequired("company-id")
}

func runProvision(cmd *cobra.Command, args []string) error {
	printHeader("Provision tenant")

	q := url.Values{
		"client_id":     {provisionClientID},
		"client_secret": {provisionClientSecret},
		"webhook_url":   {provisionWebhookURL},
		"company_id":    {provisionCompanyID},
	}
	target := strings.TrimRight(provisionBridgeURL, "/") + "/slack/generate_webhook?" + q.Encode()

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		OK   bool              `json:"ok"`
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !out.OK {
		return fmt.Errorf("provisioning rejected: %s", out.Data["error"])
	}

	fmt.Println(color.GreenString("Tenant registered."))
	fmt.Printf("  auth webhook:   %s\n", out.Data["auth_webhook"])
	fmt.Printf("  events webhook: %s\n", out.Data["events_webhook"])
	fmt.Println("Point the Slack app's OAuth redirect and Events API subscription at these paths.")
	return nil
}
