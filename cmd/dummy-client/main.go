// Command dummy-client posts a sample UE_LOC_THROUGHPUT analytics
// subscription to the API gateway, for manual smoke-testing.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/chris-alexander-pop/system-design-library/pkg/client/rest"
)

type subscriptionRequest struct {
	Event           string   `json:"event"`
	SUPIs           []string `json:"supis"`
	NotificationURI string   `json:"notification_uri"`
}

func main() {
	gatewayURL := flag.String("gateway-url", "http://localhost:8080/nnwdaf-eventsubscription/v1/subscriptions", "API gateway subscription endpoint")
	supi := flag.String("supi", "imsi-001", "SUPI to subscribe for")
	notificationURI := flag.String("notification-uri", "http://localhost:8181/analytics-notification", "callback URL for delivered notifications")
	flag.Parse()

	client := rest.New(rest.Config{Timeout: 10 * time.Second, Retries: 2})

	body, err := json.Marshal(subscriptionRequest{
		Event:           "UE_LOC_THROUGHPUT",
		SUPIs:           []string{*supi},
		NotificationURI: *notificationURI,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to marshal subscription request:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *gatewayURL, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build request:", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "subscription request failed:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	fmt.Printf("subscription request: %s\n", resp.Status)
}
