//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"wedmarket/pkg/client"
)

const DefaultHealthCheckTimeout = 30 * time.Second

// TestEnv points the integration suites at a running availability service.
type TestEnv struct {
	ServerURL  string
	ServerPort string
}

func NewTestEnv() *TestEnv {
	serverPort := getEnv("TEST_SERVER_PORT", "8080")
	serverURL := getEnv("TEST_SERVER_URL", fmt.Sprintf("http://localhost:%s", serverPort))

	return &TestEnv{
		ServerURL:  serverURL,
		ServerPort: serverPort,
	}
}

// Setup waits for the service to report healthy and returns a client for it.
func (e *TestEnv) Setup(t *testing.T) *client.HttpClient {
	t.Helper()

	httpClient := client.NewHttpClient(e.ServerURL)
	ctx, cancel := context.WithTimeout(context.Background(), DefaultHealthCheckTimeout)
	defer cancel()
	if err := httpClient.WaitForHealthy(ctx, DefaultHealthCheckTimeout); err != nil {
		t.Skipf("availability service not reachable at %s: %v", e.ServerURL, err)
	}
	return httpClient
}

// VendorID returns a vendor ID unique to this test run so suites never share records.
func VendorID(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("it-vendor-%d", time.Now().UnixNano())
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
