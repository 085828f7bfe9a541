package e2e

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edvin/tradelink/internal/client"
)

// apiURL is the base URL for the marketplace API.
// Override with TRADELINK_API_URL env var.
var apiURL = "http://localhost:8080"

func TestMain(m *testing.M) {
	if os.Getenv("TRADELINK_E2E") == "" {
		fmt.Println("Skipping e2e tests (set TRADELINK_E2E=1 to run)")
		os.Exit(0)
	}
	if u := os.Getenv("TRADELINK_API_URL"); u != "" {
		apiURL = u
	}
	os.Exit(m.Run())
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// uniqueSuffix distinguishes accounts across test runs against the same
// database.
func uniqueSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// registerAndLogin creates a fresh account and returns an authenticated
// client plus the account's profile ID.
func registerAndLogin(t *testing.T, userType, companyName string) (*client.Client, string) {
	t.Helper()
	ctx := testContext(t)
	api := client.New(apiURL)

	suffix := uniqueSuffix()
	email := fmt.Sprintf("e2e-%s-%s@example.test", userType, suffix)
	phone := fmt.Sprintf("+9190%s", suffix[len(suffix)-10:])

	_, err := api.Register(ctx, client.RegisterInput{
		Email:       email,
		Phone:       phone,
		Password:    "e2e-password",
		UserType:    userType,
		CompanyName: companyName,
	})
	require.NoError(t, err, "register %s", userType)

	result, err := api.Login(ctx, email, "", "e2e-password")
	require.NoError(t, err, "login %s", email)
	api.SetToken(result.Token)

	profile, err := api.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, userType, profile.UserType)

	return api, profile.ID
}
