// scripts/o365-auth/main.go
//
// Run this ONCE locally to authorize calendar access for the oauth auth mode
// and generate token.json.
//
// Usage:
//   go run scripts/o365-auth/main.go [token-path]
//
// Reads O365_TENANT_ID, O365_CLIENT_ID, O365_CLIENT_SECRET and
// O365_REDIRECT_URL from the environment (or .env). Open the printed URL,
// sign in with the Microsoft account, paste the "code" query parameter from
// the redirect and token.json will be saved.

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"o365-calendar/pkg/outlook"
)

const defaultRedirectURL = "http://localhost:8080/oauth/callback"

func main() {
	_ = godotenv.Load()

	tokenPath := "token.json"
	if len(os.Args) > 1 {
		tokenPath = os.Args[1]
	}

	clientID := os.Getenv("O365_CLIENT_ID")
	if clientID == "" {
		log.Fatal("O365_CLIENT_ID is required")
	}
	redirectURL := os.Getenv("O365_REDIRECT_URL")
	if redirectURL == "" {
		redirectURL = defaultRedirectURL
	}

	config := outlook.OAuthConfig(
		os.Getenv("O365_TENANT_ID"),
		clientID,
		os.Getenv("O365_CLIENT_SECRET"),
		redirectURL,
	)

	// Generate the auth URL
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Println("=================================================================")
	fmt.Println("STEP 1: Open this URL in a browser and sign in:")
	fmt.Println()
	fmt.Println(authURL)
	fmt.Println()
	fmt.Println("=================================================================")
	fmt.Print("STEP 2: Paste the authorization code from the redirect URL and press Enter: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		log.Fatalf("Failed to read authorization code: %v", err)
	}

	ctx := context.Background()
	tok, err := config.Exchange(ctx, code)
	if err != nil {
		log.Fatalf("Failed to exchange authorization code: %v", err)
	}

	if err := outlook.SaveToken(tokenPath, tok); err != nil {
		log.Fatalf("Failed to write %s: %v", tokenPath, err)
	}

	fmt.Println()
	fmt.Printf("Token saved to: %s\n", tokenPath)
	fmt.Println("Set outlook.auth_mode to oauth and restart the service.")
}
