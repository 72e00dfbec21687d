package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/golang-jwt/jwt/v5"
)

// The two delegated scopes this tool requests. Both are read-only.
var graphScopes = []string{"Group.Read.All", "User.Read.All"}

// newCredential builds an interactive credential for the configured auth method.
// Both methods block on human sign-in; there is no headless path.
func newCredential(config Config) (azcore.TokenCredential, error) {
	switch config.AuthMethod {
	case "interactive":
		cred, err := azidentity.NewInteractiveBrowserCredential(&azidentity.InteractiveBrowserCredentialOptions{
			TenantID: config.TenantID,
		})
		if err != nil {
			return nil, fmt.Errorf("authentication failed: %w", err)
		}
		return cred, nil
	case "devicecode":
		cred, err := azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
			TenantID: config.TenantID,
		})
		if err != nil {
			return nil, fmt.Errorf("authentication failed: %w", err)
		}
		return cred, nil
	default:
		return nil, fmt.Errorf("invalid auth method: %s", config.AuthMethod)
	}
}

// tenantIDFromToken acquires a token and extracts the tenant ID claim from it.
// Used by the healthcheck to confirm connectivity and report which tenant answered.
func tenantIDFromToken(ctx context.Context, cred azcore.TokenCredential) (string, error) {
	token, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{"https://graph.microsoft.com/.default"}})
	if err != nil {
		return "", fmt.Errorf("authentication failed: %w", err)
	}
	parser := new(jwt.Parser)
	claims := jwt.MapClaims{}
	// Note: We use ParseUnverified because we don't need to validate the token's signature.
	// We are only extracting the tenant ID claim ("tid") from a token that we have just
	// received directly from Entra ID, which we trust as the source.
	// This is NOT safe for authenticating incoming requests.
	_, _, err = parser.ParseUnverified(token.Token, claims)
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	tid, ok := claims["tid"].(string)
	if !ok {
		return "", errors.New("could not find 'tid' claim in token")
	}
	return tid, nil
}
