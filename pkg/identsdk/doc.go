/*
Package identsdk provides the wire types and a client SDK for the identity
service.

The request and response types in this package are shared between the server
handlers and external consumers, so the JSON shapes stay in one place. Request
types carry their own validation rules and satisfy the service layer's
Validatable contract.

Create an SDKClient to talk to a running service:

	client := identsdk.NewSDKClient("https://identity.example.com")

	login, err := client.Login(ctx, identsdk.LoginRequest{
		Email:    "user@example.com",
		Password: "secret",
	})
	if err != nil {
		// *identsdk.APIError for service-reported failures
	}

	refreshed, err := client.RefreshTokens(ctx, identsdk.RefreshTokenRequest{
		AccessToken:  login.SecurityToken,
		RefreshToken: login.RefreshToken,
	})

Every error response from the service decodes into an *APIError carrying the
HTTP status, a stable error message and an optional detail string.
*/
package identsdk
