// Package identitytoolkit implements credential.Backend on top of the
// Firebase Identity Toolkit REST API (accounts:signInWithIdp).
//
// Provider tokens are posted as the postBody form expected by the API:
//
//	id_token=<google id token>&providerId=google.com
//	access_token=<facebook access token>&providerId=facebook.com
//	id_token=<apple identity token>&providerId=apple.com&nonce=<raw nonce>
//
// Backend error messages are mapped to the credential sentinels so that
// credential.Classify can derive an ErrorKind:
//
//   - INVALID_IDP_RESPONSE, INVALID_ID_TOKEN, TOKEN_EXPIRED, USER_DISABLED,
//     INVALID_CREDENTIAL_OR_PROVIDER_ID, FEDERATED_USER_ID_ALREADY_LINKED: credential.ErrInvalidToken
//   - MISSING_OR_INVALID_NONCE: credential.ErrNonceMismatch
//   - OPERATION_NOT_ALLOWED: credential.ErrUnavailable
//   - transport failures and 5xx: credential.ErrNetwork
//
// # Usage
//
//	client, err := identitytoolkit.New(identitytoolkit.Config{
//		APIKey: os.Getenv("FIREBASE_API_KEY"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	ex := credential.NewExchanger(client)
//
// Use WithHTTPClient or WithEndpoint to point the client at a test server.
package identitytoolkit
