package identitytoolkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/authbridge/pkg/credential"
	"github.com/dmitrymomot/authbridge/pkg/oauth"
)

// Client signs users in through the Identity Toolkit REST API.
type Client struct {
	http       *http.Client
	apiKey     string
	endpoint   string
	requestURI string
}

// New creates a Client. Returns ErrMissingAPIKey if cfg.APIKey is empty.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		http:       &http.Client{Timeout: 15 * time.Second},
		apiKey:     cfg.APIKey,
		endpoint:   DefaultEndpoint,
		requestURI: cfg.RequestURI,
	}
	if cfg.Endpoint != "" {
		c.endpoint = cfg.Endpoint
	}
	if c.requestURI == "" {
		c.requestURI = "http://localhost"
	}
	for _, opt := range opts {
		opt(c)
	}
	c.endpoint = strings.TrimRight(c.endpoint, "/")
	return c, nil
}

type signInRequest struct {
	PostBody            string `json:"postBody"`
	RequestURI          string `json:"requestUri"`
	ReturnSecureToken   bool   `json:"returnSecureToken"`
	ReturnIdpCredential bool   `json:"returnIdpCredential"`
}

type signInResponse struct {
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoUrl"`
	ProviderID    string `json:"providerId"`
	IDToken       string `json:"idToken"`
	RefreshToken  string `json:"refreshToken"`
	ExpiresIn     string `json:"expiresIn"`
	ErrorMessage  string `json:"errorMessage"`
	IsNewUser     bool   `json:"isNewUser"`
	NeedConfirm   bool   `json:"needConfirmation"`
	EmailVerified bool   `json:"emailVerified"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SignInWithCredential implements credential.Backend.
func (c *Client) SignInWithCredential(ctx context.Context, cred credential.Credential) (*credential.Identity, error) {
	postBody, err := PostBody(cred)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(signInRequest{
		PostBody:            postBody,
		RequestURI:          c.requestURI,
		ReturnSecureToken:   true,
		ReturnIdpCredential: true,
	})
	if err != nil {
		return nil, fmt.Errorf("identitytoolkit: encode request: %w", err)
	}

	u := c.endpoint + "/accounts:signInWithIdp?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("identitytoolkit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Join(credential.ErrNetwork, fmt.Errorf("sign in with idp: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("decode sign-in response: %w", err))
	}

	// The API reports some IdP failures inside a 200 response.
	if out.ErrorMessage != "" {
		return nil, mapMessage(out.ErrorMessage)
	}
	if out.NeedConfirm {
		return nil, fmt.Errorf("%w: account exists with a different sign-in method", credential.ErrInvalidToken)
	}

	return &credential.Identity{
		UserID:       out.LocalID,
		Email:        out.Email,
		DisplayName:  out.DisplayName,
		PhotoURL:     out.PhotoURL,
		Provider:     out.ProviderID,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresAt:    expiresAt(out.ExpiresIn),
		IsNewUser:    out.IsNewUser,
	}, nil
}

// PostBody encodes a credential as the signInWithIdp postBody form.
func PostBody(cred credential.Credential) (string, error) {
	if err := cred.Validate(); err != nil {
		return "", err
	}

	v := url.Values{}
	v.Set("providerId", cred.Provider.BackendID())
	switch cred.Provider {
	case oauth.Google:
		v.Set("id_token", cred.IDToken)
	case oauth.Facebook:
		v.Set("access_token", cred.AccessToken)
	case oauth.Apple:
		v.Set("id_token", cred.IDToken)
		v.Set("nonce", cred.RawNonce)
	}
	return v.Encode(), nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var er errorResponse
	if err := json.Unmarshal(data, &er); err == nil && er.Error.Message != "" {
		mapped := mapMessage(er.Error.Message)
		if !errors.Is(mapped, ErrRequestFailed) || resp.StatusCode < 500 {
			return mapped
		}
	}

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return errors.Join(credential.ErrNetwork, fmt.Errorf("identity backend status=%d", resp.StatusCode))
	}
	return errors.Join(ErrRequestFailed, fmt.Errorf("status=%d body=%s", resp.StatusCode, data))
}

// mapMessage converts a backend message such as
// "INVALID_IDP_RESPONSE : The supplied auth credential is malformed" into a sentinel.
func mapMessage(msg string) error {
	code := msg
	if i := strings.IndexAny(msg, " :"); i > 0 {
		code = msg[:i]
	}

	switch code {
	case "INVALID_IDP_RESPONSE", "INVALID_ID_TOKEN", "TOKEN_EXPIRED", "USER_DISABLED",
		"INVALID_CREDENTIAL_OR_PROVIDER_ID", "FEDERATED_USER_ID_ALREADY_LINKED", "INVALID_PROVIDER_ID":
		return fmt.Errorf("%w: %s", credential.ErrInvalidToken, msg)
	case "MISSING_OR_INVALID_NONCE":
		return fmt.Errorf("%w: %s", credential.ErrNonceMismatch, msg)
	case "OPERATION_NOT_ALLOWED":
		return fmt.Errorf("%w: %s", credential.ErrUnavailable, msg)
	}
	return errors.Join(ErrRequestFailed, errors.New(msg))
}

func expiresAt(expiresIn string) time.Time {
	secs, err := strconv.Atoi(expiresIn)
	if err != nil || secs <= 0 {
		return time.Time{}
	}
	return time.Now().Add(time.Duration(secs) * time.Second)
}

var _ credential.Backend = (*Client)(nil)
