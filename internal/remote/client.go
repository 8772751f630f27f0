package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/johanforsgren/profilexport/internal/domain"
	"github.com/johanforsgren/profilexport/internal/logger"
)

const profilesPath = "/get_saved_db_config_with_password"

type Options struct {
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
	// Timeout of zero means no timeout.
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Client fetches saved connection profiles from the profile server.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", opts.BaseURL)
	}

	httpClient := &http.Client{
		Transport: NewLoggingTransport(opts.Transport),
		Timeout:   opts.Timeout,
	}

	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = opts.Timeout
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   base.String() + profilesPath,
	}, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchProfiles performs one GET of the full profile list. Every failure is
// reported as domain.ErrNetwork.
func (c *Client) FetchProfiles(ctx context.Context) (domain.ProfileList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.LogError("FETCH_PROFILES", c.endpoint, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
		logger.LogError("FETCH_PROFILES", c.endpoint, statusErr)
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, statusErr)
	}

	var profiles domain.ProfileList
	if err := json.NewDecoder(resp.Body).Decode(&profiles); err != nil {
		logger.LogError("DECODE_PROFILES", c.endpoint, err)
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrNetwork, err)
	}

	logger.Log("Fetched %d saved profiles from %s", len(profiles), c.endpoint)
	return profiles, nil
}
