// Package http provides HTTP-based implementations of vanity.Resolver for
// the Steam profile and group namespaces.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/vanity"
)

// DefaultTimeout is the default timeout for a single lookup.
const DefaultTimeout = 10 * time.Second

const (
	// DefaultProfileBaseURL is the Steam Web API endpoint for vanity URLs.
	DefaultProfileBaseURL = "https://api.steampowered.com/ISteamUser/ResolveVanityURL/v1/"

	// DefaultGroupBaseURL is the community site prefix for group pages.
	DefaultGroupBaseURL = "https://steamcommunity.com/groups/"
)

// maxBody bounds how much of a response is read.
const maxBody = 1 << 20

// detailLength bounds the response excerpt attached to unknown verdicts.
const detailLength = 120

var (
	_ vanity.Resolver = (*ProfileResolver)(nil)
	_ vanity.Resolver = (*GroupResolver)(nil)
)

type options struct {
	client  *http.Client
	timeout time.Duration
	baseURL string
}

// Option configures a resolver.
type Option func(*options)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithBaseURL overrides the endpoint the resolver talks to.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

// WithHTTPClient sets the HTTP client. Its timeout is left as is.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

func newOptions(baseURL string, opts []Option) options {
	o := options{
		timeout: DefaultTimeout,
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.client == nil {
		o.client = &http.Client{Timeout: o.timeout}
	}
	return o
}

// NewResolver returns the resolver for mode. The credential is only used in
// profile mode.
func NewResolver(mode vanity.Mode, credential string, opts ...Option) (vanity.Resolver, error) {
	switch mode {
	case vanity.ModeProfile:
		return NewProfileResolver(credential, opts...), nil
	case vanity.ModeGroup:
		return NewGroupResolver(opts...), nil
	}
	return nil, vanity.Errorf(vanity.EINVALID, "unknown mode %q", mode)
}

// ProfileResolver checks profile identifiers against the ResolveVanityURL API.
type ProfileResolver struct {
	client     *http.Client
	baseURL    string
	credential string
}

// NewProfileResolver creates a ProfileResolver using the given API key.
func NewProfileResolver(credential string, opts ...Option) *ProfileResolver {
	o := newOptions(DefaultProfileBaseURL, opts)
	return &ProfileResolver{
		client:     o.client,
		baseURL:    o.baseURL,
		credential: credential,
	}
}

type profileResponse struct {
	Response struct {
		Success *int `json:"success"`
	} `json:"response"`
}

// Resolve looks up id and classifies the API's success code.
func (r *ProfileResolver) Resolve(ctx context.Context, id string) (vanity.Resolution, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return vanity.Resolution{}, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("key", r.credential)
	q.Set("vanityurl", id)
	u.RawQuery = q.Encode()

	resp, err := get(ctx, r.client, u.String())
	if err != nil {
		return vanity.Resolution{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return vanity.Resolution{}, err
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		return vanity.Resolution{}, vanity.Errorf(vanity.EMALFORMED,
			"unexpected content type %q", resp.Header.Get("Content-Type"))
	}

	var body profileResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&body); err != nil {
		return vanity.Resolution{}, vanity.Errorf(vanity.EMALFORMED, "undecodable response: %v", err)
	}
	if body.Response.Success == nil {
		return vanity.Resolution{Detail: "missing success code"}, nil
	}

	code := *body.Response.Success
	return vanity.Resolution{
		Verdict: vanity.ClassifyProfile(code),
		Detail:  fmt.Sprintf("success=%d", code),
	}, nil
}

// GroupResolver checks group identifiers against the community member list.
type GroupResolver struct {
	client  *http.Client
	baseURL string
}

// NewGroupResolver creates a GroupResolver.
func NewGroupResolver(opts ...Option) *GroupResolver {
	o := newOptions(DefaultGroupBaseURL, opts)
	return &GroupResolver{
		client:  o.client,
		baseURL: strings.TrimSuffix(o.baseURL, "/") + "/",
	}
}

// Resolve fetches the member list of group id and searches it for the
// known markers.
func (r *GroupResolver) Resolve(ctx context.Context, id string) (vanity.Resolution, error) {
	target := r.baseURL + url.PathEscape(id) + "/memberslistxml?xml=1"

	resp, err := get(ctx, r.client, target)
	if err != nil {
		return vanity.Resolution{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return vanity.Resolution{}, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return vanity.Resolution{}, vanity.Errorf(vanity.EUNAVAILABLE, "read response: %v", err)
	}

	text := string(body)
	verdict := vanity.ClassifyGroup(text)
	res := vanity.Resolution{Verdict: verdict}
	if verdict == vanity.VerdictUnknown {
		res.Detail = excerpt(text)
	}
	return res, nil
}

func get(ctx context.Context, client *http.Client, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, vanity.Errorf(vanity.EUNAVAILABLE, "request failed: %v", err)
	}
	return resp, nil
}

// checkStatus maps throttling and server failures to coded errors. Other
// statuses are left to the body classification.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return vanity.Errorf(vanity.ETHROTTLED, "HTTP %d", resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return vanity.Errorf(vanity.EUNAVAILABLE, "HTTP %d", resp.StatusCode)
	}
	return nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > detailLength {
		return s[:detailLength] + "..."
	}
	return s
}
