// Package resolver looks up astronomical object names with the SIMBAD
// script interface.
package resolver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cloudeng.io/net/http/httperror"
	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"

	"github.com/oxygene76/tessobs/internal/types"
)

// Resolver turns a target name into sky coordinates
type Resolver interface {
	Resolve(ctx context.Context, name string) (*types.Resolution, error)
}

// Client queries SIMBAD's sim-script endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger that receives resolver warnings
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a SIMBAD client for endpoint
func NewClient(endpoint string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Script returns the sim-script program used to resolve name. Each answer
// line is "main id|ra|dec" with sexagesimal ICRS coordinates.
func Script(name string) string {
	return strings.Join([]string{
		"output console=off script=off",
		`format object "%IDLIST(1)|%COO(A;ICRS)|%COO(D;ICRS)"`,
		"query id " + name,
	}, "\n")
}

// Resolve looks name up. An unknown name yields ErrTargetNotFound.
func (c *Client) Resolve(ctx context.Context, name string) (*types.Resolution, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errorsmod.Wrap(types.ErrTargetNotFound, "empty target name")
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrResolverUnavailable, "bad endpoint %q: %v", c.endpoint, err)
	}
	q := u.Query()
	q.Set("script", Script(name))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrResolverUnavailable, "failed to build request: %v", err)
	}

	c.logger.Debug().Str("name", name).Str("endpoint", c.endpoint).Msg("querying SIMBAD")
	resp, err := c.httpClient.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err := httperror.CheckResponse(err, resp); err != nil {
		return nil, errorsmod.Wrapf(types.ErrResolverUnavailable, "SIMBAD query failed: %v", err)
	}

	res, err := c.parse(resp.Body)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "resolving %q", name)
	}
	return res, nil
}

// parse reads a sim-script answer. Output is either bare data lines or
// sections introduced by "::name::::" banners; an ::error:: section means
// nothing matched.
func (c *Client) parse(r io.Reader) (*types.Resolution, error) {
	var (
		section  string
		failed   bool
		result   *types.Resolution
		parseErr error
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "::") {
			section = strings.Trim(line, ":")
			if section == "error" {
				failed = true
			}
			continue
		}
		switch section {
		case "error":
			c.logger.Warn().Str("simbad", line).Msg("resolver reported an error")
			continue
		case "", "data":
		default:
			continue
		}
		if result != nil {
			c.logger.Warn().Str("simbad", line).Msg("ignoring additional match")
			continue
		}
		result, parseErr = parseLine(line)
		if parseErr != nil {
			return nil, parseErr
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errorsmod.Wrapf(types.ErrResolverUnavailable, "reading response: %v", err)
	}
	if failed || result == nil {
		return nil, types.ErrTargetNotFound
	}
	return result, nil
}

func parseLine(line string) (*types.Resolution, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 3 {
		return nil, errorsmod.Wrapf(types.ErrResolverUnavailable, "unexpected answer %q", line)
	}
	res := &types.Resolution{
		MainID: strings.TrimSpace(parts[0]),
		RA:     strings.TrimSpace(parts[1]),
		Dec:    strings.TrimSpace(parts[2]),
	}
	// objects without astrometry come back with blank coordinates
	if res.RA == "" || res.Dec == "" {
		return nil, errorsmod.Wrap(types.ErrTargetNotFound, fmt.Sprintf("%s has no coordinates", res.MainID))
	}
	return res, nil
}
