// Package sso talks to AWS IAM Identity Center: reading the AWS CLI's token
// cache, enumerating accounts and roles, and handing off interactive login
// to the AWS CLI.
package sso

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"

	errUtils "github.com/kolja-aws/kolja/errors"
	"github.com/kolja-aws/kolja/pkg/filesystem"
	log "github.com/kolja-aws/kolja/pkg/logger"
)

// DefaultCacheDir is where the AWS CLI caches SSO access tokens.
const DefaultCacheDir = "~/.aws/sso/cache"

// Token is one cached SSO access token.
type Token struct {
	AccessToken string
	Region      string
	ExpiresAt   time.Time
}

// cacheEntry mirrors the JSON the AWS CLI writes to its token cache. Client
// registration files in the same directory share the shape but lack a
// region, which filters them out.
type cacheEntry struct {
	AccessToken string `json:"accessToken"`
	Region      string `json:"region"`
	ExpiresAt   string `json:"expiresAt"`
	StartURL    string `json:"startUrl"`
}

// TokenCache reads access tokens from the AWS CLI's SSO cache directory.
type TokenCache struct {
	dir string
	fs  filesystem.FileSystem
	now func() time.Time
}

// TokenCacheOption adjusts a TokenCache.
type TokenCacheOption func(*TokenCache)

// WithCacheDir overrides the cache directory, for tests.
func WithCacheDir(dir string) TokenCacheOption {
	return func(c *TokenCache) {
		c.dir = dir
	}
}

// WithFileSystem injects a FileSystem, for tests.
func WithFileSystem(fs filesystem.FileSystem) TokenCacheOption {
	return func(c *TokenCache) {
		c.fs = fs
	}
}

// WithClock injects the time source used for expiry checks.
func WithClock(now func() time.Time) TokenCacheOption {
	return func(c *TokenCache) {
		c.now = now
	}
}

// NewTokenCache creates a token cache reader over the AWS CLI's cache
// directory.
func NewTokenCache(opts ...TokenCacheOption) (*TokenCache, error) {
	dir, err := homedir.Expand(DefaultCacheDir)
	if err != nil {
		return nil, err
	}

	c := &TokenCache{
		dir: dir,
		fs:  filesystem.NewOSFileSystem(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// LatestByRegion returns the newest unexpired token per region. A missing
// cache directory means nobody has logged in yet and yields an empty map.
// Unreadable or unparseable cache files are skipped, the AWS CLI mixes
// client-registration JSON into the same directory.
func (c *TokenCache) LatestByRegion() (map[string]Token, error) {
	entries, err := c.fs.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("SSO token cache directory does not exist", "dir", c.dir)
			return map[string]Token{}, nil
		}
		return nil, err
	}

	latest := map[string]Token{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		raw, err := c.fs.ReadFile(filepath.Join(c.dir, entry.Name()))
		if err != nil {
			log.Trace("Cannot read token cache file", "file", entry.Name(), "error", err)
			continue
		}

		var cached cacheEntry
		if err := json.Unmarshal(raw, &cached); err != nil {
			log.Trace("Skipping unparseable token cache file", "file", entry.Name(), "error", err)
			continue
		}
		if cached.AccessToken == "" || cached.Region == "" || cached.ExpiresAt == "" {
			continue
		}

		expires, err := time.Parse(time.RFC3339, cached.ExpiresAt)
		if err != nil {
			log.Trace("Skipping token with unparseable expiry", "file", entry.Name(), "error", err)
			continue
		}
		if !expires.After(c.now()) {
			log.Debug("Skipping expired SSO token", "region", cached.Region, "expired", expires)
			continue
		}

		if current, ok := latest[cached.Region]; !ok || expires.After(current.ExpiresAt) {
			latest[cached.Region] = Token{
				AccessToken: cached.AccessToken,
				Region:      cached.Region,
				ExpiresAt:   expires,
			}
		}
	}

	return latest, nil
}

// TokenForRegion returns the newest valid token for region.
func (c *TokenCache) TokenForRegion(region string) (Token, error) {
	tokens, err := c.LatestByRegion()
	if err != nil {
		return Token{}, err
	}

	token, ok := tokens[region]
	if !ok {
		return Token{}, errUtils.Build(errUtils.ErrNoAccessToken).
			WithContext("region", region).
			WithHintf("Run `kolja aws login` to authenticate for region %s", region).
			Err()
	}
	return token, nil
}
