package types

import (
	"errors"
	"net/url"
	"strings"
)

// Config holds the connection and cache parameters for a schoolctl client.
type Config struct {
	// APIRoot is the base URL of the school management REST API.
	APIRoot string `json:"api_root" yaml:"api_root" mapstructure:"api_root"`

	// Token is the bearer token attached to every request.
	Token string `json:"token" yaml:"token" mapstructure:"token"`

	// CacheDir is the directory holding the query cache database.
	// Empty disables the persistent cache; an in-memory cache is used instead.
	CacheDir string `json:"cache_dir" yaml:"cache_dir" mapstructure:"cache_dir"`

	// AcademicYearID is the default academic year applied to report exports
	// when no explicit year is given.
	AcademicYearID string `json:"academic_year" yaml:"academic_year" mapstructure:"academic_year"`
}

// Config validation errors.
var (
	ErrAPIRootEmpty   = errors.New("api_root must not be empty")
	ErrAPIRootInvalid = errors.New("api_root is not a valid http(s) URL")
	ErrTokenEmpty     = errors.New("token must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.APIRoot == "" {
		return ErrAPIRootEmpty
	}
	u, err := url.Parse(c.APIRoot)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrAPIRootInvalid
	}
	if strings.TrimSpace(c.Token) == "" {
		return ErrTokenEmpty
	}
	return nil
}
