package config

import "time"

// Platform endpoints
const (
	DefaultAPIURL       = "https://b.submeta.io/api"
	DefaultSiteOrigin   = "https://submeta.io"
	DefaultSiteReferer  = "https://submeta.io/"
	DefaultStreamPrefix = "https://customer-3j2pofw9vdbl9sfy.cloudflarestream.com/"
	DefaultManifestPath = "/manifest/video.mpd"
)

// Browser-like User-Agent sent with every request
const (
	DefaultUserAgent = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:88.0) Gecko/20100101 Firefox/88.0"
)

// HTTP transport defaults
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxRetries     = 3
	DefaultBackoffFactor  = 0.3
)

// External download tool defaults
const (
	DefaultFragmentRetries    = 10
	DefaultDownloadRetries    = 10
	DefaultExternalDownloader = "aria2c"
)

// Filesystem defaults
const (
	DefaultOutputDir = "submeta-downloads"
	DefaultLogFile   = "downloader.log"
)

// RetryStatuses lists the HTTP status codes considered transient
var RetryStatuses = []int{429, 500, 502, 503, 504}

// Config holds everything a single run needs: endpoints, headers,
// transport limits and filesystem locations
type Config struct {
	APIURL       string
	SiteOrigin   string
	SiteReferer  string
	StreamPrefix string
	ManifestPath string
	UserAgent    string

	RequestTimeout time.Duration
	MaxRetries     int
	BackoffFactor  float64
	RetryStatuses  []int

	FragmentRetries    int
	DownloadRetries    int
	ExternalDownloader string

	OutputDir string
	LogFile   string
}

// Default returns a Config populated with the platform defaults
func Default() *Config {
	return &Config{
		APIURL:             DefaultAPIURL,
		SiteOrigin:         DefaultSiteOrigin,
		SiteReferer:        DefaultSiteReferer,
		StreamPrefix:       DefaultStreamPrefix,
		ManifestPath:       DefaultManifestPath,
		UserAgent:          DefaultUserAgent,
		RequestTimeout:     DefaultRequestTimeout,
		MaxRetries:         DefaultMaxRetries,
		BackoffFactor:      DefaultBackoffFactor,
		RetryStatuses:      append([]int(nil), RetryStatuses...),
		FragmentRetries:    DefaultFragmentRetries,
		DownloadRetries:    DefaultDownloadRetries,
		ExternalDownloader: DefaultExternalDownloader,
		OutputDir:          DefaultOutputDir,
		LogFile:            DefaultLogFile,
	}
}

// SetOutputDir sets the destination directory, falling back to the
// default when given an empty path
func (c *Config) SetOutputDir(dir string) {
	if dir == "" {
		dir = DefaultOutputDir
	}
	c.OutputDir = dir
}

// SetLogFile sets the log file path, falling back to the default when
// given an empty path
func (c *Config) SetLogFile(path string) {
	if path == "" {
		path = DefaultLogFile
	}
	c.LogFile = path
}

// IsRetryStatus reports whether the given HTTP status code is in the
// transient set
func (c *Config) IsRetryStatus(status int) bool {
	for _, s := range c.RetryStatuses {
		if s == status {
			return true
		}
	}
	return false
}
