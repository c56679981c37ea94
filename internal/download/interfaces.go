package download

import "context"

// Fetcher is the capability boundary around the external media tool: it
// receives a manifest URL plus headers and leaves a file on disk. Any
// conforming backend can stand in during tests.
type Fetcher interface {
	Fetch(ctx context.Context, manifestURL, referer, outputTemplate string) error
}

// Resolver exchanges a video identifier for its manifest URL parts
type Resolver interface {
	AuthorizeVideo(ctx context.Context, bearerToken, videoID string) (string, error)
	ManifestURL(streamToken string) string
}
