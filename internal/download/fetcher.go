package download

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lrstanley/go-ytdlp"

	"github.com/submeta-tools/submeta-dl/internal/config"
)

// YTDLPFetcher downloads a manifest URL through the yt-dlp tool. The
// tool owns segment fetching, fragment retries and the final container
// choice; this side only configures it.
type YTDLPFetcher struct {
	fragmentRetries    int
	retries            int
	externalDownloader string
}

// NewYTDLPFetcher creates a fetcher with the configured retry counts and
// external downloader helper
func NewYTDLPFetcher(cfg *config.Config) *YTDLPFetcher {
	return &YTDLPFetcher{
		fragmentRetries:    cfg.FragmentRetries,
		retries:            cfg.DownloadRetries,
		externalDownloader: cfg.ExternalDownloader,
	}
}

// Fetch runs yt-dlp against the manifest URL, writing to the output
// template. It blocks until the tool finishes or fails.
func (f *YTDLPFetcher) Fetch(ctx context.Context, manifestURL, referer, outputTemplate string) error {
	dl := ytdlp.New().
		Quiet().
		IgnoreErrors().
		Referer(referer).
		Retries(strconv.Itoa(f.retries)).
		FragmentRetries(strconv.Itoa(f.fragmentRetries)).
		Output(outputTemplate)

	if f.externalDownloader != "" {
		dl = dl.Downloader(f.externalDownloader)
	}

	if _, err := dl.Run(ctx, manifestURL); err != nil {
		return fmt.Errorf("yt-dlp failed for %s: %w", manifestURL, err)
	}

	return nil
}
