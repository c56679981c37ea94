package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/submeta-tools/submeta-dl/internal/api"
	"github.com/submeta-tools/submeta-dl/internal/config"
	"github.com/submeta-tools/submeta-dl/internal/course"
	"github.com/submeta-tools/submeta-dl/internal/download"
	"github.com/submeta-tools/submeta-dl/internal/httpclient"
	"github.com/submeta-tools/submeta-dl/internal/logging"
	"github.com/submeta-tools/submeta-dl/internal/scrape"
)

func main() {
	app := &cli.App{
		Name:      "submeta-dl",
		Usage:     "Download a submeta.io course into a chapter/video directory tree",
		ArgsUsage: "<course-url> [download-path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "destination directory (defaults to " + config.DefaultOutputDir + ")",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "log file path",
				Value: config.DefaultLogFile,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 1 || c.NArg() > 2 {
		return cli.Exit("usage: submeta-dl <course-url> [download-path]", 1)
	}
	courseURL := c.Args().Get(0)

	cfg := config.Default()
	cfg.SetLogFile(c.String("log-file"))
	if c.String("output") != "" {
		cfg.SetOutputDir(c.String("output"))
	} else {
		cfg.SetOutputDir(c.Args().Get(1))
	}

	logger, logCloser, err := logging.New(cfg.LogFile)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to open log file: %v", err), 1)
	}
	defer logCloser.Close()

	ctx := context.Background()
	client := httpclient.New(cfg, logger)

	extractor := scrape.NewExtractor(client, cfg.UserAgent, logger)
	raw, err := extractor.ExtractJSON(ctx, courseURL)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to retrieve JSON data. Check the URL or %s for more information.", cfg.LogFile), 1)
	}

	tree, err := course.Parse(raw, logger)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to parse course data. Check %s for more information.", cfg.LogFile), 1)
	}

	username, password, err := promptCredentials()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to read credentials: %v", err), 1)
	}

	apiClient := api.NewClient(client, cfg, logger)
	token, err := apiClient.Login(ctx, username, password)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to login. Check credentials or %s for more information.", cfg.LogFile), 1)
	}
	fmt.Println("Login successful! Token obtained")

	fetcher := download.NewYTDLPFetcher(cfg)
	service := download.NewService(apiClient, fetcher, cfg, logger)

	summary, err := service.Run(ctx, tree, cfg.OutputDir, token)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Download failed: %v. Check %s for more information.", err, cfg.LogFile), 1)
	}

	fmt.Println("Download complete!")
	if summary.Failed > 0 {
		fmt.Printf("%d of %d videos failed; see %s for details.\n", summary.Failed, summary.Total, cfg.LogFile)
	}
	return nil
}

// promptCredentials asks for a username on stdin and a masked password.
// When stdin is not a terminal the password is read as a plain line.
func promptCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("failed to read username: %w", err)
	}
	username = strings.TrimSpace(username)

	fmt.Print("Enter password: ")
	var password string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	} else {
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	return username, password, nil
}
