package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/submeta-tools/submeta-dl/internal/config"
	"github.com/submeta-tools/submeta-dl/internal/model"
	"github.com/submeta-tools/submeta-dl/internal/platform"
)

// Service drives the sequential download loop over a parsed course
type Service struct {
	resolver    Resolver
	fetcher     Fetcher
	cfg         *config.Config
	logger      *logrus.Logger
	progressOut io.Writer
	onUpdate    func(*model.DownloadTask) // callback for task state changes
}

// NewService creates a new download service
func NewService(resolver Resolver, fetcher Fetcher, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		resolver:    resolver,
		fetcher:     fetcher,
		cfg:         cfg,
		logger:      logger,
		progressOut: os.Stderr,
	}
}

// SetProgressOutput redirects progress rendering; tests pass io.Discard
func (s *Service) SetProgressOutput(w io.Writer) {
	s.progressOut = w
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.onUpdate = callback
}

// Run walks the course in order, creates the destination layout and
// downloads every video. Failures resolving or fetching a single video
// are logged and recorded; the loop always continues to the next one.
func (s *Service) Run(ctx context.Context, course *model.Course, destDir, bearerToken string) (*model.Summary, error) {
	if err := platform.CreateDirectoryIfNotExists(destDir); err != nil {
		return nil, fmt.Errorf("failed to create destination %s: %w", destDir, err)
	}

	runID := uuid.NewString()
	s.logger.Infof("Run %s: downloading %d chapters (%d videos) to %s",
		runID, len(course.Chapters), course.VideoCount(), destDir)

	summary := &model.Summary{}
	chapterBar := s.newBar(len(course.Chapters), "Chapters")

	for i, chapter := range course.Chapters {
		chapterIndex := i + 1
		chapterPath := filepath.Join(destDir, platform.ChapterDirName(chapterIndex, chapter.Title))
		if err := platform.CreateDirectoryIfNotExists(chapterPath); err != nil {
			return nil, fmt.Errorf("failed to create chapter directory %s: %w", chapterPath, err)
		}

		videoBar := s.newBar(len(chapter.Videos), fmt.Sprintf("Downloading videos from %s", chapter.Title))

		for j, video := range chapter.Videos {
			task := &model.DownloadTask{
				ID:           uuid.NewString(),
				VideoID:      video.ID,
				Title:        video.Title,
				ChapterTitle: chapter.Title,
				ChapterIndex: chapterIndex,
				VideoIndex:   j + 1,
				Status:       model.TaskStatusPending,
				StartedAt:    time.Now(),
			}
			task.OutputStem = filepath.Join(chapterPath, task.FileStem())

			s.processTask(ctx, task, bearerToken)
			summary.Record(task)
			_ = videoBar.Add(1)
		}

		_ = videoBar.Clear()
		_ = chapterBar.Add(1)
	}

	_ = chapterBar.Finish()

	s.logger.Infof("Run %s finished: %d completed, %d failed of %d",
		runID, summary.Completed, summary.Failed, summary.Total)
	return summary, nil
}

// processTask resolves and downloads one video, recording the outcome
// on the task. It never returns an error: per-item failures stay local.
func (s *Service) processTask(ctx context.Context, task *model.DownloadTask, bearerToken string) {
	task.Status = model.TaskStatusResolving
	s.notifyUpdate(task)

	streamToken, err := s.resolver.AuthorizeVideo(ctx, bearerToken, task.VideoID)
	if err != nil {
		s.failTask(task, fmt.Errorf("failed to resolve %s: %w", task.Label(), err))
		return
	}

	task.ManifestURL = s.resolver.ManifestURL(streamToken)
	task.Status = model.TaskStatusDownloading
	s.notifyUpdate(task)

	outputTemplate := task.OutputStem + platform.ExtensionTemplate
	if err := s.fetcher.Fetch(ctx, task.ManifestURL, s.cfg.SiteOrigin, outputTemplate); err != nil {
		s.failTask(task, fmt.Errorf("failed to download %s: %w", task.Label(), err))
		return
	}

	task.Status = model.TaskStatusCompleted
	task.FinishedAt = time.Now()
	s.notifyUpdate(task)
	s.logger.Infof("Successfully downloaded: %s", task.FileStem())
}

// failTask marks the task failed and logs the reason
func (s *Service) failTask(task *model.DownloadTask, err error) {
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.notifyUpdate(task)
	s.logger.Error(err.Error())
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// newBar builds a progress bar bound to the configured writer
func (s *Service) newBar(count int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(count,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(s.progressOut),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
