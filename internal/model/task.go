package model

import (
	"fmt"
	"time"
)

// DownloadTask records one video's trip through the download loop
type DownloadTask struct {
	ID           string
	VideoID      string // platform identifier of the video
	Title        string // sanitized video title
	ChapterTitle string // sanitized chapter title
	ChapterIndex int    // 1-based position of the chapter in the course
	VideoIndex   int    // 1-based position of the video in the chapter
	ManifestURL  string // resolved manifest URL, empty until resolution
	Status       TaskStatus
	LastError    string    // last error message if any
	OutputStem   string    // output path without extension
	StartedAt    time.Time // when processing started
	FinishedAt   time.Time // when processing finished
}

// FileStem returns the filename stem for the task, prefixed with the
// video's 1-based position within its chapter
func (dt *DownloadTask) FileStem() string {
	return fmt.Sprintf("%d. %s", dt.VideoIndex, dt.Title)
}

// Label returns a short human-readable identifier for log entries
func (dt *DownloadTask) Label() string {
	return fmt.Sprintf("%s / %s", dt.ChapterTitle, dt.FileStem())
}

// Summary aggregates per-video outcomes for a whole run
type Summary struct {
	Total     int
	Completed int
	Failed    int
	Tasks     []*DownloadTask
}

// Record appends a finished task and updates the counters
func (s *Summary) Record(task *DownloadTask) {
	s.Total++
	s.Tasks = append(s.Tasks, task)
	if task.Status == TaskStatusCompleted {
		s.Completed++
	} else {
		s.Failed++
	}
}
