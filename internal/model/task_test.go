package model

import "testing"

func TestFileStem(t *testing.T) {
	task := &DownloadTask{
		Title:      "Opening Theory",
		VideoIndex: 3,
	}

	if stem := task.FileStem(); stem != "3. Opening Theory" {
		t.Errorf("Expected '3. Opening Theory', got %q", stem)
	}
}

func TestLabel(t *testing.T) {
	task := &DownloadTask{
		Title:        "Opening Theory",
		ChapterTitle: "Fundamentals",
		VideoIndex:   1,
	}

	if label := task.Label(); label != "Fundamentals / 1. Opening Theory" {
		t.Errorf("Unexpected label: %q", label)
	}
}

func TestSummaryRecord(t *testing.T) {
	summary := &Summary{}

	summary.Record(&DownloadTask{Status: TaskStatusCompleted})
	summary.Record(&DownloadTask{Status: TaskStatusError})
	summary.Record(&DownloadTask{Status: TaskStatusCompleted})

	if summary.Total != 3 {
		t.Errorf("Expected 3 total, got %d", summary.Total)
	}
	if summary.Completed != 2 {
		t.Errorf("Expected 2 completed, got %d", summary.Completed)
	}
	if summary.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", summary.Failed)
	}
	if len(summary.Tasks) != 3 {
		t.Errorf("Expected 3 recorded tasks, got %d", len(summary.Tasks))
	}
}

func TestCourseVideoCount(t *testing.T) {
	course := &Course{
		Chapters: []Chapter{
			{Title: "One", Videos: []Video{{Title: "a", ID: "1"}, {Title: "b", ID: "2"}}},
			{Title: "Two", Videos: []Video{{Title: "c", ID: "3"}}},
			{Title: "Empty"},
		},
	}

	if count := course.VideoCount(); count != 3 {
		t.Errorf("Expected 3 videos, got %d", count)
	}

	if course.IsEmpty() {
		t.Error("Expected course with videos to not be empty")
	}

	empty := &Course{Chapters: []Chapter{{Title: "Only"}}}
	if !empty.IsEmpty() {
		t.Error("Expected course with no videos to be empty")
	}
}
