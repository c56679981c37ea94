package platform

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Opening Theory", "Opening Theory"},
		{"slash", "Intro/Outro", "Intro_Outro"},
		{"colon", "Lesson 1: Basics", "Lesson 1_ Basics"},
		{"question", "What now?", "What now_"},
		{"dots and underscores kept", "v1.2_final", "v1.2_final"},
		{"quotes", `"quoted"`, "_quoted_"},
		{"empty", "", ""},
		{"all disallowed", "<>|*", "____"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeTitle(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeTitle(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSanitizeTitleIdempotent(t *testing.T) {
	inputs := []string{"Lesson 1: Basics", "a/b\\c", "already clean.mp4", "émigré"}

	for _, input := range inputs {
		once := SanitizeTitle(input)
		twice := SanitizeTitle(once)
		if once != twice {
			t.Errorf("Sanitization not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestSanitizeTitlePreservesLength(t *testing.T) {
	inputs := []string{"Lesson 1: Basics", "é", "日本語タイトル", "<>:|"}

	for _, input := range inputs {
		result := SanitizeTitle(input)
		if utf8.RuneCountInString(result) != utf8.RuneCountInString(input) {
			t.Errorf("SanitizeTitle(%q) changed rune length: got %q", input, result)
		}
	}
}

func TestChapterDirName(t *testing.T) {
	if name := ChapterDirName(2, "Endgames: Rooks"); name != "2. Endgames_ Rooks" {
		t.Errorf("Unexpected chapter dir name: %q", name)
	}
}

func TestVideoFileStem(t *testing.T) {
	if stem := VideoFileStem(11, "Review & QA"); stem != "11. Review _ QA" {
		t.Errorf("Unexpected video file stem: %q", stem)
	}
}

func TestOutputTemplate(t *testing.T) {
	tmpl := OutputTemplate(filepath.Join("out", "1. Intro"), "2. Scope")
	expected := filepath.Join("out", "1. Intro", "2. Scope.%(ext)s")
	if tmpl != expected {
		t.Errorf("Expected %q, got %q", expected, tmpl)
	}
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}
