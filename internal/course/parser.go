package course

// Package course turns the embedded page payload into the ordered
// chapter/video tree. Navigation is explicit: every expected field that
// is absent produces a MissingFieldError naming the payload path, so
// callers can tell a moved payload apart from a transport problem.

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/submeta-tools/submeta-dl/internal/model"
	"github.com/submeta-tools/submeta-dl/internal/platform"
)

// Content type tag for downloadable items
const (
	TypenameVideo = "Video"
)

// MissingFieldError reports an expected field absent from the payload
type MissingFieldError struct {
	Path string
}

// Error returns the missing payload path
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q in course payload", e.Path)
}

// pagePayload mirrors the slice of the page JSON the parser navigates.
// Pointers distinguish absent fields from empty ones; extra fields are
// ignored.
type pagePayload struct {
	Props *struct {
		PageProps *struct {
			Course *coursePayload `json:"course"`
		} `json:"pageProps"`
	} `json:"props"`
}

type coursePayload struct {
	Title    string            `json:"title"`
	Chapters *[]chapterPayload `json:"chapters"`
}

type chapterPayload struct {
	Title    *string           `json:"title"`
	Contents *[]contentPayload `json:"contents"`
}

type contentPayload struct {
	Typename *string `json:"__typename"`
	ID       *string `json:"id"`
	Title    *string `json:"title"`
}

// Parse walks the page payload and builds the ordered course tree.
// Chapter and video titles are sanitized before use as path components;
// content items whose type tag is not "Video" are skipped.
func Parse(raw json.RawMessage, logger *logrus.Logger) (*model.Course, error) {
	var payload pagePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		logger.Errorf("Failed to decode course payload: %v", err)
		return nil, fmt.Errorf("failed to decode course payload: %w", err)
	}

	switch {
	case payload.Props == nil:
		return nil, fail(logger, "props")
	case payload.Props.PageProps == nil:
		return nil, fail(logger, "props.pageProps")
	case payload.Props.PageProps.Course == nil:
		return nil, fail(logger, "props.pageProps.course")
	case payload.Props.PageProps.Course.Chapters == nil:
		return nil, fail(logger, "props.pageProps.course.chapters")
	}

	src := payload.Props.PageProps.Course
	course := &model.Course{Title: src.Title}

	for i, chapter := range *src.Chapters {
		if chapter.Title == nil {
			return nil, fail(logger, fmt.Sprintf("chapters[%d].title", i))
		}
		if chapter.Contents == nil {
			return nil, fail(logger, fmt.Sprintf("chapters[%d].contents", i))
		}

		parsed := model.Chapter{Title: platform.SanitizeTitle(*chapter.Title)}
		for j, item := range *chapter.Contents {
			if item.Typename == nil {
				return nil, fail(logger, fmt.Sprintf("chapters[%d].contents[%d].__typename", i, j))
			}
			if *item.Typename != TypenameVideo {
				continue
			}
			if item.Title == nil {
				return nil, fail(logger, fmt.Sprintf("chapters[%d].contents[%d].title", i, j))
			}
			if item.ID == nil {
				return nil, fail(logger, fmt.Sprintf("chapters[%d].contents[%d].id", i, j))
			}

			parsed.Videos = append(parsed.Videos, model.Video{
				Title: platform.SanitizeTitle(*item.Title),
				ID:    *item.ID,
			})
		}

		course.Chapters = append(course.Chapters, parsed)
	}

	logger.Infof("Parsed course %q: %d chapters, %d videos", course.Title, len(course.Chapters), course.VideoCount())
	return course, nil
}

// fail logs and returns a MissingFieldError for the given path
func fail(logger *logrus.Logger, path string) error {
	err := &MissingFieldError{Path: path}
	logger.Errorf("Error while parsing course JSON: %v", err)
	return err
}
