package model

// Video is a single downloadable item inside a chapter. ID is the
// platform-assigned identifier exchanged later for a stream token.
type Video struct {
	Title string
	ID    string
}

// Chapter is an ordered list of videos. Order is significant: it
// determines the numeric filename prefixes on disk.
type Chapter struct {
	Title  string
	Videos []Video
}

// Course is the ordered chapter tree scraped from the course page.
// Built once per run and treated as immutable afterwards.
type Course struct {
	Title    string
	Chapters []Chapter
}

// VideoCount returns the total number of videos across all chapters
func (c *Course) VideoCount() int {
	count := 0
	for _, chapter := range c.Chapters {
		count += len(chapter.Videos)
	}
	return count
}

// IsEmpty reports whether the course has no downloadable videos. A
// course with zero chapters, or chapters with zero videos, is valid
// but produces no downloads.
func (c *Course) IsEmpty() bool {
	return c.VideoCount() == 0
}
