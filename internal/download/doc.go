package download

// Package download implements the course download loop built on top of
// yt-dlp (via github.com/lrstanley/go-ytdlp). It walks the chapter tree,
// lays out the destination directories, resolves each video's manifest
// URL and delegates the actual media transfer to the external tool.
