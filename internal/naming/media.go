package naming

import "strings"

// ImageExtensions are the recognized image asset extensions (lowercase, with dot).
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// VideoExtensions are the recognized video asset extensions (lowercase, with dot).
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
}

// IsMediaExtension reports whether ext (any case, with dot) is a recognized
// image or video extension.
func IsMediaExtension(ext string) bool {
	ext = strings.ToLower(ext)
	return ImageExtensions[ext] || VideoExtensions[ext]
}
