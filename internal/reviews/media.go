package reviews

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/stridekart/backend/pkg/enums"
)

// Extensions consulted only when content sniffing is inconclusive.
var extensionMediaTypes = map[string]enums.ReviewMediaType{
	".jpg":  enums.ReviewMediaTypeImage,
	".jpeg": enums.ReviewMediaTypeImage,
	".png":  enums.ReviewMediaTypeImage,
	".gif":  enums.ReviewMediaTypeImage,
	".webp": enums.ReviewMediaTypeImage,
	".mp4":  enums.ReviewMediaTypeVideo,
	".mov":  enums.ReviewMediaTypeVideo,
	".webm": enums.ReviewMediaTypeVideo,
	".mkv":  enums.ReviewMediaTypeVideo,
}

// classifyMedia decides image vs video from the file bytes, falling back to
// the path's extension when sniffing cannot tell (empty or generic content).
func classifyMedia(path string, data []byte) (enums.ReviewMediaType, error) {
	if len(data) > 0 {
		detected := mimetype.Detect(data)
		switch {
		case strings.HasPrefix(detected.String(), "image/"):
			return enums.ReviewMediaTypeImage, nil
		case strings.HasPrefix(detected.String(), "video/"):
			return enums.ReviewMediaTypeVideo, nil
		}
	}
	if mediaType, ok := extensionMediaTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mediaType, nil
	}
	return "", fmt.Errorf("cannot classify media %q as image or video", filepath.Base(path))
}
