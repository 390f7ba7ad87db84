package render

import (
	"strings"

	"github.com/shaheeralics/scriptwriter/internal/metrics"
)

const (
	filenamePrefix  = "youtube-script-"
	defaultBasename = "youtube_script"
	maxSlugLength   = 60
)

// Text returns the script as a plain-text download, byte for byte.
func Text(src string) []byte {
	metrics.ExportsTotal.WithLabelValues("txt").Inc()
	return []byte(src)
}

// Filename derives a download name from the topic, e.g.
// "youtube-script-wireless-charging.pdf". A topic with no usable characters
// gives "youtube_script.<ext>".
func Filename(topic, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	slug := Slug(topic)
	if slug == "" {
		return defaultBasename + "." + ext
	}
	return filenamePrefix + slug + "." + ext
}

// Slug lowercases s and joins its ASCII letter and digit runs with hyphens.
func Slug(s string) string {
	var sb strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			dash := pendingDash && sb.Len() > 0
			need := 1
			if dash {
				need = 2
			}
			if sb.Len()+need > maxSlugLength {
				break
			}
			if dash {
				sb.WriteByte('-')
			}
			pendingDash = false
			sb.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return strings.TrimRight(sb.String(), "-")
}
