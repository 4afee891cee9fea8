package timeline

import "regexp"

// ImageSize is the pbs.twimg.com size qualifier.
type ImageSize string

const (
	SizeThumb  ImageSize = "thumb"
	SizeSmall  ImageSize = "small"
	SizeMedium ImageSize = "medium"
	SizeLarge  ImageSize = "large"
	SizeOrig   ImageSize = "orig"
)

var (
	mediaHostRe     = regexp.MustCompile(`^(https://pbs\.twimg\.com/media/[^/.?]+)\.(\w+)$`)
	profileNormalRe = regexp.MustCompile(`_normal(\.\w+)$`)
	formatParamRe   = regexp.MustCompile(`[?&]format=(\w+)`)
	trailingExtRe   = regexp.MustCompile(`\.(\w+)$`)
	queryExtRe      = regexp.MustCompile(`\.(\w+)\?`)
)

// OriginalURL returns the best-quality source URL for a media attachment.
// Videos and gifs resolve to the highest-bitrate variant (ties keep the
// first seen, an absent bitrate counts as zero), falling back to the base
// URL when no variants exist. Photos resolve to the orig-size image URL.
func OriginalURL(m MediaEntity) string {
	switch m.Type {
	case MediaVideo, MediaAnimatedGIF:
		if m.VideoInfo == nil || len(m.VideoInfo.Variants) == 0 {
			return m.MediaURLHTTPS
		}
		best := m.VideoInfo.Variants[0]
		for _, v := range m.VideoInfo.Variants[1:] {
			if v.Bitrate > best.Bitrate {
				best = v
			}
		}
		return best.URL
	default:
		return FormatImageURL(m.MediaURLHTTPS, SizeOrig)
	}
}

// FormatImageURL rewrites a pbs.twimg.com media URL to the modern
// query-parameter form carrying the requested size. A legacy extensioned
// URL becomes ...?format=<ext>&name=<size>; any other URL gets ?name=<size>
// appended unchanged. An empty size defaults to medium.
func FormatImageURL(url string, size ImageSize) string {
	if size == "" {
		size = SizeMedium
	}
	if m := mediaHostRe.FindStringSubmatch(url); m != nil {
		return m[1] + "?format=" + m[2] + "&name=" + string(size)
	}
	return url + "?name=" + string(size)
}

// ProfileImageOriginalURL strips the _normal resolution suffix from a
// profile image URL, preserving the extension.
func ProfileImageOriginalURL(url string) string {
	return profileNormalRe.ReplaceAllString(url, "$1")
}

// FileExtension infers the file extension of a media URL. It tries a
// format= query parameter, then a trailing .ext, then a .ext immediately
// before a query string, and defaults to jpg (profile banners and some
// card images carry no extension token at all).
func FileExtension(url string) string {
	if m := formatParamRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := trailingExtRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := queryExtRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return "jpg"
}
