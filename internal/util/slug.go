package util

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	spaceRe   = regexp.MustCompile(`\s+`)
	nonWordRe = regexp.MustCompile(`[^\w-]+`)
	dashesRe  = regexp.MustCompile(`--+`)
)

func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = spaceRe.ReplaceAllString(s, "-")
	s = nonWordRe.ReplaceAllString(s, "")
	s = dashesRe.ReplaceAllString(s, "-")
	return s
}

// ProductSlug appends the last four digits of the current unix millisecond
// clock to the slugified title. Collisions are unlikely, not impossible.
func ProductSlug(title string, now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 4 {
		ms = ms[len(ms)-4:]
	}
	return Slugify(title) + "-" + ms
}
