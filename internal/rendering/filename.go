package rendering

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DefaultFilename is used for downloads when no name is supplied
const DefaultFilename = "resume.md"

var (
	headingPattern  = regexp.MustCompile(`(?m)^# (.+)$`)
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// GenerateFilename derives "<slug>-<YYYY-MM-DD>.md" from the first level-one
// heading of a Markdown résumé. The slug falls back to "resume".
func GenerateFilename(markdown string, now time.Time) string {
	name := "resume"
	if m := headingPattern.FindStringSubmatch(markdown); m != nil {
		name = strings.TrimSpace(m[1])
	}

	slug := strings.ToLower(name)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = whitespaceRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "resume"
	}

	return slug + "-" + now.UTC().Format("2006-01-02") + ".md"
}

// SanitizeFilename makes a client-supplied name safe to place in a
// Content-Disposition header. Empty or fully stripped names become DefaultFilename.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeFileChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return DefaultFilename
	}
	return name
}
