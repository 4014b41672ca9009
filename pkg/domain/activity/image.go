package activity

import (
	"regexp"
	"strings"
)

// GCS URI pattern: gs://bucket/path
var gcsURIPattern = regexp.MustCompile(`^gs://([^/]+)/(.+)$`)

// ImageKind classifies a record's image reference.
type ImageKind int

const (
	ImageNone ImageKind = iota
	ImageURL            // absolute http(s) URL, served by redirect
	ImageGCS            // gs://bucket/object
	ImageObject         // opaque object name inside the configured image bucket
)

// ParseGCSURI extracts bucket and object path from a GCS URI.
// Returns bucket, object, and bool indicating if the URI was valid.
func ParseGCSURI(uri string) (bucket, object string, ok bool) {
	matches := gcsURIPattern.FindStringSubmatch(uri)
	if len(matches) != 3 {
		return "", "", false
	}
	return matches[1], matches[2], true
}

// ClassifyImage tells the caller how an image reference should be resolved.
// An empty reference is valid and means "no image".
func ClassifyImage(ref string) ImageKind {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ImageNone
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ImageURL
	case strings.HasPrefix(ref, "gs://"):
		if _, _, ok := ParseGCSURI(ref); ok {
			return ImageGCS
		}
		return ImageNone
	default:
		return ImageObject
	}
}
