package cache

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultVersion is the current wait-times blob format version.
const DefaultVersion = "v1b"

// Identifiers become path segments, so they are restricted to word
// characters and hyphens before any path is built. This is a
// path-traversal guard, not a business rule.
var (
	identifierPattern = regexp.MustCompile(`^[\w\-]+$`)
	timeRangePattern  = regexp.MustCompile(`^[\w\-+]*$`)
)

// InvalidIdentifierError reports an identifier that failed the path
// pattern check.
type InvalidIdentifierError struct {
	Field string
	Value string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// TimeRangePath returns the path suffix for an optional time range,
// e.g. "_0700_1900" for "07:00"/"19:00", or "" when both are empty.
func TimeRangePath(startTimeStr, endTimeStr string) string {
	if startTimeStr == "" && endTimeStr == "" {
		return ""
	}
	return fmt.Sprintf("_%s_%s",
		strings.ReplaceAll(startTimeStr, ":", ""),
		strings.ReplaceAll(endTimeStr, ":", ""))
}

func validateIdentifiers(agencyID, dateStr, statID, timeRangePath, version string) error {
	if !identifierPattern.MatchString(agencyID) {
		return &InvalidIdentifierError{Field: "agency", Value: agencyID}
	}
	if !identifierPattern.MatchString(dateStr) {
		return &InvalidIdentifierError{Field: "date", Value: dateStr}
	}
	if !identifierPattern.MatchString(version) {
		return &InvalidIdentifierError{Field: "version", Value: version}
	}
	if !identifierPattern.MatchString(statID) {
		return &InvalidIdentifierError{Field: "stat id", Value: statID}
	}
	if !timeRangePattern.MatchString(timeRangePath) {
		return &InvalidIdentifierError{Field: "time range", Value: timeRangePath}
	}
	return nil
}

// CachePath returns the local cache key for a precomputed wait-times
// blob, validating every identifier first.
func CachePath(agencyID string, d time.Time, statID, timeRangePath, version string) (string, error) {
	dateStr := d.Format("2006-01-02")

	if err := validateIdentifiers(agencyID, dateStr, statID, timeRangePath, version); err != nil {
		return "", err
	}

	return fmt.Sprintf("wait-times_%s_%s/%s/wait-times_%s_%s_%s_%s%s.json",
		version, agencyID, dateStr,
		version, agencyID, dateStr, statID, timeRangePath), nil
}

// RemotePath returns the object key of the gzip-compressed blob on the
// remote store, validating every identifier first.
func RemotePath(agencyID string, d time.Time, statID, timeRangePath, version string) (string, error) {
	dateStr := d.Format("2006-01-02")

	if err := validateIdentifiers(agencyID, dateStr, statID, timeRangePath, version); err != nil {
		return "", err
	}

	datePath := d.Format("2006/01/02")
	return fmt.Sprintf("wait-times/%s/%s/%s/wait-times_%s_%s_%s_%s%s.json.gz",
		version, agencyID, datePath,
		version, agencyID, dateStr, statID, timeRangePath), nil
}
