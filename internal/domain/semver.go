package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// coerceRegexp finds the first MAJOR[.MINOR[.PATCH]] group in a literal,
// which lets "^1.2.3", "v6", "6.0" and "8.0.0-beta.1" share one core.
var coerceRegexp = regexp.MustCompile(`(?:^|[^\d])(\d{1,16})(?:\.(\d{1,16}))?(?:\.(\d{1,16}))?(?:$|[^\d])`)

var rangePrefixRegexp = regexp.MustCompile(`^\D+`)

// rangePrecedence orders range prefixes from narrowest to widest. Anything
// not listed (exact versions, ">=", "workspace:") ranks lowest.
var rangePrecedence = map[string]int{
	"~": 1,
	"^": 2,
}

// WorkspaceProtocolPrefix marks literals resolved to the local package version.
const WorkspaceProtocolPrefix = "workspace:"

// coerce strips any range prefix and returns the semver core of literal.
func coerce(literal string) (*semver.Version, error) {
	match := coerceRegexp.FindStringSubmatch(literal)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVersion, literal)
	}

	parts := [3]uint64{}

	for i := range parts {
		if match[i+1] == "" {
			continue
		}

		n, err := strconv.ParseUint(match[i+1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidVersion, literal)
		}

		parts[i] = n
	}

	return semver.New(parts[0], parts[1], parts[2], "", ""), nil
}

// CompareVersionRanges orders range literals such as ^1.0.0, ~2.5.0 and 3.0.0.
// A greater semver core wins; equal cores are ordered by range prefix so that
// the wider range is higher.
func CompareVersionRanges(a, b string) (int, error) {
	aVersion, err := coerce(a)
	if err != nil {
		return 0, err
	}

	bVersion, err := coerce(b)
	if err != nil {
		return 0, err
	}

	if aVersion.Equal(bVersion) {
		return CompareRanges(VersionRangeToRange(a), VersionRangeToRange(b)), nil
	}

	if aVersion.GreaterThan(bVersion) {
		return 1, nil
	}

	return -1, nil
}

// CompareVersionRangesSafe is CompareVersionRanges reporting equality instead
// of an error, for sorting lists that may hold invalid literals.
func CompareVersionRangesSafe(a, b string) int {
	result, err := CompareVersionRanges(a, b)
	if err != nil {
		return 0
	}

	return result
}

// CompareRanges compares range prefixes like "^" and "~".
func CompareRanges(a, b string) int {
	aPrecedence := rangePrecedence[a]
	bPrecedence := rangePrecedence[b]

	switch {
	case aPrecedence > bPrecedence:
		return 1
	case aPrecedence < bPrecedence:
		return -1
	default:
		return 0
	}
}

// VersionRangeToRange returns the prefix of a range literal: "^1.0.0" -> "^".
func VersionRangeToRange(versionRange string) string {
	return rangePrefixRegexp.FindString(versionRange)
}

// LatestVersion returns the highest literal. Every literal must be valid.
func LatestVersion(versions []string) (string, error) {
	if len(versions) == 0 {
		return "", fmt.Errorf("%w: no versions given", ErrInvalidVersion)
	}

	for _, version := range versions {
		if _, err := coerce(version); err != nil {
			return "", err
		}
	}

	latest := versions[0]

	for _, version := range versions[1:] {
		result, err := CompareVersionRanges(version, latest)
		if err != nil {
			return "", err
		}

		// Ties go to the later literal.
		if result >= 0 {
			latest = version
		}
	}

	return latest, nil
}

// HighestRangeType returns the widest prefix: ["~", "^"] -> "^".
func HighestRangeType(ranges []string) string {
	if len(ranges) == 0 {
		return ""
	}

	highest := ranges[0]

	for _, r := range ranges[1:] {
		if CompareRanges(r, highest) >= 0 {
			highest = r
		}
	}

	return highest
}

// IncreasedLatestVersion returns the literal to converge on. It starts from
// the latest literal and widens it to any other literal's range that the
// latest core already satisfies, so fixing never narrows a range:
// ["1.5.0", "^1.0.0"] -> "^1.5.0".
func IncreasedLatestVersion(versions []string) (string, error) {
	latest, err := LatestVersion(versions)
	if err != nil {
		return "", err
	}

	latestBare, err := coerce(latest)
	if err != nil {
		return "", err
	}

	result := latest
	resultBare := latestBare

	for _, version := range versions {
		if version == latest {
			continue
		}

		versionBare, err := coerce(version)
		if err != nil {
			return "", err
		}

		if !satisfiesVersion(latestBare, version) || !latestBare.GreaterThan(versionBare) {
			continue
		}

		result = withCore(version, versionBare, resultBare)

		resultBare, err = coerce(result)
		if err != nil {
			return "", err
		}
	}

	return result, nil
}

// withCore swaps the core of literal for core, keeping its prefix. Partial
// literals like "^1" that do not spell out the full core get rebuilt.
func withCore(literal string, literalCore, core *semver.Version) string {
	if strings.Contains(literal, literalCore.String()) {
		return strings.Replace(literal, literalCore.String(), core.String(), 1)
	}

	return VersionRangeToRange(literal) + core.String()
}

// Satisfies reports whether version falls inside the constraint. Anything
// that does not parse is treated as not satisfying.
func Satisfies(version, constraint string) bool {
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return false
	}

	return satisfiesVersion(v, constraint)
}

func satisfiesVersion(v *semver.Version, constraint string) bool {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false
	}

	return c.Check(v)
}

// BareVersion returns the semver core of literal as a string.
func BareVersion(literal string) (string, error) {
	v, err := coerce(literal)
	if err != nil {
		return "", err
	}

	return v.String(), nil
}
