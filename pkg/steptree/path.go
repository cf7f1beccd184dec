package steptree

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RootPath is the parent path of top-level steps.
// Top-level steps themselves have paths "1", "2", ... at depth 0.
const RootPath = ""

// ChildPath returns the path of the index-th child (1-based) of parent.
// An empty parent denotes the root, so ChildPath("", 2) is "2" and
// ChildPath("1.2", 1) is "1.2.1".
func ChildPath(parent string, index int) (string, error) {
	if parent != RootPath {
		if err := ValidatePath(parent); err != nil {
			return "", err
		}
	}
	if index < 1 {
		return "", &PathError{Path: parent, Reason: fmt.Sprintf("child index must be >= 1, got %d", index)}
	}
	if parent == RootPath {
		return strconv.Itoa(index), nil
	}
	return parent + "." + strconv.Itoa(index), nil
}

// ParentPath returns the path of the step's parent.
// Top-level paths return RootPath.
func ParentPath(path string) (string, error) {
	segs, err := splitPath(path)
	if err != nil {
		return "", err
	}
	if len(segs) == 1 {
		return RootPath, nil
	}
	return strings.Join(segmentsToStrings(segs[:len(segs)-1]), "."), nil
}

// PathDepth returns the step's depth: segment count minus one.
// Top-level steps ("1", "2", ...) are depth 0.
func PathDepth(path string) (int, error) {
	segs, err := splitPath(path)
	if err != nil {
		return 0, err
	}
	return len(segs) - 1, nil
}

// PathIndex returns the step's 1-based position among its siblings
// (the last path segment).
func PathIndex(path string) (int, error) {
	segs, err := splitPath(path)
	if err != nil {
		return 0, err
	}
	return segs[len(segs)-1], nil
}

// AncestorPaths returns the chain of ancestor paths from the root down to
// the step's parent, in order. Top-level paths return an empty slice.
// AncestorPaths("1.2.3") is ["1", "1.2"].
func AncestorPaths(path string) ([]string, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	ancestors := make([]string, 0, len(segs)-1)
	for i := 1; i < len(segs); i++ {
		ancestors = append(ancestors, strings.Join(segmentsToStrings(segs[:i]), "."))
	}
	return ancestors, nil
}

// ValidatePath checks that path is a well-formed dot-delimited sequence of
// positive integers. Malformed paths (empty, empty segments, non-numeric
// segments, non-positive indices) return a *PathError.
func ValidatePath(path string) error {
	_, err := splitPath(path)
	return err
}

// ComparePaths orders two well-formed paths numerically segment by segment,
// so "2.9" sorts before "2.10". A prefix sorts before its extensions.
// Returns -1, 0, or 1. Malformed paths compare as plain strings.
func ComparePaths(a, b string) int {
	sa, errA := splitPath(a)
	sb, errB := splitPath(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	for i := 0; i < len(sa) && i < len(sb); i++ {
		if sa[i] != sb[i] {
			if sa[i] < sb[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(sa) < len(sb):
		return -1
	case len(sa) > len(sb):
		return 1
	default:
		return 0
	}
}

// SortPaths sorts paths in place in numeric segment order.
func SortPaths(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return ComparePaths(paths[i], paths[j]) < 0
	})
}

// splitPath parses a path into its numeric segments, validating as it goes.
func splitPath(path string) ([]int, error) {
	if path == "" {
		return nil, &PathError{Path: path, Reason: "path is empty"}
	}
	parts := strings.Split(path, ".")
	segs := make([]int, len(parts))
	for i, part := range parts {
		if part == "" {
			return nil, &PathError{Path: path, Reason: "empty segment"}
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, &PathError{Path: path, Reason: fmt.Sprintf("non-numeric segment %q", part)}
		}
		if n < 1 {
			return nil, &PathError{Path: path, Reason: fmt.Sprintf("segment %d is not a positive index", n)}
		}
		segs[i] = n
	}
	return segs, nil
}

func segmentsToStrings(segs []int) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = strconv.Itoa(s)
	}
	return out
}
