// Package strings provides utility functions for string slices.
package strings

// Contain return true if the strings includes at least one target string.
func Contain(strings []string, target string) bool {
	for _, str := range strings {
		if str == target {
			return true
		}
	}
	return false
}

// FirstDuplicate returns the first element which appears earlier in the list.
func FirstDuplicate(list []string) (string, bool) {
	seen := make(map[string]struct{}, len(list))
	for _, val := range list {
		if _, exist := seen[val]; exist {
			return val, true
		}
		seen[val] = struct{}{}
	}
	return "", false
}
