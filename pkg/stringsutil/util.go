package stringsutil

import "strings"

// RemoveEmptyStrings trims every element and drops the blank ones.
func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}

	return result
}

// SplitList splits a comma separated setting such as "a, b,,c" into [a b c].
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	return RemoveEmptyStrings(strings.Split(s, ","))
}
