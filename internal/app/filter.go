package app

import "strings"

// NormalizeKeys lower-cases section keys, splits comma separated values and
// drops blanks and repeats, keeping first-seen order.
func NormalizeKeys(args []string) []string {
	var keys []string
	seen := make(map[string]struct{})
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			key := strings.ToLower(strings.TrimSpace(part))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys
}
