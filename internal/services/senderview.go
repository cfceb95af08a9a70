package services

import "strings"

// FilteredSenders produces the sender list for display: a case-insensitive
// substring filter over available (an empty query is the identity), then a
// stable reorder so selected senders precede unselected ones, preserving
// relative order within each group.
//
// It is a pure function of its three inputs; the presentation layer calls it
// whenever any of them changes.
func FilteredSenders(available []string, query string, selected map[string]struct{}) []string {
	filtered := available
	if strings.TrimSpace(query) != "" {
		q := strings.ToLower(query)
		filtered = make([]string, 0, len(available))
		for _, sender := range available {
			if strings.Contains(strings.ToLower(sender), q) {
				filtered = append(filtered, sender)
			}
		}
	}

	result := make([]string, 0, len(filtered))
	for _, sender := range filtered {
		if _, ok := selected[sender]; ok {
			result = append(result, sender)
		}
	}
	for _, sender := range filtered {
		if _, ok := selected[sender]; !ok {
			result = append(result, sender)
		}
	}
	return result
}
