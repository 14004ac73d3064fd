package domain

import "strings"

// SearchHistoryLimit bounds the number of remembered search queries.
const SearchHistoryLimit = 10

// PushSearchQuery returns a new history list with the query inserted at
// the front. A query identical up to case to an existing entry is moved
// to the front instead of duplicated, and the list never exceeds
// SearchHistoryLimit entries. Blank queries leave the history unchanged.
func PushSearchQuery(history []string, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return history
	}

	updated := make([]string, 0, len(history)+1)
	updated = append(updated, query)

	lowered := strings.ToLower(query)
	for _, entry := range history {
		if strings.ToLower(entry) == lowered {
			continue
		}
		updated = append(updated, entry)
	}

	if len(updated) > SearchHistoryLimit {
		updated = updated[:SearchHistoryLimit]
	}

	return updated
}
