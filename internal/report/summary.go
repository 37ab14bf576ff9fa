package report

import (
	"wasc-audit/internal/checker"
	"wasc-audit/internal/models"
)

// Summarize derives a coarse conformance verdict from a result mapping:
// "conforme" when nothing failed, "non conforme" when everything did,
// "partiel" in between. Failing columns are listed as reasons.
func Summarize(results map[string]any) *models.Summary {
	total, failed := 0, 0
	reason := map[string]string{}
	countFails(results, "", &total, &failed, reason)

	label := "partiel"
	switch {
	case total == 0 || failed == 0:
		label = "conforme"
	case failed == total:
		label = "non conforme"
	}
	if len(reason) == 0 {
		reason = nil
	}
	return &models.Summary{Label: label, Reason: reason}
}

func countFails(results map[string]any, prefix string, total, failed *int, reason map[string]string) {
	for col, val := range results {
		key := col
		if prefix != "" {
			key = prefix + " / " + col
		}
		// criteria sets nest one map per criterion
		if nested, ok := val.(map[string]any); ok {
			countFails(nested, key, total, failed, reason)
			continue
		}
		*total++
		if val == any(checker.Fail) {
			*failed++
			reason[key] = checker.Fail
		}
	}
}
