package alert

import (
	"net/url"
	"strings"
)

// TaskLink builds the web app URL of a task, or "" without a base URL.
func TaskLink(base, projectID, taskID string) string {
	if base == "" {
		return ""
	}
	q := url.Values{}
	q.Set("projectId", projectID)
	q.Set("taskId", taskID)
	return strings.TrimRight(base, "/") + "/taskDetails?" + q.Encode()
}
