package models

import "strings"

// ============================================================================
// NOTIFICATION CONSTANTS
// ============================================================================

// NotificationHistorySize is the number of reminders kept in memory
const NotificationHistorySize = 10

// DefaultTopicTemplate is the per-user reminder destination.
// {userId} is replaced with the authenticated user's stable identifier.
const DefaultTopicTemplate = "/topic/deadline-reminders/{userId}"

// Topic expands a destination template for one user
func Topic(template, userID string) string {
	if template == "" {
		template = DefaultTopicTemplate
	}
	return strings.ReplaceAll(template, "{userId}", userID)
}
