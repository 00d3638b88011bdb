// Package services holds the business rules of the LMS:
//   - AuthService: registration and login
//   - CourseService: course registry
//   - EnrollmentService: enrollment ledger
//   - AssignmentService: assignment registry
//   - SubmissionService: submission ledger and grading
package services

import (
	"context"
	"strings"

	"github.com/yigit/lms/internal/pkg/events"
	"github.com/yigit/lms/internal/pkg/logger"
)

// normalizeEmail trims and lower-cases an address before storage or lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// publish sends an event after a committed write. Failures are logged only.
func publish(ctx context.Context, publisher events.Publisher, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn().Err(err).Str("type", event.Type).Str("key", event.Key).Msg("Failed to publish event")
	}
}
