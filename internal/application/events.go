package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	"github.com/patientpal/patientpal-server/pkg/helpers"
	"github.com/patientpal/patientpal-server/pkg/mailer"
)

// publishProfileEvent enqueues a notification email for a profile
// lifecycle event. Publishing is fail-open: a broken broker never fails
// the request that triggered the event.
func publishProfileEvent(ctx context.Context, pub *helpers.RabbitPublisher, logger *logrus.Logger, member *entity.Member, template, profileName string) {
	if pub == nil || member == nil || member.Email == "" {
		return
	}
	job := mailer.EmailJob{
		To:       member.Email,
		Template: template,
		Data: map[string]any{
			"Name":     profileName,
			"Username": member.Username,
			"Role":     string(member.Role),
		},
	}
	if err := pub.PublishJSON(ctx, job); err != nil && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"member_id": member.ID,
			"template":  template,
		}).Warn("profile event publish failed")
	}
}
