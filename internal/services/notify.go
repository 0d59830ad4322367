package services

import (
	"fmt"
	"log"

	"carriertalk/internal/models"

	"gorm.io/gorm"
)

// NotificationService records in-app notifications and hands the email copy
// to the mailer. Delivery never blocks the write path that triggered it.
type NotificationService struct {
	db     *gorm.DB
	mailer *Mailer
}

func NewNotificationService(db *gorm.DB, mailer *Mailer) *NotificationService {
	return &NotificationService{db: db, mailer: mailer}
}

// CommentReplyAsync notifies the parent comment's author about a new reply.
// Self-replies are skipped.
func (s *NotificationService) CommentReplyAsync(parentCommentID uint, actor *models.User, replyBody string) {
	go func() {
		var parent models.Comment
		if err := s.db.Preload("User").First(&parent, parentCommentID).Error; err != nil {
			log.Printf("reply notification: parent comment %d not found: %v", parentCommentID, err)
			return
		}
		if parent.UserID == actor.ID {
			return
		}

		notification := models.Notification{
			UserID:  parent.UserID,
			ActorID: &actor.ID,
			Type:    models.NotificationTypeReplyComment,
			Body:    fmt.Sprintf("%s replied to your comment on %s #%d", actor.Username, parent.TargetType, parent.TargetID),
		}
		if err := s.db.Create(&notification).Error; err != nil {
			log.Printf("reply notification for comment %d failed: %v", parentCommentID, err)
			return
		}

		if s.mailer != nil {
			s.mailer.SendReplyNotification(parent.User.Email, actor.Username, replyBody, parent.Body)
		}
	}()
}
