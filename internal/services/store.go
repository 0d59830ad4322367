package services

import (
	"context"
	"errors"
	"fmt"

	"carriertalk/internal/discussion"
	"carriertalk/internal/models"

	"gorm.io/gorm"
)

// ErrTargetNotFound means the discussion target row does not exist.
var ErrTargetNotFound = errors.New("discussion target not found")

// Store implements the discussion engine's fetch and persistence gateways
// over GORM, scoped to one viewer. viewer may be nil for anonymous reads;
// writes then fail with discussion.ErrAuthenticationRequired before any
// engine logic runs.
type Store struct {
	db     *gorm.DB
	viewer *models.User
	rep    *ReputationService
	notify *NotificationService
}

func NewStore(db *gorm.DB, viewer *models.User, rep *ReputationService, notify *NotificationService) *Store {
	return &Store{db: db, viewer: viewer, rep: rep, notify: notify}
}

// FetchComments loads the flat collection for one target, newest first,
// pre-joined with author fields, the viewer's own votes and current
// counters.
func (s *Store) FetchComments(ctx context.Context, target discussion.Target) ([]*discussion.Comment, error) {
	var rows []models.Comment
	if err := s.db.WithContext(ctx).Preload("User").
		Where("target_type = ? AND target_id = ?", string(target.Type), target.ID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	viewerVotes := make(map[uint]int)
	if s.viewer != nil && len(rows) > 0 {
		ids := make([]uint, len(rows))
		for i, r := range rows {
			ids[i] = r.ID
		}
		var votes []models.Vote
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND comment_id IN ?", s.viewer.ID, ids).
			Find(&votes).Error; err != nil {
			return nil, fmt.Errorf("load viewer votes: %w", err)
		}
		for _, v := range votes {
			viewerVotes[v.CommentID] = v.Value
		}
	}

	out := make([]*discussion.Comment, len(rows))
	for i, r := range rows {
		var parentID uint
		if r.ParentID != nil {
			parentID = *r.ParentID
		}
		out[i] = &discussion.Comment{
			ID:               r.ID,
			Target:           target,
			Body:             r.Body,
			AuthorID:         r.UserID,
			AuthorName:       r.User.Username,
			AuthorReputation: r.User.ReputationScore,
			ParentID:         parentID,
			ReplyCount:       r.ReplyCount,
			Upvotes:          r.Upvotes,
			Downvotes:        r.Downvotes,
			Pinned:           r.Pinned,
			CreatedAt:        r.CreatedAt,
			UpdatedAt:        r.UpdatedAt,
			Mine:             s.viewer != nil && s.viewer.ID == r.UserID,
			ViewerVote:       viewerVotes[r.ID],
		}
	}
	return out, nil
}

// SubmitComment stores a validated comment. Replies bump the parent's
// reply_count in the same transaction; the parent must exist, belong to the
// same target and be top-level (backstop for the session's early check).
func (s *Store) SubmitComment(ctx context.Context, target discussion.Target, body string, parentID uint) (uint, error) {
	if s.viewer == nil {
		return 0, discussion.ErrAuthenticationRequired
	}
	if err := s.targetExists(ctx, target); err != nil {
		return 0, err
	}

	comment := models.Comment{
		TargetType: string(target.Type),
		TargetID:   target.ID,
		UserID:     s.viewer.ID,
		Body:       body,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if parentID != 0 {
			var parent models.Comment
			if err := tx.First(&parent, parentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return discussion.ErrParentNotTopLevel
				}
				return err
			}
			if parent.ParentID != nil || parent.TargetType != comment.TargetType || parent.TargetID != comment.TargetID {
				return discussion.ErrParentNotTopLevel
			}
			pid := parentID
			comment.ParentID = &pid
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		if parentID != 0 {
			if err := tx.Model(&models.Comment{}).Where("id = ?", parentID).
				UpdateColumn("reply_count", gorm.Expr("reply_count + ?", 1)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.rep != nil {
		s.rep.AwardAsync(s.viewer.ID, PointsCommentCreate, ActionCommentCreate)
	}
	if s.notify != nil && parentID != 0 {
		s.notify.CommentReplyAsync(parentID, s.viewer, body)
	}
	return comment.ID, nil
}

// SubmitVote records the viewer's vote value for a comment and returns the
// recounted authoritative counters. Value 0 clears the vote row.
func (s *Store) SubmitVote(ctx context.Context, commentID uint, value int) (discussion.VoteCounts, error) {
	if s.viewer == nil {
		return discussion.VoteCounts{}, discussion.ErrAuthenticationRequired
	}
	if value != -1 && value != 0 && value != 1 {
		return discussion.VoteCounts{}, fmt.Errorf("invalid vote value %d", value)
	}

	var counts discussion.VoteCounts
	var comment models.Comment
	var hadVote bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, commentID).Error; err != nil {
			return fmt.Errorf("load comment %d: %w", commentID, err)
		}

		var existing models.Vote
		err := tx.Where("user_id = ? AND comment_id = ?", s.viewer.ID, commentID).First(&existing).Error
		switch {
		case err == nil:
			hadVote = true
			if value == 0 {
				if err := tx.Delete(&existing).Error; err != nil {
					return err
				}
			} else if existing.Value != value {
				if err := tx.Model(&existing).Update("value", value).Error; err != nil {
					return err
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if value != 0 {
				vote := models.Vote{UserID: s.viewer.ID, CommentID: commentID, Value: value}
				if err := tx.Create(&vote).Error; err != nil {
					return err
				}
			}
		default:
			return err
		}

		// Counters are recounted from vote rows, never trusted from the
		// caller's optimistic guess.
		var up, down int64
		if err := tx.Model(&models.Vote{}).Where("comment_id = ? AND value = 1", commentID).Count(&up).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Vote{}).Where("comment_id = ? AND value = -1", commentID).Count(&down).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumns(map[string]interface{}{"upvotes": up, "downvotes": down}).Error; err != nil {
			return err
		}
		counts = discussion.VoteCounts{Upvotes: int(up), Downvotes: int(down)}
		return nil
	})
	if err != nil {
		return discussion.VoteCounts{}, err
	}

	// First-time votes move the author's reputation; clears and switches
	// leave it alone, matching how points were always awarded one-way.
	if s.rep != nil && !hadVote && value != 0 && comment.UserID != s.viewer.ID {
		switch value {
		case 1:
			s.rep.AwardAsync(comment.UserID, PointsCommentUpvoted, ActionCommentUpvoted)
		case -1:
			s.rep.AwardAsync(comment.UserID, PointsCommentDownvoted, ActionCommentDownvoted)
			s.rep.AwardAsync(s.viewer.ID, PointsDownvoteCast, ActionDownvoteCast)
		}
	}
	return counts, nil
}

func (s *Store) targetExists(ctx context.Context, target discussion.Target) error {
	var count int64
	q := s.db.WithContext(ctx)
	switch target.Type {
	case discussion.TargetRateSubmission:
		q = q.Model(&models.RateSubmission{})
	case discussion.TargetInsuranceInfo:
		q = q.Model(&models.InsuranceInfo{})
	case discussion.TargetCarrierGeneral, discussion.TargetSafetyConcern, discussion.TargetCarrierRating:
		q = q.Model(&models.Carrier{})
	default:
		return fmt.Errorf("unknown target type %q", target.Type)
	}
	if err := q.Where("id = ?", target.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrTargetNotFound, target)
	}
	return nil
}
