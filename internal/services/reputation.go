package services

import (
	"log"
	"sync"
	"time"

	"carriertalk/internal/models"

	"gorm.io/gorm"
)

// Reputation actions.
const (
	ActionCommentCreate    = "comment_created"
	ActionCommentUpvoted   = "comment_upvoted"
	ActionCommentDownvoted = "comment_downvoted"
	ActionDownvoteCast     = "downvote_cast"
)

// Points per action.
const (
	PointsCommentCreate    = 1
	PointsCommentUpvoted   = 2
	PointsCommentDownvoted = -3
	PointsDownvoteCast     = -1
)

// ReputationService keeps User.ReputationScore in step with the append-only
// reputation log. Awards apply transactionally; a background worker with a
// dedupe queue rebuilds a user's score from the log so the cached column
// cannot drift for long.
type ReputationService struct {
	db      *gorm.DB
	queue   chan uint
	pending map[uint]bool
	mu      sync.Mutex
}

func NewReputationService(db *gorm.DB) *ReputationService {
	s := &ReputationService{
		db:      db,
		queue:   make(chan uint, 1000),
		pending: make(map[uint]bool),
	}
	go s.worker()
	return s
}

// Award writes a log row and moves the cached score in one transaction.
func (s *ReputationService) Award(userID uint, amount int, action string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry := models.ReputationLog{
			UserID: userID,
			Amount: amount,
			Action: action,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("reputation_score", gorm.Expr("reputation_score + ?", amount)).
			Error
	})
	if err != nil {
		return err
	}
	s.ScheduleRecount(userID)
	return nil
}

// AwardAsync fires Award from a goroutine; failures are logged and dropped.
func (s *ReputationService) AwardAsync(userID uint, amount int, action string) {
	go func() {
		if err := s.Award(userID, amount, action); err != nil {
			log.Printf("reputation award (%s) for user %d failed: %v", action, userID, err)
		}
	}()
}

// ScheduleRecount queues a full score rebuild for a user, deduplicating
// requests already waiting.
func (s *ReputationService) ScheduleRecount(userID uint) {
	s.mu.Lock()
	if s.pending[userID] {
		s.mu.Unlock()
		return
	}
	s.pending[userID] = true
	s.mu.Unlock()

	select {
	case s.queue <- userID:
	default:
		s.mu.Lock()
		delete(s.pending, userID)
		s.mu.Unlock()
		log.Printf("reputation recount queue full, skipping user %d", userID)
	}
}

func (s *ReputationService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case userID := <-s.queue:
			batch = append(batch, userID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *ReputationService) processBatch(userIDs []uint) {
	for _, userID := range userIDs {
		s.recount(userID)

		s.mu.Lock()
		delete(s.pending, userID)
		s.mu.Unlock()
	}
}

// recount rebuilds one user's score as the sum of their log rows.
func (s *ReputationService) recount(userID uint) {
	var total int64
	if err := s.db.Model(&models.ReputationLog{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		log.Printf("reputation recount for user %d failed: %v", userID, err)
		return
	}
	if err := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("reputation_score", int(total)).Error; err != nil {
		log.Printf("reputation recount for user %d failed: %v", userID, err)
	}
}
