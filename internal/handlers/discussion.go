package handlers

import (
	"fmt"
	"net/http"
	"time"

	"carriertalk/internal/discussion"
	"carriertalk/internal/middleware"
	"carriertalk/internal/models"
	"carriertalk/internal/services"
	"carriertalk/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DiscussionHandler is the JSON presentation adapter in front of the
// discussion engine: it builds a per-request session wired to the viewer's
// store and translates outcomes to HTTP.
type DiscussionHandler struct {
	db     *gorm.DB
	cache  *utils.Cache
	rep    *services.ReputationService
	notify *services.NotificationService
}

func NewDiscussionHandler(db *gorm.DB, cache *utils.Cache, rep *services.ReputationService, notify *services.NotificationService) *DiscussionHandler {
	return &DiscussionHandler{db: db, cache: cache, rep: rep, notify: notify}
}

type authorView struct {
	ID         uint                 `json:"id"`
	Name       string               `json:"name"`
	Reputation int                  `json:"reputation"`
	Badge      discussion.BadgeTier `json:"badge"`
}

type commentView struct {
	ID         uint       `json:"id"`
	Body       string     `json:"body"`
	BodyHTML   string     `json:"body_html"`
	Author     authorView `json:"author"`
	ParentID   uint       `json:"parent_id,omitempty"`
	ReplyCount int        `json:"reply_count"`
	Upvotes    int        `json:"upvotes"`
	Downvotes  int        `json:"downvotes"`
	NetScore   int        `json:"net_score"`
	Pinned     bool       `json:"pinned"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Mine       bool       `json:"mine"`
	ViewerVote int        `json:"viewer_vote"`
}

type threadView struct {
	Parent  commentView   `json:"parent"`
	Replies []commentView `json:"replies"`
}

type createCommentInput struct {
	Body     string `json:"body" binding:"required"`
	ParentID uint   `json:"parent_id"`
}

type voteInput struct {
	Value int `json:"value" binding:"required,oneof=-1 1"`
}

// session builds a discussion session for the target in the URL, scoped to
// the current viewer.
func (h *DiscussionHandler) session(c *gin.Context) (*discussion.Session, bool) {
	targetType, err := discussion.ParseTargetType(c.Param("type"))
	if err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	targetID := utils.StringToUint(c.Param("id"))
	if targetID == 0 {
		JSONError(c, http.StatusBadRequest, "invalid target id")
		return nil, false
	}

	store := services.NewStore(h.db, middleware.CurrentUser(c), h.rep, h.notify)
	target := discussion.Target{Type: targetType, ID: targetID}
	return discussion.NewSession(target, store, store), true
}

// Threads returns the assembled discussion for one target.
func (h *DiscussionHandler) Threads(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Refresh(c.Request.Context()); err != nil {
		JSONError(c, http.StatusBadGateway, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"threads": h.threadViews(s.Threads())})
}

// CreateComment submits a top-level comment or a reply.
func (h *DiscussionHandler) CreateComment(c *gin.Context) {
	var in createCommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := s.Refresh(ctx); err != nil {
		JSONError(c, http.StatusBadGateway, err.Error())
		return
	}

	id, err := s.SubmitComment(ctx, in.Body, in.ParentID)
	if err != nil {
		JSONError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"threads": h.threadViews(s.Threads()),
	})
}

// Vote toggles the viewer's vote on one comment. The target is resolved
// from the stored comment row, so the route only needs the comment id.
func (h *DiscussionHandler) Vote(c *gin.Context) {
	var in voteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	commentID := utils.StringToUint(c.Param("id"))
	if commentID == 0 {
		JSONError(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	var row models.Comment
	if err := h.db.First(&row, commentID).Error; err != nil {
		JSONError(c, http.StatusNotFound, "no such comment")
		return
	}
	targetType, err := discussion.ParseTargetType(row.TargetType)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	store := services.NewStore(h.db, middleware.CurrentUser(c), h.rep, h.notify)
	target := discussion.Target{Type: targetType, ID: row.TargetID}
	s := discussion.NewSession(target, store, store)

	ctx := c.Request.Context()
	if err := s.Refresh(ctx); err != nil {
		JSONError(c, http.StatusBadGateway, err.Error())
		return
	}

	outcome, err := s.Vote(ctx, commentID, in.Value)
	if err != nil {
		JSONError(c, statusFor(err), err.Error())
		return
	}
	resp := gin.H{"outcome": outcome.String()}
	if voted, found := s.Comment(commentID); found {
		resp["upvotes"] = voted.Upvotes
		resp["downvotes"] = voted.Downvotes
		resp["net_score"] = voted.NetScore()
		resp["viewer_vote"] = voted.ViewerVote
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DiscussionHandler) threadViews(threads []discussion.Thread) []threadView {
	out := make([]threadView, len(threads))
	for i, t := range threads {
		view := threadView{
			Parent:  h.commentView(t.Parent),
			Replies: make([]commentView, len(t.Replies)),
		}
		for j, r := range t.Replies {
			view.Replies[j] = h.commentView(r)
		}
		out[i] = view
	}
	return out
}

func (h *DiscussionHandler) commentView(c *discussion.Comment) commentView {
	return commentView{
		ID:       c.ID,
		Body:     c.Body,
		BodyHTML: h.renderBody(c),
		Author: authorView{
			ID:         c.AuthorID,
			Name:       c.AuthorName,
			Reputation: c.AuthorReputation,
			Badge:      discussion.BadgeFor(c.AuthorReputation),
		},
		ParentID:   c.ParentID,
		ReplyCount: c.ReplyCount,
		Upvotes:    c.Upvotes,
		Downvotes:  c.Downvotes,
		NetScore:   c.NetScore(),
		Pinned:     c.Pinned,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Mine:       c.Mine,
		ViewerVote: c.ViewerVote,
	}
}

// renderBody caches sanitized HTML per comment revision; bodies are
// immutable once posted, so hits dominate.
func (h *DiscussionHandler) renderBody(c *discussion.Comment) string {
	key := fmt.Sprintf("comment:html:%d:%d", c.ID, c.UpdatedAt.UnixNano())
	if cached := h.cache.Get(key); cached != nil {
		if html, ok := cached.(string); ok {
			return html
		}
	}
	html := utils.RenderMarkdown(c.Body)
	h.cache.Set(key, html, 10*time.Minute)
	return html
}
