package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"carriertalk/internal/db"
	"carriertalk/internal/middleware"
	"carriertalk/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	require.NoError(t, conn.Create(&models.Carrier{Name: "Bluegrass Freight Lines", DOTNumber: "1204567"}).Error)

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("carriertalk_session", store))
	r.Use(middleware.LoadUser(conn))
	RegisterRoutes(r, conn, nil, nil)
	return r, conn
}

type client struct {
	t       *testing.T
	r       *gin.Engine
	cookies []*http.Cookie
	ip      string
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.ip != "" {
		req.RemoteAddr = c.ip + ":12345"
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	if got := w.Result().Cookies(); len(got) > 0 {
		c.cookies = got
	}
	return w
}

func signup(t *testing.T, c *client, username string) {
	t.Helper()
	w := c.do("POST", "/api/signup", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

type threadsResponse struct {
	Threads []struct {
		Parent struct {
			ID       uint   `json:"id"`
			Body     string `json:"body"`
			BodyHTML string `json:"body_html"`
			Author   struct {
				Name  string `json:"name"`
				Badge string `json:"badge"`
			} `json:"author"`
			Upvotes    int  `json:"upvotes"`
			NetScore   int  `json:"net_score"`
			Mine       bool `json:"mine"`
			ViewerVote int  `json:"viewer_vote"`
		} `json:"parent"`
		Replies []struct {
			ID       uint `json:"id"`
			ParentID uint `json:"parent_id"`
		} `json:"replies"`
	} `json:"threads"`
}

func TestDiscussionFlow(t *testing.T) {
	r, _ := setupServer(t)

	dan := &client{t: t, r: r, ip: "10.1.0.1"}
	signup(t, dan, "dispatcher_dan")

	// Empty discussion reads fine.
	w := dan.do("GET", "/api/discussions/carrier_general/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var empty threadsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	assert.Empty(t, empty.Threads)

	// Top-level comment.
	w = dan.do("POST", "/api/discussions/carrier_general/1/comments", gin.H{
		"body": "ran two loads for them, **paid on time**",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID      uint `json:"id"`
		Threads []struct {
			Parent struct {
				ID uint `json:"id"`
			} `json:"parent"`
		} `json:"threads"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.Len(t, created.Threads, 1)

	// Reply from another member.
	olga := &client{t: t, r: r, ip: "10.1.0.2"}
	signup(t, olga, "owner_op_olga")
	w = olga.do("POST", "/api/discussions/carrier_general/1/comments", gin.H{
		"body":      "same here, quick detention pay",
		"parent_id": created.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Threads reflect the reply; markdown got rendered and sanitized.
	w = dan.do("GET", "/api/discussions/carrier_general/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view threadsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Threads, 1)
	assert.True(t, view.Threads[0].Parent.Mine)
	assert.Equal(t, "dispatcher_dan", view.Threads[0].Parent.Author.Name)
	assert.Equal(t, "new", view.Threads[0].Parent.Author.Badge)
	assert.Contains(t, view.Threads[0].Parent.BodyHTML, "<strong>paid on time</strong>")
	require.Len(t, view.Threads[0].Replies, 1)
	assert.Equal(t, created.ID, view.Threads[0].Replies[0].ParentID)
}

func TestVoteToggleOverHTTP(t *testing.T) {
	r, _ := setupServer(t)

	dan := &client{t: t, r: r, ip: "10.2.0.1"}
	signup(t, dan, "dispatcher_dan")
	w := dan.do("POST", "/api/discussions/carrier_general/1/comments", gin.H{
		"body": "good rates on reefer lanes",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	olga := &client{t: t, r: r, ip: "10.2.0.2"}
	signup(t, olga, "owner_op_olga")

	votePath := fmt.Sprintf("/api/comments/%d/vote", created.ID)
	w = olga.do("POST", votePath, gin.H{"value": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var vote struct {
		Outcome    string `json:"outcome"`
		Upvotes    int    `json:"upvotes"`
		Downvotes  int    `json:"downvotes"`
		ViewerVote int    `json:"viewer_vote"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vote))
	assert.Equal(t, "applied", vote.Outcome)
	assert.Equal(t, 1, vote.Upvotes)
	assert.Equal(t, 1, vote.ViewerVote)

	// Same value again toggles the vote off.
	w = olga.do("POST", votePath, gin.H{"value": 1})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vote))
	assert.Equal(t, "applied", vote.Outcome)
	assert.Equal(t, 0, vote.Upvotes)
	assert.Equal(t, 0, vote.ViewerVote)

	// Anonymous voting is rejected before any engine logic runs.
	anon := &client{t: t, r: r, ip: "10.2.0.3"}
	w = anon.do("POST", votePath, gin.H{"value": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCommentValidationOverHTTP(t *testing.T) {
	r, _ := setupServer(t)

	dan := &client{t: t, r: r, ip: "10.3.0.1"}
	signup(t, dan, "dispatcher_dan")

	// Unknown target type never reaches the engine.
	w := dan.do("GET", "/api/discussions/post/1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Too-short body.
	w = dan.do("POST", "/api/discussions/carrier_general/1/comments", gin.H{"body": "ok"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nonexistent carrier. Fresh IP so the comment limiter stays out of the
	// way.
	dan.ip = "10.3.0.99"
	w = dan.do("POST", "/api/discussions/carrier_general/999/comments", gin.H{"body": "who is this"})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	// Unauthenticated submissions bounce at the middleware.
	anon := &client{t: t, r: r, ip: "10.3.0.2"}
	w = anon.do("POST", "/api/discussions/carrier_general/1/comments", gin.H{"body": "drive-by comment"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCommentRateLimitPerIP(t *testing.T) {
	r, _ := setupServer(t)

	dan := &client{t: t, r: r, ip: "10.4.0.1"}
	signup(t, dan, "dispatcher_dan")

	w := dan.do("POST", "/api/discussions/carrier_general/1/comments", gin.H{"body": "first comment goes through"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Second post from the same IP inside the refill window.
	w = dan.do("POST", "/api/discussions/carrier_general/1/comments", gin.H{"body": "rapid second comment"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
