package httpHandler

import (
	"net/http"

	"social-server/handlers/middleware"
	"social-server/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	posts    *usecases.PostUseCase
	timeline *usecases.TimelineUseCase
	feed     *usecases.FeedUseCase
	log      *zap.Logger
}

func NewPostHandler(posts *usecases.PostUseCase, timeline *usecases.TimelineUseCase, feed *usecases.FeedUseCase, log *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, timeline: timeline, feed: feed, log: orNop(log)}
}

// MessageRequest is the body of POST /posts and POST /dm.
type MessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), middleware.UserID(c), req.ReceiverID, req.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost handles DELETE /posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.posts.DeletePost(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// GetFeed handles GET /thefeed/:userId
func (h *PostHandler) GetFeed(c *gin.Context) {
	feed, err := h.feed.GetFeed(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// GetTimeline handles GET /users/:userId/timeline
func (h *PostHandler) GetTimeline(c *gin.Context) {
	timeline, err := h.timeline.GetTimelineViews(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, timeline)
}
