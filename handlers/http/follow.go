package httpHandler

import (
	"errors"
	"io"
	"net/http"

	"social-server/handlers/middleware"
	"social-server/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FollowHandler struct {
	useCase *usecases.FollowUseCase
	log     *zap.Logger
}

func NewFollowHandler(useCase *usecases.FollowUseCase, log *zap.Logger) *FollowHandler {
	return &FollowHandler{useCase: useCase, log: orNop(log)}
}

// FollowRequest names the edge to add or remove. FollowerID may be omitted;
// when present it must be the caller.
type FollowRequest struct {
	FollowerID string `json:"followerId"`
	FolloweeID string `json:"followeeId"`
}

// Follow handles POST /follow
func (h *FollowHandler) Follow(c *gin.Context) {
	follower, req, ok := h.bindEdge(c)
	if !ok {
		return
	}
	if err := h.useCase.Follow(c.Request.Context(), follower, req.FolloweeID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Followed"})
}

// Unfollow handles DELETE /follow
func (h *FollowHandler) Unfollow(c *gin.Context) {
	follower, req, ok := h.bindEdge(c)
	if !ok {
		return
	}
	if err := h.useCase.Unfollow(c.Request.Context(), follower, req.FolloweeID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

// GetFollows handles GET /follow with ?id= or a {"id"} body; the caller by default.
func (h *FollowHandler) GetFollows(c *gin.Context) {
	id, ok := h.targetID(c)
	if !ok {
		return
	}
	ids, err := h.useCase.GetFollows(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

// GetFollowers handles GET /follow/followers
func (h *FollowHandler) GetFollowers(c *gin.Context) {
	id, ok := h.targetID(c)
	if !ok {
		return
	}
	ids, err := h.useCase.GetFollowers(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

func (h *FollowHandler) bindEdge(c *gin.Context) (string, FollowRequest, bool) {
	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return "", req, false
	}
	caller := middleware.UserID(c)
	if req.FollowerID != "" && req.FollowerID != caller {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage your own follows"})
		return "", req, false
	}
	return caller, req, true
}

func (h *FollowHandler) targetID(c *gin.Context) (string, bool) {
	if id := c.Query("id"); id != "" {
		return id, true
	}
	var body struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c)
		return "", false
	}
	if body.ID != "" {
		return body.ID, true
	}
	return middleware.UserID(c), true
}
