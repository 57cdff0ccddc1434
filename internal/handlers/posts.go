package handlers

import (
	"net/http"

	"postboard/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePostRequest is the payload for a new post.
type CreatePostRequest struct {
	Title string `json:"title" binding:"required" example:"Hello"`
	Body  string `json:"body" binding:"required" example:"First post"`
}

// UpdatePostRequest replaces only the fields that are present and non-empty.
type UpdatePostRequest struct {
	Title string `json:"title,omitempty" example:"Hello again"`
	Body  string `json:"body,omitempty" example:"Edited"`
}

// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      CreatePostRequest  true  "Post payload"
// @Success      200   {object}  models.Post
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/posts [post]
// @Security     TokenAuth
func (h *Handler) createPost(c *gin.Context) {
	var req CreatePostRequest
	if ok := h.bindJSON(c, &req); !ok {
		return
	}

	userID := currentUserID(c)
	p, err := h.services.Posts.Create(c.Request.Context(), userID, service.PostInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		h.respondError(c, err, "post_create_failed", "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      List posts
// @Description  All posts, newest first.
// @Tags         posts
// @Produce      json
// @Success      200  {array}   models.Post
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/posts [get]
// @Security     TokenAuth
func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.services.Posts.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "post_list_failed")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary      Get post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  models.Post
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/posts/{id} [get]
// @Security     TokenAuth
func (h *Handler) getPost(c *gin.Context) {
	id := c.Param("id")
	p, err := h.services.Posts.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "post_get_failed", "post_id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Update post
// @Description  Owner only. Omitted or empty fields keep their current value.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Post ID"
// @Param        body  body      UpdatePostRequest  true  "Fields to replace"
// @Success      200   {object}  models.Post
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/posts/{id} [put]
// @Security     TokenAuth
func (h *Handler) updatePost(c *gin.Context) {
	id, userID := c.Param("id"), currentUserID(c)

	// ownership is decided before the body is looked at
	if err := h.services.Posts.Authorize(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, err, "post_update_failed", "post_id", id, "user_id", userID)
		return
	}

	var req UpdatePostRequest
	if ok := h.bindJSON(c, &req); !ok {
		return
	}

	p, err := h.services.Posts.Update(c.Request.Context(), userID, id, service.PostInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		h.respondError(c, err, "post_update_failed", "post_id", id, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Delete post
// @Description  Owner only. The post is removed permanently.
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/posts/{id} [delete]
// @Security     TokenAuth
func (h *Handler) deletePost(c *gin.Context) {
	id, userID := c.Param("id"), currentUserID(c)
	if err := h.services.Posts.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, err, "post_delete_failed", "post_id", id, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: msgPostRemoved})
}
