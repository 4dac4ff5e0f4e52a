package handler

import (
	"errors"
	"go-vidtube-api/common"
	"go-vidtube-api/model"
	"go-vidtube-api/repository"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type CommentHandler struct {
	repo repository.ICommentRepository
}

func NewCommentHandler(repo repository.ICommentRepository) *CommentHandler {
	return &CommentHandler{repo: repo}
}

// CreateComment godoc
// @Summary      Comment on a video
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        request  body  model.CreateCommentRequest  true  "Comment"
// @Success      201  {object}  model.Comment
// @Failure      400  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/v1/comments [post]
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateCommentRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	videoID, err := bson.ObjectIDFromHex(req.VideoID)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid video ID", err)
	}

	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	comment := &model.Comment{
		Content: req.Content,
		Video:   videoID,
		Owner:   userID,
	}
	if err := h.repo.CreateComment(r.Context(), comment); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create comment", err)
	}

	common.RespondJSON(w, http.StatusCreated, comment)
	return nil
}

// ListComments godoc
// @Summary      List comments for a video
// @Tags         comments
// @Produce      json
// @Param        id  path  string  true  "Video ID"
// @Success      200  {array}  model.CommentWithUser
// @Router       /api/v1/videos/{id}/comments [get]
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) *common.AppError {
	videoID, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid video ID", err)
	}

	comments, err := h.repo.GetCommentsByVideo(r.Context(), videoID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list comments", err)
	}

	common.RespondJSON(w, http.StatusOK, comments)
	return nil
}

// UpdateComment godoc
// @Summary      Edit an owned comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id       path  string                      true  "Comment ID"
// @Param        request  body  model.UpdateCommentRequest  true  "New content"
// @Success      200  {object}  model.Comment
// @Failure      404  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/v1/comments/{id} [put]
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid comment ID", err)
	}

	var req model.UpdateCommentRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	comment, err := h.repo.UpdateComment(r.Context(), id, userID, req.Content)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Deliberately the same response whether the comment is missing
			// or owned by someone else.
			return common.NewAppError(http.StatusNotFound, "Comment not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update comment", err)
	}

	common.RespondJSON(w, http.StatusOK, comment)
	return nil
}

// DeleteComment godoc
// @Summary      Delete an owned comment
// @Tags         comments
// @Produce      json
// @Param        id  path  string  true  "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/v1/comments/{id} [delete]
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid comment ID", err)
	}

	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	if err := h.repo.DeleteComment(r.Context(), id, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.NewAppError(http.StatusNotFound, "Comment not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete comment", err)
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
	return nil
}
