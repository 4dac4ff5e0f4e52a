package handler

import (
	"errors"
	"go-vidtube-api/common"
	"go-vidtube-api/model"
	"go-vidtube-api/repository"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type LikeHandler struct {
	repo repository.ILikeRepository
}

func NewLikeHandler(repo repository.ILikeRepository) *LikeHandler {
	return &LikeHandler{repo: repo}
}

// ToggleLike godoc
// @Summary      Like or unlike a video
// @Description  Removes the caller's like if present, creates it otherwise
// @Tags         likes
// @Accept       json
// @Produce      json
// @Param        request  body  model.ToggleLikeRequest  true  "Video to toggle"
// @Success      200  {object}  map[string]string
// @Success      201  {object}  model.Like
// @Security     BearerAuth
// @Router       /api/v1/likes/toggle [post]
func (h *LikeHandler) ToggleLike(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ToggleLikeRequest
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

	removed, err := h.repo.DeleteLike(r.Context(), videoID, userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not toggle like", err)
	}
	if removed {
		common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Video unliked"})
		return nil
	}

	like := &model.Like{Video: videoID, Owner: userID}
	if err := h.repo.CreateLike(r.Context(), like); err != nil {
		// A concurrent like between the delete and the insert hits the
		// unique index; treat it as already liked.
		if errors.Is(err, repository.ErrDuplicateKey) {
			common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Video already liked"})
			return nil
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not toggle like", err)
	}

	common.RespondJSON(w, http.StatusCreated, like)
	return nil
}

// CountLikes godoc
// @Summary      Total likes for a video
// @Tags         likes
// @Produce      json
// @Param        id  path  string  true  "Video ID"
// @Success      200  {object}  map[string]int64
// @Router       /api/v1/videos/{id}/likes [get]
func (h *LikeHandler) CountLikes(w http.ResponseWriter, r *http.Request) *common.AppError {
	videoID, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid video ID", err)
	}

	total, err := h.repo.CountLikesByVideo(r.Context(), videoID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not count likes", err)
	}

	common.RespondJSON(w, http.StatusOK, map[string]int64{"total_likes": total})
	return nil
}
