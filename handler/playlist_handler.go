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

type PlaylistHandler struct {
	repo repository.IPlaylistRepository
}

func NewPlaylistHandler(repo repository.IPlaylistRepository) *PlaylistHandler {
	return &PlaylistHandler{repo: repo}
}

// CreatePlaylist godoc
// @Summary      Create a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Param        request  body  model.CreatePlaylistRequest  true  "Playlist"
// @Success      201  {object}  model.Playlist
// @Failure      400  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/v1/playlists [post]
func (h *PlaylistHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreatePlaylistRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	videos := make([]bson.ObjectID, 0, len(req.Videos))
	for _, raw := range req.Videos {
		id, err := bson.ObjectIDFromHex(raw)
		if err != nil {
			return common.NewAppError(http.StatusBadRequest, "Invalid video ID in playlist", err)
		}
		videos = append(videos, id)
	}

	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	playlist := &model.Playlist{
		Name:   req.Name,
		Videos: videos,
		Owner:  userID,
	}
	if err := h.repo.CreatePlaylist(r.Context(), playlist); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create playlist", err)
	}

	common.RespondJSON(w, http.StatusCreated, playlist)
	return nil
}

// ListPlaylists godoc
// @Summary      List the caller's playlists
// @Tags         playlists
// @Produce      json
// @Success      200  {array}  model.Playlist
// @Security     BearerAuth
// @Router       /api/v1/playlists [get]
func (h *PlaylistHandler) ListPlaylists(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	playlists, err := h.repo.GetPlaylistsByOwner(r.Context(), userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list playlists", err)
	}

	common.RespondJSON(w, http.StatusOK, playlists)
	return nil
}

// AddVideo godoc
// @Summary      Add a video to an owned playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Param        request  body  model.AddPlaylistVideoRequest  true  "Playlist and video"
// @Success      200  {object}  model.Playlist
// @Failure      404  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/v1/playlists/videos [post]
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.AddPlaylistVideoRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	playlistID, err := bson.ObjectIDFromHex(req.PlaylistID)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid playlist ID", err)
	}
	videoID, err := bson.ObjectIDFromHex(req.VideoID)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid video ID", err)
	}

	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	playlist, err := h.repo.AddVideo(r.Context(), playlistID, userID, videoID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.NewAppError(http.StatusNotFound, "Playlist not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update playlist", err)
	}

	common.RespondJSON(w, http.StatusOK, playlist)
	return nil
}

// DeletePlaylist godoc
// @Summary      Delete an owned playlist
// @Tags         playlists
// @Produce      json
// @Param        id  path  string  true  "Playlist ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/v1/playlists/{id} [delete]
func (h *PlaylistHandler) DeletePlaylist(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid playlist ID", err)
	}

	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	if err := h.repo.DeletePlaylist(r.Context(), id, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.NewAppError(http.StatusNotFound, "Playlist not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete playlist", err)
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Playlist deleted"})
	return nil
}
