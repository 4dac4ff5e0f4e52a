package handler

import (
	"errors"
	"go-vidtube-api/common"
	"go-vidtube-api/logger"
	"go-vidtube-api/model"
	"go-vidtube-api/repository"
	"go-vidtube-api/service"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type VideoHandler struct {
	service  *service.VideoService
	uploader service.IUploader
}

func NewVideoHandler(service *service.VideoService, uploader service.IUploader) *VideoHandler {
	return &VideoHandler{service: service, uploader: uploader}
}

// CreateVideo godoc
// @Summary      Upload a new video
// @Description  Stores the video file and thumbnail, then creates the metadata document
// @Tags         videos
// @Accept       mpfd
// @Produce      json
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        category     formData  string  true   "Category"
// @Param        videoFile    formData  file    true   "Video file"
// @Param        thumbnail    formData  file    true   "Thumbnail image"
// @Success      201  {object}  model.Video
// @Failure      400  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/v1/videos [post]
func (h *VideoHandler) CreateVideo(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := r.ParseMultipartForm(512 << 20); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid multipart form", err)
	}

	req := model.CreateVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}
	if !common.ValidateStruct(w, &req) {
		return nil
	}

	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	videoFile, videoHeader, err := r.FormFile("videoFile")
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Video file is required", err)
	}
	defer videoFile.Close()

	thumbFile, thumbHeader, err := r.FormFile("thumbnail")
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Thumbnail is required", err)
	}
	defer thumbFile.Close()

	log := logger.Log.WithFields(logrus.Fields{
		"user_id": userID.Hex(),
		"title":   req.Title,
	})
	log.Info("Video upload request received")

	videoURL, err := h.uploader.Upload(r.Context(), videoFile, videoHeader.Header.Get("Content-Type"), "videos")
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not store video file", err)
	}
	thumbURL, err := h.uploader.Upload(r.Context(), thumbFile, thumbHeader.Header.Get("Content-Type"), "thumbnails")
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not store thumbnail", err)
	}

	video := &model.Video{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		VideoFile:   videoURL,
		Thumbnail:   thumbURL,
		IsPublished: true,
		Owner:       userID,
	}
	if err := h.service.CreateVideo(r.Context(), video); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create video", err)
	}

	common.RespondJSON(w, http.StatusCreated, video)
	return nil
}

// ListVideos godoc
// @Summary      List videos
// @Description  Filtered, sorted and paginated video listing
// @Tags         videos
// @Produce      json
// @Param        category  query  string  false  "Category filter"
// @Param        minViews  query  int     false  "Minimum view count"
// @Param        sortBy    query  string  false  "Sort field, '-' prefix for descending"
// @Param        page      query  int     false  "Page (1-based)"
// @Param        limit     query  int     false  "Page size"
// @Success      200  {array}  model.Video
// @Router       /api/v1/videos [get]
func (h *VideoHandler) ListVideos(w http.ResponseWriter, r *http.Request) *common.AppError {
	q := r.URL.Query()

	minViews, _ := strconv.ParseInt(q.Get("minViews"), 10, 64)
	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	filter := repository.VideoFilter{
		Category: q.Get("category"),
		MinViews: minViews,
		SortBy:   q.Get("sortBy"),
		Page:     page,
		Limit:    limit,
	}

	videos, err := h.service.ListVideos(r.Context(), filter)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list videos", err)
	}

	common.RespondJSON(w, http.StatusOK, videos)
	return nil
}

// GetVideoStats godoc
// @Summary      Per-category video statistics
// @Tags         videos
// @Produce      json
// @Success      200  {array}  model.VideoStats
// @Router       /api/v1/videos/stats [get]
func (h *VideoHandler) GetVideoStats(w http.ResponseWriter, r *http.Request) *common.AppError {
	stats, err := h.service.GetVideoStats(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not compute video stats", err)
	}

	common.RespondJSON(w, http.StatusOK, stats)
	return nil
}

// GetVideo godoc
// @Summary      Get a single video
// @Description  Fetches a video and counts the view
// @Tags         videos
// @Produce      json
// @Param        id  path  string  true  "Video ID"
// @Success      200  {object}  model.Video
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/videos/{id} [get]
func (h *VideoHandler) GetVideo(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid video ID", err)
	}

	video, err := h.service.GetVideo(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.NewAppError(http.StatusNotFound, "Video not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load video", err)
	}

	common.RespondJSON(w, http.StatusOK, video)
	return nil
}

// DeleteVideo godoc
// @Summary      Delete an owned video
// @Tags         videos
// @Produce      json
// @Param        id  path  string  true  "Video ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/v1/videos/{id} [delete]
func (h *VideoHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid video ID", err)
	}

	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeleteVideo(r.Context(), id, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.NewAppError(http.StatusNotFound, "Video not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete video", err)
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Video deleted"})
	return nil
}
