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

type SubscriptionHandler struct {
	repo repository.ISubscriptionRepository
}

func NewSubscriptionHandler(repo repository.ISubscriptionRepository) *SubscriptionHandler {
	return &SubscriptionHandler{repo: repo}
}

// Subscribe godoc
// @Summary      Subscribe to a channel
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request  body  model.SubscriptionRequest  true  "Channel"
// @Success      201  {object}  model.Subscription
// @Failure      400  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/v1/subscriptions [post]
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SubscriptionRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	channelID, err := bson.ObjectIDFromHex(req.ChannelID)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid channel ID", err)
	}

	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	sub := &model.Subscription{Channel: channelID, Subscriber: userID}
	if err := h.repo.CreateSubscription(r.Context(), sub); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return common.NewAppError(http.StatusBadRequest, "Already subscribed to this channel", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not subscribe", err)
	}

	common.RespondJSON(w, http.StatusCreated, sub)
	return nil
}

// Unsubscribe godoc
// @Summary      Unsubscribe from a channel
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request  body  model.SubscriptionRequest  true  "Channel"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/v1/subscriptions [delete]
func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SubscriptionRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	channelID, err := bson.ObjectIDFromHex(req.ChannelID)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid channel ID", err)
	}

	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	if err := h.repo.DeleteSubscription(r.Context(), channelID, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.NewAppError(http.StatusNotFound, "Subscription not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not unsubscribe", err)
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Unsubscribed"})
	return nil
}

// ListSubscriptions godoc
// @Summary      List the caller's subscriptions
// @Tags         subscriptions
// @Produce      json
// @Success      200  {array}  model.SubscriptionWithChannel
// @Security     BearerAuth
// @Router       /api/v1/subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := UserIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	subs, err := h.repo.GetSubscriptionsBySubscriber(r.Context(), userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list subscriptions", err)
	}

	common.RespondJSON(w, http.StatusOK, subs)
	return nil
}
