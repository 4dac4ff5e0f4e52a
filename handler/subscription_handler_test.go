// file: handler/subscription_handler_test.go

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"go-vidtube-api/common"
	"go-vidtube-api/model"
	"go-vidtube-api/repository"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// stubSubscriptionRepo enforces the unique (channel, subscriber) pair.
type stubSubscriptionRepo struct {
	subs map[[2]bson.ObjectID]bool
}

func newStubSubscriptionRepo() *stubSubscriptionRepo {
	return &stubSubscriptionRepo{subs: map[[2]bson.ObjectID]bool{}}
}

func (s *stubSubscriptionRepo) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	key := [2]bson.ObjectID{sub.Channel, sub.Subscriber}
	if s.subs[key] {
		return repository.ErrDuplicateKey
	}
	sub.ID = bson.NewObjectID()
	s.subs[key] = true
	return nil
}

func (s *stubSubscriptionRepo) DeleteSubscription(ctx context.Context, channel, subscriber bson.ObjectID) error {
	key := [2]bson.ObjectID{channel, subscriber}
	if !s.subs[key] {
		return mongo.ErrNoDocuments
	}
	delete(s.subs, key)
	return nil
}

func (s *stubSubscriptionRepo) GetSubscriptionsBySubscriber(ctx context.Context, subscriber bson.ObjectID) ([]*model.SubscriptionWithChannel, error) {
	return []*model.SubscriptionWithChannel{}, nil
}

func doSubscription(t *testing.T, handle func(http.ResponseWriter, *http.Request) *common.AppError, method string, channelID, userID bson.ObjectID) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(model.SubscriptionRequest{ChannelID: channelID.Hex()})
	require.NoError(t, err)

	req := httptest.NewRequest(method, "/api/v1/subscriptions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID.Hex()))
	rec := httptest.NewRecorder()

	if appErr := handle(rec, req); appErr != nil {
		appErr.Send(rec)
	}
	return rec
}

func TestSubscriptionHandler(t *testing.T) {
	channelID := bson.NewObjectID()
	userID := bson.NewObjectID()

	t.Run("subscribing twice is rejected", func(t *testing.T) {
		h := NewSubscriptionHandler(newStubSubscriptionRepo())

		first := doSubscription(t, h.Subscribe, http.MethodPost, channelID, userID)
		assert.Equal(t, http.StatusCreated, first.Code)

		second := doSubscription(t, h.Subscribe, http.MethodPost, channelID, userID)
		assert.Equal(t, http.StatusBadRequest, second.Code)
		assert.Contains(t, second.Body.String(), "Already subscribed")
	})

	t.Run("unsubscribing without a subscription is not found", func(t *testing.T) {
		h := NewSubscriptionHandler(newStubSubscriptionRepo())

		rec := doSubscription(t, h.Unsubscribe, http.MethodDelete, channelID, userID)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("subscribe then unsubscribe restores the initial state", func(t *testing.T) {
		repo := newStubSubscriptionRepo()
		h := NewSubscriptionHandler(repo)

		doSubscription(t, h.Subscribe, http.MethodPost, channelID, userID)
		rec := doSubscription(t, h.Unsubscribe, http.MethodDelete, channelID, userID)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, repo.subs)
	})
}
