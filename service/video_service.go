package service

import (
	"context"
	"encoding/json"
	"fmt"
	"go-vidtube-api/model"
	"go-vidtube-api/repository"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	videoStatsCacheKey = "videos:stats"
	videoCacheTTL      = 10 * time.Minute
)

// VideoService wraps the video repository with a cache-aside layer for the
// read-heavy listing and stats queries.
type VideoService struct {
	repo  repository.IVideoRepository
	cache ICacheClient
}

func NewVideoService(repo repository.IVideoRepository, cache ICacheClient) *VideoService {
	return &VideoService{repo: repo, cache: cache}
}

func listCacheKey(f repository.VideoFilter) string {
	return fmt.Sprintf("videos:list:%s:%d:%s:%d:%d", f.Category, f.MinViews, f.SortBy, f.Page, f.Limit)
}

// CreateVideo stores the video metadata and invalidates the stats cache.
// Listing entries are keyed by their full query and rely on TTL expiry.
func (s *VideoService) CreateVideo(ctx context.Context, video *model.Video) error {
	if err := s.repo.CreateVideo(ctx, video); err != nil {
		return err
	}
	s.cache.Del(ctx, videoStatsCacheKey)
	return nil
}

// ListVideos serves the filtered listing, utilizing a cache-aside strategy.
func (s *VideoService) ListVideos(ctx context.Context, filter repository.VideoFilter) ([]*model.Video, error) {
	cacheKey := listCacheKey(filter)

	// 1. Try to get data from the cache.
	cached, err := s.cache.Get(ctx, cacheKey).Result()
	if err == nil {
		var videos []*model.Video
		if err := json.Unmarshal([]byte(cached), &videos); err == nil {
			return videos, nil
		}
	}

	// 2. Cache miss. Fetch from the database.
	videos, err := s.repo.ListVideos(ctx, filter)
	if err != nil {
		return nil, err
	}

	// 3. Store the result for future requests.
	if data, err := json.Marshal(videos); err == nil {
		s.cache.Set(ctx, cacheKey, data, videoCacheTTL)
	}

	return videos, nil
}

// GetVideoStats serves the per-category aggregation, cached under a single key.
func (s *VideoService) GetVideoStats(ctx context.Context) ([]*model.VideoStats, error) {
	cached, err := s.cache.Get(ctx, videoStatsCacheKey).Result()
	if err == nil {
		var stats []*model.VideoStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return stats, nil
		}
	}

	stats, err := s.repo.GetVideoStats(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		s.cache.Set(ctx, videoStatsCacheKey, data, videoCacheTTL)
	}

	return stats, nil
}

// GetVideo fetches a single video and counts the view. Watch counts do not
// go through the cache; a fetch must always reach the store.
func (s *VideoService) GetVideo(ctx context.Context, id bson.ObjectID) (*model.Video, error) {
	return s.repo.IncrementViews(ctx, id)
}

// DeleteVideo removes an owned video and invalidates the stats cache.
func (s *VideoService) DeleteVideo(ctx context.Context, id, owner bson.ObjectID) error {
	if err := s.repo.DeleteVideo(ctx, id, owner); err != nil {
		return err
	}
	s.cache.Del(ctx, videoStatsCacheKey)
	return nil
}
