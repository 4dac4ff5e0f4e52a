package router

import (
	"go-vidtube-api/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewRouter wires every route. Protected routes go through authMW, which
// verifies the access token before the handler runs.
func NewRouter(
	userHandler *handler.UserHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
	playlistHandler *handler.PlaylistHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	authMW func(http.Handler) http.Handler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler())

	// Users / sessions
	mux.Handle("POST /api/v1/users/register", handler.ErrorHandlingMiddleware(userHandler.Register))
	mux.Handle("POST /api/v1/users/login", handler.ErrorHandlingMiddleware(userHandler.Login))
	mux.Handle("POST /api/v1/users/refresh-token", handler.ErrorHandlingMiddleware(userHandler.Refresh))
	mux.Handle("POST /api/v1/users/logout", handler.ErrorHandlingMiddleware(userHandler.Logout))
	mux.Handle("PUT /api/v1/users/update-password", authMW(handler.ErrorHandlingMiddleware(userHandler.UpdatePassword)))
	mux.Handle("GET /api/v1/users/me", authMW(handler.ErrorHandlingMiddleware(userHandler.Me)))

	// Videos
	mux.Handle("POST /api/v1/videos", authMW(handler.ErrorHandlingMiddleware(videoHandler.CreateVideo)))
	mux.Handle("GET /api/v1/videos", handler.ErrorHandlingMiddleware(videoHandler.ListVideos))
	mux.Handle("GET /api/v1/videos/stats", handler.ErrorHandlingMiddleware(videoHandler.GetVideoStats))
	mux.Handle("GET /api/v1/videos/{id}", handler.ErrorHandlingMiddleware(videoHandler.GetVideo))
	mux.Handle("DELETE /api/v1/videos/{id}", authMW(handler.ErrorHandlingMiddleware(videoHandler.DeleteVideo)))

	// Comments
	mux.Handle("POST /api/v1/comments", authMW(handler.ErrorHandlingMiddleware(commentHandler.CreateComment)))
	mux.Handle("GET /api/v1/videos/{id}/comments", handler.ErrorHandlingMiddleware(commentHandler.ListComments))
	mux.Handle("PUT /api/v1/comments/{id}", authMW(handler.ErrorHandlingMiddleware(commentHandler.UpdateComment)))
	mux.Handle("DELETE /api/v1/comments/{id}", authMW(handler.ErrorHandlingMiddleware(commentHandler.DeleteComment)))

	// Likes
	mux.Handle("POST /api/v1/likes/toggle", authMW(handler.ErrorHandlingMiddleware(likeHandler.ToggleLike)))
	mux.Handle("GET /api/v1/videos/{id}/likes", handler.ErrorHandlingMiddleware(likeHandler.CountLikes))

	// Playlists
	mux.Handle("POST /api/v1/playlists", authMW(handler.ErrorHandlingMiddleware(playlistHandler.CreatePlaylist)))
	mux.Handle("GET /api/v1/playlists", authMW(handler.ErrorHandlingMiddleware(playlistHandler.ListPlaylists)))
	mux.Handle("POST /api/v1/playlists/videos", authMW(handler.ErrorHandlingMiddleware(playlistHandler.AddVideo)))
	mux.Handle("DELETE /api/v1/playlists/{id}", authMW(handler.ErrorHandlingMiddleware(playlistHandler.DeletePlaylist)))

	// Subscriptions
	mux.Handle("POST /api/v1/subscriptions", authMW(handler.ErrorHandlingMiddleware(subscriptionHandler.Subscribe)))
	mux.Handle("DELETE /api/v1/subscriptions", authMW(handler.ErrorHandlingMiddleware(subscriptionHandler.Unsubscribe)))
	mux.Handle("GET /api/v1/subscriptions", authMW(handler.ErrorHandlingMiddleware(subscriptionHandler.ListSubscriptions)))

	return mux
}
