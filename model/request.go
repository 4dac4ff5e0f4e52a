// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
// The avatar and cover image arrive as multipart files alongside these fields.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdatePasswordRequest defines the payload for changing the caller's password.
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required,min=8"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// CreateVideoRequest carries the metadata fields of a video upload.
// The video file and thumbnail arrive as multipart files.
type CreateVideoRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Category    string `json:"category" validate:"required,min=1,max=50"`
}

// CreateCommentRequest defines the payload for commenting on a video.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
	VideoID string `json:"video_id" validate:"required"`
}

// UpdateCommentRequest defines the payload for editing a comment.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// ToggleLikeRequest defines the payload for liking or unliking a video.
type ToggleLikeRequest struct {
	VideoID string `json:"video_id" validate:"required"`
}

// CreatePlaylistRequest defines the payload for creating a playlist.
type CreatePlaylistRequest struct {
	Name   string   `json:"name" validate:"required,min=1,max=100"`
	Videos []string `json:"videos" validate:"omitempty,dive,required"`
}

// AddPlaylistVideoRequest defines the payload for adding a video to a playlist.
type AddPlaylistVideoRequest struct {
	PlaylistID string `json:"playlist_id" validate:"required"`
	VideoID    string `json:"video_id" validate:"required"`
}

// SubscriptionRequest defines the payload for subscribing to or
// unsubscribing from a channel.
type SubscriptionRequest struct {
	ChannelID string `json:"channel_id" validate:"required"`
}
