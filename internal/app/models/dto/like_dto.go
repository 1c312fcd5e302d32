package dto

// LikeRequest identifies the post a like targets
type LikeRequest struct {
	PostID int64 `json:"post_id" binding:"required,min=1"`
}

// LikeStatusResponse is the aggregate like state of a post.
// Count is computed at read time; no cached counter exists.
type LikeStatusResponse struct {
	Count   int64 `json:"count"`
	IsLiked bool  `json:"isLiked"`
}
