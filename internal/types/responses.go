package types

type LoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token,omitempty"`
	Error    string `json:"error,omitempty"`
	FarmerID string `json:"farmerId"`
}

// LikeResponse reports the committed outcome of a like toggle.
type LikeResponse struct {
	PostID    string `json:"postId"`
	Liked     bool   `json:"liked"`
	LikeCount int    `json:"likeCount"`
}
