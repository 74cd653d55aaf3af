package graph

import "time"

// UserRecord is the raw user entity shape delivered by the upstream loader.
// Numeric fields arrive as float64 so dirty upstream payloads (NaN, Inf)
// coerce to 0 instead of failing assembly.
type UserRecord struct {
	ID            string  `json:"id"`
	DisplayName   string  `json:"displayName"`
	Verified      bool    `json:"verified"`
	FollowerCount float64 `json:"followerCount"`
	FollowCount   float64 `json:"followCount"`
	StatusesCount float64 `json:"statusesCount"`
	MutualCount   float64 `json:"mutualCount"`
	Residence     *string `json:"residence,omitempty"`
}

// PostRecord is the raw post entity shape.
type PostRecord struct {
	ID         string  `json:"id"`
	AuthorID   string  `json:"authorId"`
	CreatedAt  string  `json:"createdAt"`
	TextLength float64 `json:"textLength"`
	Reposts    float64 `json:"reposts"`
	Comments   float64 `json:"comments"`
	Likes      float64 `json:"likes"`
	Visibility string  `json:"visibility"`
}

// HashtagRecord is the raw hashtag entity shape.
type HashtagRecord struct {
	ID          string  `json:"id"`
	Tag         string  `json:"tag"`
	TagType     string  `json:"tagType"`
	Hidden      bool    `json:"hidden"`
	Description *string `json:"description,omitempty"`
	UsageCount  float64 `json:"usageCount"`
}

// MentionRecord links a post to a user it mentions.
type MentionRecord struct {
	PostID          string `json:"postId"`
	MentionedUserID string `json:"mentionedUserId"`
}

// PostHashtagRecord links a post to a hashtag it carries. Each record counts
// as one usage event for the hashtag.
type PostHashtagRecord struct {
	PostID    string `json:"postId"`
	HashtagID string `json:"hashtagId"`
}

// LikeRecord is a single like occurrence.
type LikeRecord struct {
	UserID    string `json:"userId"`
	PostID    string `json:"postId"`
	CreatedAt string `json:"createdAt"`
}

// InteractionRecord is a generic interaction occurrence. Type, when present,
// names a specific interaction class (e.g. "comment", "repost") and fans the
// occurrence out into a type-specific edge alongside the generic one.
type InteractionRecord struct {
	UserID    string `json:"userId"`
	PostID    string `json:"postId"`
	Type      string `json:"type,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// RepostRecord is a repost occurrence.
type RepostRecord struct {
	UserID    string `json:"userId"`
	PostID    string `json:"postId"`
	CreatedAt string `json:"createdAt"`
}

// CommentRecord is a comment occurrence.
type CommentRecord struct {
	UserID    string `json:"userId"`
	PostID    string `json:"postId"`
	CreatedAt string `json:"createdAt"`
}

// AssemblyInput is the upstream data contract: a fully-materialized slice of
// the social graph for a requested window. The core has no knowledge of how
// it was loaded.
type AssemblyInput struct {
	Users          []UserRecord        `json:"users"`
	Posts          []PostRecord        `json:"posts"`
	Hashtags       []HashtagRecord     `json:"hashtags"`
	Mentions       []MentionRecord     `json:"mentions"`
	PostHashtags   []PostHashtagRecord `json:"postHashtags"`
	Likes          []LikeRecord        `json:"likes"`
	Interactions   []InteractionRecord `json:"interactions"`
	Reposts        []RepostRecord      `json:"reposts"`
	Comments       []CommentRecord     `json:"comments"`
	EvaluationTime time.Time           `json:"evaluationTime"`
}
