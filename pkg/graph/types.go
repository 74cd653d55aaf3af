package graph

import (
	"math"
	"time"
)

// NodeKind identifies the entity class a node represents.
type NodeKind string

const (
	NodeKindUser    NodeKind = "user"
	NodeKindPost    NodeKind = "post"
	NodeKindHashtag NodeKind = "hashtag"
	NodeKindCluster NodeKind = "cluster"
)

// EdgeKind identifies the interaction class an edge represents.
// Multiple edges of different kinds may exist between the same pair.
type EdgeKind string

const (
	EdgeKindAuthor   EdgeKind = "author"
	EdgeKindMention  EdgeKind = "mention"
	EdgeKindLike     EdgeKind = "like"
	EdgeKindInteract EdgeKind = "interact"
	EdgeKindComment  EdgeKind = "comment"
	EdgeKindRepost   EdgeKind = "repost"
)

// UserAttributes holds the profile-derived attributes of a user node.
type UserAttributes struct {
	DisplayName      string  `json:"displayName"`
	Verified         bool    `json:"verified"`
	FollowerCount    int     `json:"followerCount"`
	FollowCount      int     `json:"followCount"`
	StatusesCount    int     `json:"statusesCount"`
	Residence        *string `json:"residence,omitempty"`
	InfluenceSeed    float64 `json:"influenceSeed"`
	ReciprocityIndex float64 `json:"reciprocityIndex"`
}

// PostAttributes holds the point-in-time attributes of a post node.
type PostAttributes struct {
	AuthorID   string     `json:"authorId"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	TextLength int        `json:"textLength"`
	Reposts    int        `json:"reposts"`
	Comments   int        `json:"comments"`
	Likes      int        `json:"likes"`
	Visibility string     `json:"visibility"`
}

// HashtagAttributes holds the attributes of a hashtag node. UsageCount is a
// monotonic counter incremented by usage events.
type HashtagAttributes struct {
	Tag         string  `json:"tag"`
	TagType     string  `json:"tagType"`
	Hidden      bool    `json:"hidden"`
	Description *string `json:"description,omitempty"`
	UsageCount  int     `json:"usageCount"`
}

// Node is a tagged union over NodeKind. Exactly one of the attribute pointers
// matching Kind is non-nil; placeholder nodes carry a zero-valued attribute
// struct until real data is observed.
type Node struct {
	Kind        NodeKind           `json:"kind"`
	ID          string             `json:"id"`
	Placeholder bool               `json:"placeholder"`
	User        *UserAttributes    `json:"user,omitempty"`
	Post        *PostAttributes    `json:"post,omitempty"`
	Hashtag     *HashtagAttributes `json:"hashtag,omitempty"`
}

// Evidence records the occurrence trail backing an edge's weight.
type Evidence struct {
	Occurrences        int         `json:"occurrences"`
	ScoreContributions []float64   `json:"scoreContributions"`
	FirstSeenAt        *time.Time  `json:"firstSeenAt,omitempty"`
	LastSeenAt         *time.Time  `json:"lastSeenAt,omitempty"`
}

// Metadata carries per-kind aggregation alongside an edge. Both slices are
// deduplicated in insertion order.
type Metadata struct {
	Posts            []string `json:"posts,omitempty"`
	InteractionTypes []string `json:"interactionTypes,omitempty"`
}

// Edge is a weighted, time-decayed, evidence-bearing directed edge keyed by
// (Kind, Source, Target).
type Edge struct {
	Kind     EdgeKind `json:"kind"`
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Weight   float64  `json:"weight"`
	Evidence Evidence `json:"evidence"`
	Metadata Metadata `json:"metadata"`
}

// Snapshot is an immutable point-in-time graph. Downstream analyzers treat it
// as read-only input and return fresh result objects.
type Snapshot struct {
	Nodes       []*Node   `json:"nodes"`
	Edges       []*Edge   `json:"edges"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Round6 rounds to 6 decimal places, the precision used for all edge weights
// and score contributions.
func Round6(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*1e6) / 1e6
}

// asInteger coerces a possibly dirty numeric input to a non-negative-friendly
// integer: NaN and infinities degrade to 0 instead of propagating.
func asInteger(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(v)
}

// parseTime coerces an RFC3339-ish timestamp string to a time. Unparseable or
// empty inputs degrade to nil, never an error.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
