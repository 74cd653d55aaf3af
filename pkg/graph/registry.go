package graph

import (
	"math"
	"time"
)

// Registry holds the canonical node set for one assembly run. It preserves
// insertion order so snapshots are deterministic, supports placeholder nodes
// for ids that are referenced before (or without) being loaded, and enforces
// first-write-wins upgrade semantics for user and hashtag nodes.
type Registry struct {
	nodes map[string]*Node
	order []string

	// Side tables recorded by RegisterPost, consumed by the edge calculator.
	postAuthor    map[string]string
	postTimestamp map[string]*time.Time
	postOrder     []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes:         make(map[string]*Node),
		postAuthor:    make(map[string]string),
		postTimestamp: make(map[string]*time.Time),
	}
}

func (r *Registry) add(n *Node) *Node {
	if _, seen := r.nodes[n.ID]; !seen {
		r.order = append(r.order, n.ID)
	}
	r.nodes[n.ID] = n
	return n
}

// UpsertUser registers a user node from a raw record. Once a real (non
// placeholder) node exists for the id, later upserts are no-ops returning the
// existing node unchanged; placeholders are upgraded exactly once.
func (r *Registry) UpsertUser(rec UserRecord) *Node {
	if existing, ok := r.nodes[rec.ID]; ok && !existing.Placeholder {
		return existing
	}

	followers := asInteger(rec.FollowerCount)
	follows := asInteger(rec.FollowCount)
	statuses := asInteger(rec.StatusesCount)
	mutual := asInteger(rec.MutualCount)

	denominator := followers + follows
	if denominator < 1 {
		denominator = 1
	}

	return r.add(&Node{
		Kind:        NodeKindUser,
		ID:          rec.ID,
		Placeholder: false,
		User: &UserAttributes{
			DisplayName:      rec.DisplayName,
			Verified:         rec.Verified,
			FollowerCount:    followers,
			FollowCount:      follows,
			StatusesCount:    statuses,
			Residence:        rec.Residence,
			InfluenceSeed:    Round6(math.Log10(float64(followers)+1)*0.7 + math.Log10(float64(statuses)+1)*0.3),
			ReciprocityIndex: Round6(float64(mutual) / float64(denominator)),
		},
	})
}

// RegisterPost registers a post node, always overwriting: posts are treated as
// point-in-time facts, not identity-merged. It guarantees the author exists
// (as a placeholder if unseen) and records the author/timestamp side tables.
func (r *Registry) RegisterPost(rec PostRecord) *Node {
	r.EnsureUser(rec.AuthorID)

	createdAt := parseTime(rec.CreatedAt)
	if _, seen := r.postAuthor[rec.ID]; !seen {
		r.postOrder = append(r.postOrder, rec.ID)
	}
	r.postAuthor[rec.ID] = rec.AuthorID
	r.postTimestamp[rec.ID] = createdAt

	return r.add(&Node{
		Kind: NodeKindPost,
		ID:   rec.ID,
		Post: &PostAttributes{
			AuthorID:   rec.AuthorID,
			CreatedAt:  createdAt,
			TextLength: asInteger(rec.TextLength),
			Reposts:    asInteger(rec.Reposts),
			Comments:   asInteger(rec.Comments),
			Likes:      asInteger(rec.Likes),
			Visibility: rec.Visibility,
		},
	})
}

// RegisterHashtag registers a hashtag node with an initial usage count,
// following the same first-write-wins rule as users.
func (r *Registry) RegisterHashtag(rec HashtagRecord, usageCount int) *Node {
	if existing, ok := r.nodes[rec.ID]; ok && !existing.Placeholder {
		return existing
	}

	return r.add(&Node{
		Kind: NodeKindHashtag,
		ID:   rec.ID,
		Hashtag: &HashtagAttributes{
			Tag:         rec.Tag,
			TagType:     rec.TagType,
			Hidden:      rec.Hidden,
			Description: rec.Description,
			UsageCount:  usageCount,
		},
	})
}

// EnsureUser returns the node for id, creating a zero-valued placeholder user
// if absent. Existing nodes (real or placeholder) are returned unchanged.
func (r *Registry) EnsureUser(id string) *Node {
	if existing, ok := r.nodes[id]; ok {
		return existing
	}
	return r.add(&Node{
		Kind:        NodeKindUser,
		ID:          id,
		Placeholder: true,
		User:        &UserAttributes{},
	})
}

// EnsureHashtag returns the node for id, creating a zero-valued placeholder
// hashtag if absent.
func (r *Registry) EnsureHashtag(id string) *Node {
	if existing, ok := r.nodes[id]; ok {
		return existing
	}
	return r.add(&Node{
		Kind:        NodeKindHashtag,
		ID:          id,
		Placeholder: true,
		Hashtag:     &HashtagAttributes{Tag: id},
	})
}

// IncrementHashtagUsage bumps a hashtag's monotonic usage counter, materializing
// a placeholder if the hashtag was never registered. Non-positive deltas are
// ignored so the counter never moves backwards.
func (r *Registry) IncrementHashtagUsage(id string, delta int) {
	if delta <= 0 {
		return
	}
	node := r.EnsureHashtag(id)
	if node.Hashtag != nil {
		node.Hashtag.UsageCount += delta
	}
}

// Node returns the node for id, or nil if absent.
func (r *Registry) Node(id string) *Node {
	return r.nodes[id]
}

// Values returns all nodes in insertion order.
func (r *Registry) Values() []*Node {
	out := make([]*Node, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.nodes[id])
	}
	return out
}

// ValuesByKind returns all nodes of the given kind in insertion order.
func (r *Registry) ValuesByKind(kind NodeKind) []*Node {
	out := make([]*Node, 0)
	for _, id := range r.order {
		if n := r.nodes[id]; n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// AuthorOf returns the author id of a registered post, or "" if unknown.
func (r *Registry) AuthorOf(postID string) string {
	return r.postAuthor[postID]
}

// CreatedAtOf returns the creation time of a registered post, nil if unknown
// or unparseable.
func (r *Registry) CreatedAtOf(postID string) *time.Time {
	return r.postTimestamp[postID]
}

// PostIDs returns registered post ids in registration order.
func (r *Registry) PostIDs() []string {
	return r.postOrder
}
