package graph

import (
	"math"
	"time"
)

// DecayParams tunes the exponential time-decay scoring for one edge kind:
// contribution = Base * 0.5^(ageHours/HalfLifeHours).
type DecayParams struct {
	Base          float64 `yaml:"base" validate:"gt=0"`
	HalfLifeHours float64 `yaml:"halfLifeHours" validate:"gt=0"`
}

// DefaultDecayTable returns the per-kind decay constants. Author and like
// values are fixed by the scoring contract; the rest are tuning defaults and
// can be overridden through configuration.
func DefaultDecayTable() map[EdgeKind]DecayParams {
	return map[EdgeKind]DecayParams{
		EdgeKindAuthor:   {Base: 2, HalfLifeHours: 720},
		EdgeKindLike:     {Base: 0.5, HalfLifeHours: 24},
		EdgeKindMention:  {Base: 1, HalfLifeHours: 168},
		EdgeKindInteract: {Base: 0.75, HalfLifeHours: 72},
		EdgeKindComment:  {Base: 1, HalfLifeHours: 72},
		EdgeKindRepost:   {Base: 1.5, HalfLifeHours: 168},
	}
}

// fallbackDecay is used for edge kinds missing from the table (e.g. a novel
// interaction type string coming from upstream).
var fallbackDecay = DecayParams{Base: 1, HalfLifeHours: 168}

// EdgeCalculator turns raw interaction records into weighted, time-decayed,
// evidence-bearing edges keyed by (kind, source, target). Endpoints that were
// never explicitly loaded are materialized as placeholder nodes through the
// registry.
type EdgeCalculator struct {
	registry       *Registry
	decay          map[EdgeKind]DecayParams
	evaluationTime time.Time

	builders map[edgeKey]*edgeBuilder
	order    []edgeKey
}

type edgeKey struct {
	kind   EdgeKind
	source string
	target string
}

type edgeBuilder struct {
	edge     *Edge
	postSeen map[string]bool
	typeSeen map[string]bool
}

// NewEdgeCalculator builds a calculator over the given registry. A nil decay
// table selects the defaults.
func NewEdgeCalculator(registry *Registry, decay map[EdgeKind]DecayParams, evaluationTime time.Time) *EdgeCalculator {
	if decay == nil {
		decay = DefaultDecayTable()
	}
	return &EdgeCalculator{
		registry:       registry,
		decay:          decay,
		evaluationTime: evaluationTime,
		builders:       make(map[edgeKey]*edgeBuilder),
	}
}

func (c *EdgeCalculator) params(kind EdgeKind) DecayParams {
	if p, ok := c.decay[kind]; ok {
		return p
	}
	return fallbackDecay
}

// contribution applies the exponential decay law for one occurrence. A nil
// occurrence timestamp contributes at age zero.
func (c *EdgeCalculator) contribution(kind EdgeKind, at *time.Time) float64 {
	p := c.params(kind)
	age := 0.0
	if at != nil {
		age = math.Abs(c.evaluationTime.Sub(*at).Hours())
	}
	return Round6(p.Base * math.Pow(0.5, age/p.HalfLifeHours))
}

func (c *EdgeCalculator) builder(kind EdgeKind, source, target string) *edgeBuilder {
	key := edgeKey{kind: kind, source: source, target: target}
	if b, ok := c.builders[key]; ok {
		return b
	}
	b := &edgeBuilder{
		edge: &Edge{Kind: kind, Source: source, Target: target},
	}
	c.builders[key] = b
	c.order = append(c.order, key)
	return b
}

// record folds one occurrence into the edge group for (kind, source, target).
func (c *EdgeCalculator) record(kind EdgeKind, source, target string, at *time.Time) *edgeBuilder {
	b := c.builder(kind, source, target)
	ev := &b.edge.Evidence
	ev.Occurrences++
	ev.ScoreContributions = append(ev.ScoreContributions, c.contribution(kind, at))
	if at != nil {
		if ev.FirstSeenAt == nil || at.Before(*ev.FirstSeenAt) {
			ev.FirstSeenAt = at
		}
		if ev.LastSeenAt == nil || at.After(*ev.LastSeenAt) {
			ev.LastSeenAt = at
		}
	}
	return b
}

func (b *edgeBuilder) addPost(postID string) {
	if b.postSeen == nil {
		b.postSeen = make(map[string]bool)
	}
	if b.postSeen[postID] {
		return
	}
	b.postSeen[postID] = true
	b.edge.Metadata.Posts = append(b.edge.Metadata.Posts, postID)
}

func (b *edgeBuilder) addInteractionType(t string) {
	if b.typeSeen == nil {
		b.typeSeen = make(map[string]bool)
	}
	if b.typeSeen[t] {
		return
	}
	b.typeSeen[t] = true
	b.edge.Metadata.InteractionTypes = append(b.edge.Metadata.InteractionTypes, t)
}

// AddAuthorEdges emits one author edge per registered post: post author -> post,
// decayed from the post's creation time.
func (c *EdgeCalculator) AddAuthorEdges() {
	for _, postID := range c.registry.PostIDs() {
		author := c.registry.AuthorOf(postID)
		if author == "" {
			continue
		}
		c.record(EdgeKindAuthor, author, postID, c.registry.CreatedAtOf(postID))
	}
}

// AddLikes folds like occurrences into like edges: liking user -> post.
// Likes referencing posts that were never registered are skipped, so every
// emitted edge endpoint resolves to a node.
func (c *EdgeCalculator) AddLikes(likes []LikeRecord) {
	for _, like := range likes {
		if like.UserID == "" || like.PostID == "" {
			continue
		}
		if c.registry.Node(like.PostID) == nil {
			continue
		}
		c.registry.EnsureUser(like.UserID)
		c.record(EdgeKindLike, like.UserID, like.PostID, parseTime(like.CreatedAt))
	}
}

// AddMentions folds mention occurrences into mention edges: post author ->
// mentioned user, decayed from the post's creation time. Metadata lists every
// post that contributed a mention between the same pair.
func (c *EdgeCalculator) AddMentions(mentions []MentionRecord) {
	for _, m := range mentions {
		author := c.registry.AuthorOf(m.PostID)
		if author == "" || m.MentionedUserID == "" {
			continue
		}
		c.registry.EnsureUser(m.MentionedUserID)
		b := c.record(EdgeKindMention, author, m.MentionedUserID, c.registry.CreatedAtOf(m.PostID))
		b.addPost(m.PostID)
	}
}

// addInteraction folds one interaction occurrence into the generic interact
// edge for its (actor, post author) pair and, when the occurrence carries a
// specific type, into an additional type-specific edge computed from the same
// occurrence.
func (c *EdgeCalculator) addInteraction(userID, postID, interactionType string, at *time.Time) {
	if userID == "" || postID == "" {
		return
	}
	target := c.registry.AuthorOf(postID)
	if target == "" {
		return
	}
	c.registry.EnsureUser(userID)

	generic := c.record(EdgeKindInteract, userID, target, at)
	if interactionType == "" {
		return
	}
	generic.addInteractionType(interactionType)

	specific := c.record(EdgeKind(interactionType), userID, target, at)
	specific.addInteractionType(interactionType)
}

// AddInteractions folds generic interaction occurrences.
func (c *EdgeCalculator) AddInteractions(interactions []InteractionRecord) {
	for _, in := range interactions {
		c.addInteraction(in.UserID, in.PostID, in.Type, parseTime(in.CreatedAt))
	}
}

// AddReposts folds repost occurrences as interactions typed "repost".
func (c *EdgeCalculator) AddReposts(reposts []RepostRecord) {
	for _, rp := range reposts {
		c.addInteraction(rp.UserID, rp.PostID, string(EdgeKindRepost), parseTime(rp.CreatedAt))
	}
}

// AddComments folds comment occurrences as interactions typed "comment".
func (c *EdgeCalculator) AddComments(comments []CommentRecord) {
	for _, cm := range comments {
		c.addInteraction(cm.UserID, cm.PostID, string(EdgeKindComment), parseTime(cm.CreatedAt))
	}
}

// Edges finalizes and returns all edges in group first-seen order. Each edge's
// weight is the rounded sum of its per-occurrence contributions.
func (c *EdgeCalculator) Edges() []*Edge {
	out := make([]*Edge, 0, len(c.order))
	for _, key := range c.order {
		edge := c.builders[key].edge
		sum := 0.0
		for _, s := range edge.Evidence.ScoreContributions {
			sum += s
		}
		edge.Weight = Round6(sum)
		out = append(out, edge)
	}
	return out
}
