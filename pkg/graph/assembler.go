package graph

// Assemble composes registry ingestion and edge calculation into an immutable
// snapshot. Malformed numeric/date fields in the input degrade to safe
// defaults rather than failing the run.
func Assemble(input AssemblyInput, decay map[EdgeKind]DecayParams) *Snapshot {
	registry := NewRegistry()

	for _, user := range input.Users {
		registry.UpsertUser(user)
	}
	for _, post := range input.Posts {
		registry.RegisterPost(post)
	}
	for _, tag := range input.Hashtags {
		registry.RegisterHashtag(tag, asInteger(tag.UsageCount))
	}
	for _, ph := range input.PostHashtags {
		registry.IncrementHashtagUsage(ph.HashtagID, 1)
	}

	calc := NewEdgeCalculator(registry, decay, input.EvaluationTime)
	calc.AddAuthorEdges()
	calc.AddLikes(input.Likes)
	calc.AddMentions(input.Mentions)
	calc.AddInteractions(input.Interactions)
	calc.AddReposts(input.Reposts)
	calc.AddComments(input.Comments)

	return &Snapshot{
		Nodes:       registry.Values(),
		Edges:       calc.Edges(),
		GeneratedAt: input.EvaluationTime,
	}
}
