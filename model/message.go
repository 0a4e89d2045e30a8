package model

import (
	"time"

	"agriguard/api"
)

// Message represents a chat message in the conversation
type Message struct {
	Role      string
	Content   string // Raw content from the agronomist
	Rendered  string // Cached rendered markdown (optimize if storage becomes a concern)
	Timestamp time.Time

	// Assistant turns produced from a photo diagnosis carry the
	// structured analysis alongside the prose.
	Analysis *api.LeafAnalysis

	// Follow-up prompts and tappable actions from the last reply.
	Suggestions []string
	Actions     []api.Action

	// Local path of the photo a user turn uploaded. Not persisted.
	ImagePath string
}
