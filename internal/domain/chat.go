package domain

// Chat message roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is a single entry in a chat transcript. Transcripts are
// append-only and ordered by submission time.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
