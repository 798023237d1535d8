package dto

import "time"

// SessionNoteRequest adds a note to a session. An empty SessionID takes the path value.
type SessionNoteRequest struct {
	SessionID  string   `json:"sessionId" validate:"omitempty,uuid"`
	AuthorID   string   `json:"authorId" validate:"required,uuid"`
	Content    string   `json:"content" validate:"required,notblank,max=4000"`
	Visibility string   `json:"visibility" validate:"omitempty,oneof=AUTHOR_ONLY PARTICIPANTS_ONLY PUBLIC"`
	Tags       []string `json:"tags" validate:"omitempty,dive,required,max=64"`
	MediaURLs  []string `json:"mediaUrls" validate:"omitempty,dive,url"`
}

type SessionNoteResponse struct {
	ID         string       `json:"id"`
	SessionID  string       `json:"sessionId"`
	Author     *UserSummary `json:"author,omitempty"`
	Content    string       `json:"content"`
	Visibility string       `json:"visibility"`
	Tags       []string     `json:"tags"`
	MediaURLs  []string     `json:"mediaUrls"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
