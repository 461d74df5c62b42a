package model

import "time"

// VoiceMail describes a recorded audio clip. The binary payload lives in the
// blob store under Filename; this record only carries metadata.
//
// URL is resolved from the active blob backend at read time and is never
// persisted — a presigned link for bucket storage, a static path for local
// disk.
type VoiceMail struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	URL         string    `json:"url,omitempty"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}
