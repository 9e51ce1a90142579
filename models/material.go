package models

import "time"

// Material is a single course material entry. Materials are append/replace
// only: a sync replaces the whole per-course set with the freshest fetched
// set and never merges fields of individual entries.
type Material struct {
	// ID is the server-assigned unique identifier of the material.
	ID string `json:"id"`

	// CourseID identifies the course this material belongs to.
	CourseID string `json:"course_id"`

	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`

	// PostedAt is the server-side publication time.
	PostedAt time.Time `json:"posted_at"`

	// IsImportant marks materials pinned by the instructor.
	IsImportant bool `json:"is_important"`

	// Attachments holds the ordered attachment list as served.
	Attachments []Attachment `json:"attachments,omitempty"`

	// Version is incremented by the server each time the material is
	// re-published.
	Version int64 `json:"version"`

	// ReplacedBy points to the successor material's ID when this entry
	// has been superseded; empty otherwise.
	ReplacedBy string `json:"replaced_by,omitempty"`
}

// Attachment describes a downloadable file attached to a material.
type Attachment struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`

	// DownloadRef is the opaque reference passed to the remote source to
	// download the file contents.
	DownloadRef string `json:"download_ref"`
}
