package models

// Course represents a single remote course as served by the classroom
// server. Instances are immutable once fetched: a refresh replaces the
// whole collection rather than patching individual fields.
type Course struct {
	// ID is the server-assigned unique identifier of the course.
	ID string `json:"id"`

	// Code is the short course code shown in listings (e.g. "CS-201").
	Code string `json:"code"`

	// Name is the full human-readable course title.
	Name string `json:"name"`

	// Instructor is the display name of the course instructor.
	Instructor string `json:"instructor"`

	// Schedule is a free-form schedule description (e.g. "Mon/Wed 10:00").
	Schedule string `json:"schedule"`

	// Color is the accent color assigned to the course by the server,
	// used only for presentation.
	Color string `json:"color"`
}
