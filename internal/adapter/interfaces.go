package adapter

import (
	"context"

	"github.com/ayudin/go-course-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_adapter.go -package=mock

// RemoteSource is the client's only path to the classroom server. All
// calls except Login require a session token previously installed via
// SetToken; a missing token fails with [ErrNoToken] before any network
// round-trip.
type RemoteSource interface {
	// Login authenticates the user and returns the issued session token
	// together with the account identity. On success the token is also
	// installed on the source for subsequent calls.
	Login(ctx context.Context, login, password string) (models.Token, models.User, error)

	// ListCourses fetches the full remote course list.
	ListCourses(ctx context.Context) ([]models.Course, error)

	// ListMaterials fetches the full material set of one course.
	ListMaterials(ctx context.Context, courseID string) ([]models.Material, error)

	// RefreshMaterials asks the server to re-scan the course and returns
	// the refreshed material set plus the server-reported discovery
	// metadata.
	RefreshMaterials(ctx context.Context, courseID string) (models.RefreshOutcome, error)

	// DownloadAttachment streams the referenced attachment into a local
	// file and returns its path.
	DownloadAttachment(ctx context.Context, downloadRef string) (string, error)

	// SetToken installs the session token used by authenticated calls.
	SetToken(token string)

	// Token returns the currently installed session token, if any.
	Token() string
}
