package service

import (
	"github.com/ayudin/go-course-keeper/internal/adapter"
	"github.com/ayudin/go-course-keeper/internal/cache"
	"github.com/ayudin/go-course-keeper/internal/crypto"
	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/internal/repository"
)

// ClientServices bundles every service the client runtime needs. It is
// constructed once at the application root and handed to collaborators
// by reference.
type ClientServices struct {
	Auth         *AuthService
	Courses      *CourseManager
	Materials    *MaterialManager
	Orchestrator *SyncOrchestrator
}

// NewClientServices wires the full service graph over the shared cache
// store and remote source.
func NewClientServices(store cache.Store, remote adapter.RemoteSource, credentials crypto.CredentialStore, log *logger.Logger) *ClientServices {
	courseRepo := repository.NewCourseRepository(store, remote, log)
	materialRepo := repository.NewMaterialRepository(store, remote, log)

	courses := NewCourseManager(courseRepo, log)
	materials := NewMaterialManager(materialRepo, remote.DownloadAttachment, log)

	return &ClientServices{
		Auth:         NewAuthService(remote, credentials, log),
		Courses:      courses,
		Materials:    materials,
		Orchestrator: NewSyncOrchestrator(courses, materials, store, log),
	}
}
