package services

import (
	"fmt"
	"time"

	"project-tracker/internal/cache"
	"project-tracker/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const visibleProjectsTTL = 5 * time.Minute

// CachedProjectService wraps a ProjectService with a redis cache for the
// visible-project listings. Listings are keyed per actor because developer
// visibility depends on task assignments. Task writes must call
// InvalidateListings since assignment changes alter who sees what.
type CachedProjectService struct {
	projectService ProjectService
	cache          *cache.RedisCache
}

func NewCachedProjectService(projectService ProjectService, cacheInstance *cache.RedisCache) *CachedProjectService {
	return &CachedProjectService{
		projectService: projectService,
		cache:          cacheInstance,
	}
}

func listingKey(actorID uuid.UUID) string {
	return fmt.Sprintf("projects:visible:%s", actorID.String())
}

func (s *CachedProjectService) CreateProject(db *gorm.DB, actor models.User, name, description string) (*models.Project, error) {
	project, err := s.projectService.CreateProject(db, actor, name, description)
	if err != nil {
		return nil, err
	}
	s.InvalidateListings()
	return project, nil
}

func (s *CachedProjectService) ListProjects(db *gorm.DB, actor models.User) ([]models.Project, error) {
	key := listingKey(actor.ID)

	var cached []models.Project
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	projects, err := s.projectService.ListProjects(db, actor)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, projects, visibleProjectsTTL)

	return projects, nil
}

func (s *CachedProjectService) GetProjectWithTasks(db *gorm.DB, actor models.User, projectID uuid.UUID) (*models.Project, []models.Task, error) {
	return s.projectService.GetProjectWithTasks(db, actor, projectID)
}

func (s *CachedProjectService) DeleteProject(db *gorm.DB, actor models.User, projectID uuid.UUID) error {
	if err := s.projectService.DeleteProject(db, actor, projectID); err != nil {
		return err
	}
	s.InvalidateListings()
	return nil
}

// InvalidateListings drops every cached project listing.
func (s *CachedProjectService) InvalidateListings() {
	s.cache.DeletePattern("projects:visible:*")
}
