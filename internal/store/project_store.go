package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/authz"
	"github.com/taskhive-dev/taskhive/internal/models"
)

type ProjectStore struct {
	conn *gorm.DB
}

func NewProjectStore(conn *gorm.DB) *ProjectStore {
	return &ProjectStore{conn: conn}
}

func (s *ProjectStore) Create(ctx context.Context, creatorID, name, teamID string) (*models.Project, error) {
	project := models.Project{
		Name:        name,
		Description: "",
		StartDate:   time.Now(),
		Status:      models.ProjectActive,
		TeamID:      &teamID,
		CreatedByID: creatorID,
	}

	if err := s.conn.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}

	return s.findExpanded(ctx, project.ID)
}

func (s *ProjectStore) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project

	if err := s.conn.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &project, nil
}

// ListVisible returns projects the user created or can reach through team
// membership, newest first, with tasks, team members and creator expanded.
func (s *ProjectStore) ListVisible(ctx context.Context, userID string) ([]models.Project, error) {
	var projects []models.Project

	err := s.conn.WithContext(ctx).
		Scopes(authz.ProjectVisible(userID)).
		Preload("Tasks").
		Preload("Team.Owner").
		Preload("Team.Members").
		Preload("CreatedBy").
		Order("projects.created_at DESC").
		Find(&projects).Error

	if err != nil {
		return nil, err
	}

	return projects, nil
}

// DeleteCascade removes the project's tasks and then the project itself in a
// single transaction, so a crash cannot leave orphaned task rows.
func (s *ProjectStore) DeleteCascade(ctx context.Context, projectID string) error {
	return s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(
			"DELETE FROM task_assignees WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)",
			projectID,
		).Error

		if err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", projectID).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", projectID).Delete(&models.Project{}).Error
	})
}

func (s *ProjectStore) findExpanded(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project

	err := s.conn.WithContext(ctx).
		Preload("Team.Owner").
		Preload("Team.Members").
		Preload("CreatedBy").
		Where("id = ?", id).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &project, nil
}
