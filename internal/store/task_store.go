package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/authz"
	"github.com/taskhive-dev/taskhive/internal/models"
)

// DefaultProjectName is the per-user project that receives tasks created
// without an explicit project.
const DefaultProjectName = "Personal Tasks"

type TaskStore struct {
	conn *gorm.DB
}

func NewTaskStore(conn *gorm.DB) *TaskStore {
	return &TaskStore{conn: conn}
}

type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    models.Priority
	Status      models.TaskStatus
	ProjectID   string
	AssigneeIDs []string
}

// Create inserts the task, resolving the target project first. When no
// project is given, the creator's default project is reused or created. The
// whole sequence runs in one transaction so two concurrent first tasks cannot
// produce two default projects.
func (s *TaskStore) Create(ctx context.Context, creatorID string, in CreateTaskInput) (*models.Task, error) {
	var taskID string

	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projectID := in.ProjectID

		if projectID == "" {
			id, err := findOrCreateDefaultProject(tx, creatorID)
			if err != nil {
				return err
			}
			projectID = id
		}

		var assignees []models.User

		if len(in.AssigneeIDs) > 0 {
			if err := tx.Where("id IN ?", in.AssigneeIDs).Find(&assignees).Error; err != nil {
				return err
			}

			if len(assignees) != len(in.AssigneeIDs) {
				return fmt.Errorf("one or more assignees could not be found")
			}
		}

		task := models.Task{
			Title:       in.Title,
			Description: in.Description,
			DueDate:     in.DueDate,
			Priority:    in.Priority,
			Status:      in.Status,
			ProjectID:   projectID,
			CreatedByID: creatorID,
			Assignees:   assignees,
		}

		// Omit stops gorm from re-saving the assignee rows; only the
		// join rows are written.
		if err := tx.Omit("Assignees.*").Create(&task).Error; err != nil {
			return err
		}

		taskID = task.ID
		return nil
	})

	if err != nil {
		return nil, err
	}

	return s.findExpanded(ctx, taskID)
}

// FindVisible loads the task only if the user created it or is assigned to
// it. Anything else reads as not found.
func (s *TaskStore) FindVisible(ctx context.Context, taskID, userID string) (*models.Task, error) {
	var task models.Task

	err := s.conn.WithContext(ctx).
		Scopes(authz.TaskVisible(userID)).
		Preload("Assignees").
		Where("tasks.id = ?", taskID).
		First(&task).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &task, nil
}

// ListVisible returns the user's tasks (created or assigned), newest first.
func (s *TaskStore) ListVisible(ctx context.Context, userID string) ([]models.Task, error) {
	var tasks []models.Task

	err := s.conn.WithContext(ctx).
		Scopes(authz.TaskVisible(userID)).
		Preload("Assignees").
		Order("tasks.created_at DESC").
		Find(&tasks).Error

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (s *TaskStore) UpdateStatus(ctx context.Context, taskID string, status models.TaskStatus) (*models.Task, error) {
	result := s.conn.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", taskID).
		Update("status", status)

	if result.Error != nil {
		return nil, result.Error
	}

	var task models.Task

	err := s.conn.WithContext(ctx).
		Preload("Assignees").
		Where("id = ?", taskID).
		First(&task).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &task, nil
}

func (s *TaskStore) Delete(ctx context.Context, taskID string) error {
	return s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_assignees WHERE task_id = ?", taskID).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", taskID).Delete(&models.Task{}).Error
	})
}

func findOrCreateDefaultProject(tx *gorm.DB, creatorID string) (string, error) {
	var project models.Project

	err := tx.Where("name = ? AND created_by_id = ?", DefaultProjectName, creatorID).
		First(&project).Error

	if err == nil {
		return project.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	project = models.Project{
		Name:        DefaultProjectName,
		Description: "Default project for personal tasks",
		StartDate:   time.Now(),
		EndDate:     nil,
		Status:      models.ProjectActive,
		CreatedByID: creatorID,
	}

	if err := tx.Create(&project).Error; err != nil {
		return "", err
	}

	return project.ID, nil
}

func (s *TaskStore) findExpanded(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task

	err := s.conn.WithContext(ctx).
		Preload("Assignees").
		Preload("CreatedBy", func(conn *gorm.DB) *gorm.DB {
			return conn.Select("id", "name", "email")
		}).
		Preload("Project", func(conn *gorm.DB) *gorm.DB {
			return conn.Select("id", "name")
		}).
		Where("id = ?", id).
		First(&task).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &task, nil
}
