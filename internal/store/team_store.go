package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/authz"
	"github.com/taskhive-dev/taskhive/internal/models"
)

type TeamStore struct {
	conn *gorm.DB
}

func NewTeamStore(conn *gorm.DB) *TeamStore {
	return &TeamStore{conn: conn}
}

// Create creates the team and enrolls the owner as its first member in one
// transaction.
func (s *TeamStore) Create(ctx context.Context, ownerID string, name, description string) (*models.Team, error) {
	team := models.Team{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}

	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		return tx.Exec(
			"INSERT INTO team_members (team_id, user_id) VALUES (?, ?)",
			team.ID, ownerID,
		).Error
	})

	if err != nil {
		return nil, err
	}

	return s.FindByID(ctx, team.ID)
}

func (s *TeamStore) FindByID(ctx context.Context, id string) (*models.Team, error) {
	var team models.Team

	err := s.conn.WithContext(ctx).
		Preload("Owner").
		Preload("Members").
		Where("id = ?", id).
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &team, nil
}

// ListVisible returns the teams the user owns or belongs to, with owner and
// members expanded.
func (s *TeamStore) ListVisible(ctx context.Context, userID string) ([]models.Team, error) {
	var teams []models.Team

	err := s.conn.WithContext(ctx).
		Scopes(authz.TeamVisible(userID)).
		Preload("Owner").
		Preload("Members").
		Find(&teams).Error

	if err != nil {
		return nil, err
	}

	return teams, nil
}

// AddMember inserts the membership row. The duplicate guard runs inside the
// transaction so a concurrent add cannot slip through between check and
// insert.
func (s *TeamStore) AddMember(ctx context.Context, teamID, userID string) error {
	return s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team models.Team

		if err := tx.Where("id = ?", teamID).First(&team).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if team.OwnerID == userID {
			return ErrAlreadyMember
		}

		var count int64

		err := tx.Table("team_members").
			Where("team_id = ? AND user_id = ?", teamID, userID).
			Count(&count).Error

		if err != nil {
			return err
		}

		if count > 0 {
			return ErrAlreadyMember
		}

		return tx.Exec(
			"INSERT INTO team_members (team_id, user_id) VALUES (?, ?)",
			teamID, userID,
		).Error
	})
}

// RemoveMember deletes the membership row. Removing a user who is not a
// member is a no-op, as before.
func (s *TeamStore) RemoveMember(ctx context.Context, teamID, memberID string) error {
	return s.conn.WithContext(ctx).
		Exec("DELETE FROM team_members WHERE team_id = ? AND user_id = ?", teamID, memberID).
		Error
}
