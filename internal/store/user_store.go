package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/models"
)

type UserStore struct {
	conn *gorm.DB
}

func NewUserStore(conn *gorm.DB) *UserStore {
	return &UserStore{conn: conn}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return s.conn.WithContext(ctx).Create(user).Error
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User

	if err := s.conn.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	if err := s.conn.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// EmailTakenByOther reports whether another user already holds the email.
func (s *UserStore) EmailTakenByOther(ctx context.Context, email string, userID string) (bool, error) {
	var count int64

	err := s.conn.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// UpdateProfile overwrites name, email and image with the supplied values.
// Nil clears the column; the previous store behaved the same way.
func (s *UserStore) UpdateProfile(ctx context.Context, userID string, name, email, image *string) (*models.User, error) {
	updates := map[string]interface{}{
		"name":  name,
		"email": email,
		"image": image,
	}

	result := s.conn.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)

	if result.Error != nil {
		return nil, result.Error
	}

	return s.FindByID(ctx, userID)
}

// AvailableForTeam lists users who could still be added to the team: everyone
// except the caller, the team's owner and its current members.
func (s *UserStore) AvailableForTeam(ctx context.Context, teamID string, selfID string) ([]UserSummary, error) {
	var users []UserSummary

	err := s.conn.WithContext(ctx).
		Model(&models.User{}).
		Select("id, name, email, image").
		Where("id <> ?", selfID).
		Where("id NOT IN (SELECT user_id FROM team_members WHERE team_id = ?)", teamID).
		Where("id NOT IN (SELECT owner_id FROM teams WHERE id = ?)", teamID).
		Scan(&users).Error

	if err != nil {
		return nil, err
	}

	return users, nil
}

// Teammates lists the members of every team the caller owns or belongs to.
func (s *UserStore) Teammates(ctx context.Context, userID string) ([]UserSummary, error) {
	var users []UserSummary

	err := s.conn.WithContext(ctx).
		Model(&models.User{}).
		Select("id, name, email, image").
		Where(
			"id IN (SELECT user_id FROM team_members WHERE team_id IN"+
				" (SELECT id FROM teams WHERE owner_id = ?"+
				" UNION SELECT team_id FROM team_members WHERE user_id = ?))",
			userID, userID,
		).
		Scan(&users).Error

	if err != nil {
		return nil, err
	}

	return users, nil
}
