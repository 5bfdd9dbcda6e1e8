// Package authz holds the authorization rules as pure predicates over loaded
// entities, plus the matching gorm scopes used to narrow reads at query time.
// Read paths use the scopes so an inaccessible row is indistinguishable from a
// missing one; write paths check the predicates and answer 403 with a reason.
package authz

import (
	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/models"
)

// IsTeamMember reports whether the user is the team owner or in the members
// set. The owner counts as a member even when absent from the set.
func IsTeamMember(userID string, team *models.Team) bool {
	if team.OwnerID == userID {
		return true
	}

	for _, member := range team.Members {
		if member.ID == userID {
			return true
		}
	}

	return false
}

// CanViewTeam: owner or member.
func CanViewTeam(userID string, team *models.Team) bool {
	return IsTeamMember(userID, team)
}

// CanManageTeam: only the owner may add or remove members.
func CanManageTeam(userID string, team *models.Team) bool {
	return team.OwnerID == userID
}

// CanDeleteProject: only the creator; team membership is insufficient.
func CanDeleteProject(userID string, project *models.Project) bool {
	return project.CreatedByID == userID
}

// CanAccessTask: creator or assignee. The same predicate covers view, update
// and delete.
func CanAccessTask(userID string, task *models.Task) bool {
	if task.CreatedByID == userID {
		return true
	}

	for _, assignee := range task.Assignees {
		if assignee.ID == userID {
			return true
		}
	}

	return false
}

// TeamVisible scopes team reads to teams the user owns or belongs to.
func TeamVisible(userID string) func(*gorm.DB) *gorm.DB {
	return func(conn *gorm.DB) *gorm.DB {
		return conn.Where(
			"teams.owner_id = ? OR teams.id IN (SELECT team_id FROM team_members WHERE user_id = ?)",
			userID, userID,
		)
	}
}

// ProjectVisible scopes project reads to projects the user created or whose
// team the user owns or belongs to.
func ProjectVisible(userID string) func(*gorm.DB) *gorm.DB {
	return func(conn *gorm.DB) *gorm.DB {
		return conn.Where(
			"projects.created_by_id = ?"+
				" OR projects.team_id IN (SELECT team_id FROM team_members WHERE user_id = ?)"+
				" OR projects.team_id IN (SELECT id FROM teams WHERE owner_id = ?)",
			userID, userID, userID,
		)
	}
}

// TaskVisible scopes task reads to tasks the user created or is assigned to.
func TaskVisible(userID string) func(*gorm.DB) *gorm.DB {
	return func(conn *gorm.DB) *gorm.DB {
		return conn.Where(
			"tasks.created_by_id = ? OR tasks.id IN (SELECT task_id FROM task_assignees WHERE user_id = ?)",
			userID, userID,
		)
	}
}
