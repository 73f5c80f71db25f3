package memberships

import (
	"github.com/synapsehq/synapse-backend/pkg/db/models"
)

type sentRequestRow struct {
	models.JoinRequest
	ProjectTitle string `gorm:"column:project_title"`
}

type receivedRequestRow struct {
	models.JoinRequest
	ProjectTitle   string `gorm:"column:project_title"`
	RequesterName  string `gorm:"column:requester_name"`
	RequesterEmail string `gorm:"column:requester_email"`
}

type projectMemberRow struct {
	models.ProjectMembership
	Name  string `gorm:"column:name"`
	Email string `gorm:"column:email"`
}

func sentRequestsFromRows(rows []sentRequestRow) []SentRequest {
	out := make([]SentRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, SentRequest{
			RequestID:    row.ID,
			ProjectID:    row.ProjectID,
			ProjectTitle: row.ProjectTitle,
			Status:       row.Status,
			Message:      copyStringPointer(row.Message),
			CreatedAt:    row.CreatedAt,
		})
	}
	return out
}

func receivedRequestsFromRows(rows []receivedRequestRow) []ReceivedRequest {
	out := make([]ReceivedRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, ReceivedRequest{
			RequestID:      row.ID,
			ProjectID:      row.ProjectID,
			ProjectTitle:   row.ProjectTitle,
			RequesterID:    row.RequesterID,
			RequesterName:  row.RequesterName,
			RequesterEmail: row.RequesterEmail,
			Status:         row.Status,
			Message:        copyStringPointer(row.Message),
			CreatedAt:      row.CreatedAt,
		})
	}
	return out
}

func projectMembersFromRows(rows []projectMemberRow) []ProjectMember {
	out := make([]ProjectMember, 0, len(rows))
	for _, row := range rows {
		out = append(out, ProjectMember{
			UserID:   row.UserID,
			Name:     row.Name,
			Email:    row.Email,
			Role:     row.Role,
			JoinedAt: row.CreatedAt,
		})
	}
	return out
}

func copyStringPointer(src *string) *string {
	if src == nil {
		return nil
	}
	dst := *src
	return &dst
}
