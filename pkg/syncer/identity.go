package syncer

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/pkg/apperror"
	"github.com/raids-lab/projecthub/pkg/db"
	"github.com/raids-lab/projecthub/pkg/events"
)

type userData struct {
	ID             string `json:"id"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	ImageURL  string  `json:"image_url"`
}

func (u *userData) name() string {
	parts := lo.Compact([]string{
		strings.TrimSpace(lo.FromPtr(u.FirstName)),
		strings.TrimSpace(lo.FromPtr(u.LastName)),
	})
	return strings.Join(parts, " ")
}

type organizationData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ImageURL  string `json:"image_url"`
	CreatedBy string `json:"created_by"`
}

type invitationData struct {
	OrganizationID string `json:"organization_id"`
	UserID         string `json:"user_id"`
	EmailAddress   string `json:"email_address"`
	RoleName       string `json:"role_name"`
}

func (i *invitationData) role() model.Role {
	if i.RoleName == "org:admin" || i.RoleName == "admin" {
		return model.RoleAdmin
	}
	return model.RoleMember
}

func decode(ev events.Event, v any) error {
	if err := ev.Decode(v); err != nil {
		return apperror.Wrap(apperror.KindValidation, "malformed "+ev.Name+" payload", err)
	}
	return nil
}

func (s *Syncer) upsertUser(ctx context.Context, tx *db.Store, ev events.Event) error {
	var data userData
	if err := decode(ev, &data); err != nil {
		return err
	}
	if data.ID == "" || len(data.EmailAddresses) == 0 || data.EmailAddresses[0].EmailAddress == "" {
		return apperror.Validation("user event requires an id and an email address")
	}
	return tx.UpsertUser(ctx, &model.User{
		ID:    data.ID,
		Email: data.EmailAddresses[0].EmailAddress,
		Name:  data.name(),
		Image: data.ImageURL,
	})
}

func (s *Syncer) deleteUser(ctx context.Context, tx *db.Store, ev events.Event) error {
	var data userData
	if err := decode(ev, &data); err != nil {
		return err
	}
	if data.ID == "" {
		return apperror.Validation("user event requires an id")
	}
	return tx.DeleteUser(ctx, data.ID)
}

func (s *Syncer) createWorkspace(ctx context.Context, tx *db.Store, ev events.Event) error {
	var data organizationData
	if err := decode(ev, &data); err != nil {
		return err
	}
	if data.ID == "" || data.CreatedBy == "" {
		return apperror.Validation("organization event requires an id and its creator")
	}
	return tx.CreateWorkspaceWithOwner(ctx, &model.Workspace{
		ID:       data.ID,
		Name:     data.Name,
		Slug:     data.Slug,
		ImageURL: data.ImageURL,
		OwnerID:  data.CreatedBy,
	})
}

// updateWorkspace refreshes the profile. An update for a workspace that was
// never created locally creates it when the payload names its creator.
func (s *Syncer) updateWorkspace(ctx context.Context, tx *db.Store, ev events.Event) error {
	var data organizationData
	if err := decode(ev, &data); err != nil {
		return err
	}
	if data.ID == "" {
		return apperror.Validation("organization event requires an id")
	}
	err := tx.UpdateWorkspace(ctx, data.ID, map[string]any{
		"name":      data.Name,
		"slug":      data.Slug,
		"image_url": data.ImageURL,
	})
	if errors.Is(err, apperror.ErrNotFound) && data.CreatedBy != "" {
		return s.createWorkspace(ctx, tx, ev)
	}
	return err
}

func (s *Syncer) deleteWorkspace(ctx context.Context, tx *db.Store, ev events.Event) error {
	var data organizationData
	if err := decode(ev, &data); err != nil {
		return err
	}
	if data.ID == "" {
		return apperror.Validation("organization event requires an id")
	}
	return tx.DeleteWorkspace(ctx, data.ID)
}

// acceptInvitation upserts the membership. Both the user and the workspace
// must have been synced already; otherwise the event fails and is retried.
func (s *Syncer) acceptInvitation(ctx context.Context, tx *db.Store, ev events.Event) error {
	var data invitationData
	if err := decode(ev, &data); err != nil {
		return err
	}
	if data.OrganizationID == "" || (data.UserID == "" && data.EmailAddress == "") {
		return apperror.Validation("invitation event requires an organization and a user")
	}

	var (
		user *model.User
		err  error
	)
	if data.UserID != "" {
		user, err = tx.UserByID(ctx, data.UserID)
	} else {
		user, err = tx.UserByEmail(ctx, data.EmailAddress)
	}
	if err != nil {
		return err
	}
	if _, err = tx.WorkspaceWithMembers(ctx, data.OrganizationID); err != nil {
		return err
	}
	return tx.UpsertWorkspaceMember(ctx, &model.WorkspaceMember{
		WorkspaceID: data.OrganizationID,
		UserID:      user.ID,
		Role:        data.role(),
	})
}
