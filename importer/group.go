package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mmdatafocus/chms_sampledata/models"
)

// groupTypeNames maps document group type attributes to seeded group types.
var groupTypeNames = map[string]string{
	"serving":     models.GroupTypeServingTeam,
	"smallgroup":  models.GroupTypeSmallGroup,
	"small-group": models.GroupTypeSmallGroup,
	"general":     models.GroupTypeGeneral,
	"security":    models.GroupTypeSecurityRole,
	"checkin":     models.GroupTypeCheckInArea,
}

// importGroups walks the document's group tree. A group with a blank type
// is an invalid entry: it is skipped with a log line, and its siblings are
// still processed. (Its children cannot be processed since they would need
// the skipped parent.)
func (m *Manager) importGroups(ctx context.Context, fragments []XGroup, parentGroupId *int) error {
	for _, frag := range fragments {
		if strings.TrimSpace(frag.Type) == "" {
			m.log.WithField("group", frag.Guid).Warn("group has no type; skipping it and its children")
			continue
		}
		typeName, ok := groupTypeNames[strings.ToLower(strings.TrimSpace(frag.Type))]
		if !ok {
			return fmt.Errorf("%w: group %s type %q", ErrUnsupportedValue, frag.Guid, frag.Type)
		}
		gt := m.groupTypes[typeName]
		if gt == nil {
			return fmt.Errorf("%w: group type %q not seeded", ErrFatalConfiguration, typeName)
		}

		if existing, err := m.store.GroupByGUID(ctx, frag.Guid); err != nil {
			return err
		} else if existing != nil {
			m.ids.RegisterGroup(frag.Guid, existing.ID)
			// Members may have been deleted and recreated since the group
			// was first imported; re-add the missing ones.
			if err := m.addGroupMembers(ctx, existing, typeName, frag.Members); err != nil {
				return err
			}
			if err := m.importGroups(ctx, frag.Children, &existing.ID); err != nil {
				return err
			}
			continue
		}

		group := &models.Group{
			Guid:           frag.Guid,
			GroupTypeId:    gt.ID,
			ParentGroupId:  parentGroupId,
			Name:           frag.Name,
			IsSecurityRole: newBool(typeName == models.GroupTypeSecurityRole),
			IsActive:       newBool(true),
		}
		if frag.CampusGuid != "" {
			if campusId, ok := m.campuses[frag.CampusGuid]; ok {
				group.CampusId = &campusId
			}
		}
		if frag.MeetingLocationGuid != "" {
			locId, err := m.ids.Location(frag.MeetingLocationGuid)
			if err != nil {
				return err
			}
			group.LocationId = &locId
		}
		if frag.Schedule != "" {
			schedule, err := m.store.ScheduleByName(ctx, frag.Schedule)
			if err != nil {
				return err
			}
			if schedule != nil {
				group.ScheduleId = &schedule.ID
			}
		}

		if err := m.store.Add(ctx, group); err != nil {
			return err
		}
		if err := m.store.SaveChanges(ctx); err != nil {
			return fmt.Errorf("create group %s: %w", frag.Guid, err)
		}
		m.ids.RegisterGroup(frag.Guid, group.ID)

		if frag.Topic != "" {
			if _, err := m.registry.GetOrAdd(ctx, models.DefinedTypeGroupTopic, frag.Topic); err != nil {
				return err
			}
			if err := m.store.Add(ctx, &models.GroupAttributeValue{
				GroupId:      group.ID,
				AttributeKey: "Topic",
				Value:        frag.Topic,
			}); err != nil {
				return err
			}
		}
		for _, attr := range frag.Attributes {
			if err := m.store.Add(ctx, &models.GroupAttributeValue{
				GroupId:      group.ID,
				AttributeKey: attr.Key,
				Value:        attr.Value,
			}); err != nil {
				return err
			}
		}

		if err := m.addGroupMembers(ctx, group, typeName, frag.Members); err != nil {
			return err
		}

		if err := m.importGroups(ctx, frag.Children, &group.ID); err != nil {
			return err
		}
	}
	return nil
}

// addGroupMembers resolves member references and roles. A member with an
// unknown role is skipped; a member guid that never resolved is a hard
// failure (ordering bug).
func (m *Manager) addGroupMembers(ctx context.Context, group *models.Group, typeName string, members []XGroupMember) error {
	for _, gm := range members {
		personId, err := m.ids.Person(gm.PersonGuid)
		if err != nil {
			return err
		}
		roleName := gm.Role
		if roleName == "" {
			roleName = models.RoleMember
		}
		role := m.role(typeName, roleName)
		if role == nil {
			m.log.WithField("group", group.Guid).WithField("role", roleName).
				Debug("unknown group role; skipping member")
			continue
		}
		exists, err := m.store.GroupMemberExists(ctx, group.ID, personId, role.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := m.store.Add(ctx, &models.GroupMember{
			GroupId:         group.ID,
			PersonId:        personId,
			GroupTypeRoleId: role.ID,
		}); err != nil {
			return err
		}
	}
	return m.store.SaveChanges(ctx)
}

// importSecurityRoles creates one security-role group per fragment.
func (m *Manager) importSecurityRoles(ctx context.Context, fragments []XSecurityRole) error {
	securityType := m.groupTypes[models.GroupTypeSecurityRole]
	if securityType == nil {
		return fmt.Errorf("%w: security role group type not seeded", ErrFatalConfiguration)
	}

	for _, frag := range fragments {
		guid := frag.Guid
		if guid == "" {
			guid = uuid.NewString()
		}

		if existing, err := m.store.GroupByGUID(ctx, guid); err != nil {
			return err
		} else if existing != nil {
			m.ids.RegisterGroup(guid, existing.ID)
			m.securityGroupIds = append(m.securityGroupIds, existing.ID)
			if err := m.addGroupMembers(ctx, existing, models.GroupTypeSecurityRole, frag.Members); err != nil {
				return err
			}
			continue
		}

		group := &models.Group{
			Guid:           guid,
			GroupTypeId:    securityType.ID,
			Name:           frag.Name,
			IsSecurityRole: newBool(true),
			IsActive:       newBool(true),
		}
		if err := m.store.Add(ctx, group); err != nil {
			return err
		}
		if err := m.store.SaveChanges(ctx); err != nil {
			return fmt.Errorf("create security role %s: %w", frag.Name, err)
		}
		m.ids.RegisterGroup(guid, group.ID)
		m.securityGroupIds = append(m.securityGroupIds, group.ID)

		if err := m.addGroupMembers(ctx, group, models.GroupTypeSecurityRole, frag.Members); err != nil {
			return err
		}
	}
	return nil
}
