package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mmdatafocus/chms_sampledata/models"
)

// relationshipRolePairs maps a document relationship name to its
// (forward, inverse) role pair within the known-relationships group type.
// Unknown names are skipped, which keeps forward-compatible documents from
// failing a whole run over one unrecognized relationship.
var relationshipRolePairs = map[string][2]string{
	"step-parent":     {"Step-parent", "Step-child"},
	"step-child":      {"Step-child", "Step-parent"},
	"grandparent":     {"Grandparent", "Grandchild"},
	"grandchild":      {"Grandchild", "Grandparent"},
	"parent":          {"Parent", "Child"},
	"child":           {"Child", "Parent"},
	"sibling":         {"Sibling", "Sibling"},
	"invited":         {"Invited", "Invited-by"},
	"invited-by":      {"Invited-by", "Invited"},
	"can-check-in":    {"Can-check-in", "Allow-check-in-by"},
	"previous-spouse": {"Previous-spouse", "Previous-spouse"},
	"related":         {"Related", "Related"},
	"business":        {"Business", "Business"},
}

// linkRelationship creates the forward edge and its declared inverse.
// Re-linking an identical pair is a no-op per role.
func (m *Manager) linkRelationship(ctx context.Context, personAGuid, personBGuid, relationship string) error {
	pair, ok := relationshipRolePairs[strings.ToLower(strings.TrimSpace(relationship))]
	if !ok {
		m.log.WithField("relationship", relationship).Debug("unknown relationship name; skipping")
		return nil
	}
	if err := m.addRelationshipEdge(ctx, personAGuid, personBGuid, pair[0]); err != nil {
		return err
	}
	return m.addRelationshipEdge(ctx, personBGuid, personAGuid, pair[1])
}

// addRelationshipEdge puts member into owner's relationship container under
// the named role, creating the container on first use.
func (m *Manager) addRelationshipEdge(ctx context.Context, ownerGuid, memberGuid, roleName string) error {
	ownerId, err := m.ids.Person(ownerGuid)
	if err != nil {
		return err
	}
	memberId, err := m.ids.Person(memberGuid)
	if err != nil {
		return err
	}

	role := m.role(models.GroupTypeKnownRelationships, roleName)
	if role == nil {
		// The role table is seeded from the same map, so a miss here means
		// the seed and the pair table drifted; skip rather than abort.
		m.log.WithField("role", roleName).Debug("relationship role not found; skipping edge")
		return nil
	}

	containerId, err := m.ensureRelationshipContainer(ctx, ownerGuid, ownerId)
	if err != nil {
		return err
	}

	exists, err := m.store.GroupMemberExists(ctx, containerId, memberId, role.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	member := &models.GroupMember{
		GroupId:         containerId,
		PersonId:        memberId,
		GroupTypeRoleId: role.ID,
	}
	if err := m.store.Add(ctx, member); err != nil {
		return err
	}
	return m.store.SaveChanges(ctx)
}

// ensureRelationshipContainer finds or creates the per-person grouping that
// holds the person's outward relationship edges. The owning person always
// holds the Owner role in it.
func (m *Manager) ensureRelationshipContainer(ctx context.Context, personGuid string, personId int) (int, error) {
	if id, ok := m.ids.RelationshipGroup(personGuid); ok {
		return id, nil
	}

	gt := m.groupTypes[models.GroupTypeKnownRelationships]
	if gt == nil {
		return 0, fmt.Errorf("%w: known relationships group type not seeded", ErrFatalConfiguration)
	}
	ownerRole := m.role(models.GroupTypeKnownRelationships, models.RoleOwner)
	if ownerRole == nil {
		return 0, fmt.Errorf("%w: relationship owner role not seeded", ErrFatalConfiguration)
	}

	group := &models.Group{
		Guid:        uuid.NewString(),
		GroupTypeId: gt.ID,
		Name:        models.GroupTypeKnownRelationships,
		IsActive:    newBool(true),
	}
	if err := m.store.Add(ctx, group); err != nil {
		return 0, err
	}
	if err := m.store.SaveChanges(ctx); err != nil {
		return 0, fmt.Errorf("create relationship container: %w", err)
	}

	owner := &models.GroupMember{
		GroupId:         group.ID,
		PersonId:        personId,
		GroupTypeRoleId: ownerRole.ID,
	}
	if err := m.store.Add(ctx, owner); err != nil {
		return 0, err
	}
	if err := m.store.SaveChanges(ctx); err != nil {
		return 0, err
	}

	m.ids.RegisterRelationshipGroup(personGuid, group.ID)
	return group.ID, nil
}
