package importer

import (
	"context"

	"github.com/mmdatafocus/chms_sampledata/config"
	"github.com/mmdatafocus/chms_sampledata/models"
	"github.com/sirupsen/logrus"
)

// postProcess repairs the derived person columns and drops cached state
// after the creation transaction committed. Every step logs its own
// failure and keeps going: the imported data is valid without them and
// they can all be re-run.
//
// The recomputes only walk the families touched by this run. Families the
// run never wrote keep their derived columns, so a full-table sweep would
// only rewrite values that cannot have changed.
func (m *Manager) postProcess(ctx context.Context) {
	if err := m.recomputePrimaryFamilies(ctx); err != nil {
		config.LogError(m.log, "importer", "postProcess", "recompute primary families", nil, err)
	}
	if err := m.recomputeGivingLeaders(ctx); err != nil {
		config.LogError(m.log, "importer", "postProcess", "recompute giving leaders", nil, err)
	}
	if err := m.recomputeBirthYears(ctx); err != nil {
		config.LogError(m.log, "importer", "postProcess", "recompute birth years", nil, err)
	}

	invalidate := func() {
		for _, pattern := range []string{"person:*", "security:*"} {
			if err := config.RemoveRedisKeysByPattern(context.Background(), pattern); err != nil {
				m.log.WithFields(logrus.Fields{"pattern": pattern}).
					WithError(err).Warn("cache invalidation failed")
			}
		}
	}
	// A seeded run wants a reproducible completion point, so it
	// invalidates synchronously instead of racing with the caller.
	if m.deterministic() {
		invalidate()
	} else {
		go invalidate()
	}
}

func (m *Manager) deterministic() bool {
	return m.opts.RandomizerSeed != 0 || !m.opts.Now.IsZero()
}

// recomputePrimaryFamilies stamps each generated person with the family
// group they were created under.
func (m *Manager) recomputePrimaryFamilies(ctx context.Context) error {
	for _, family := range m.familyGroups {
		members, err := m.store.MembersOfGroup(ctx, family.ID)
		if err != nil {
			return err
		}
		for _, member := range members {
			person, err := m.store.PersonByID(ctx, member.PersonId)
			if err != nil {
				return err
			}
			if person == nil || (person.PrimaryFamilyId != nil && *person.PrimaryFamilyId == family.ID) {
				continue
			}
			familyId := family.ID
			person.PrimaryFamilyId = &familyId
			if err := m.store.Update(ctx, person); err != nil {
				return err
			}
		}
	}
	return nil
}

// recomputeGivingLeaders points everyone who gives as part of a family
// unit at that unit's leading adult. The leader is the adult with the
// lowest id, which is the first adult created for the family.
func (m *Manager) recomputeGivingLeaders(ctx context.Context) error {
	leaders := make(map[int]int) // giving group id -> leader person id
	for _, person := range m.generatedPeople {
		if person.GivingGroupId == nil {
			continue
		}
		groupId := *person.GivingGroupId
		if _, ok := leaders[groupId]; !ok {
			leader, err := m.givingLeaderOf(ctx, groupId)
			if err != nil {
				return err
			}
			leaders[groupId] = leader
		}
		leaderId := leaders[groupId]
		if leaderId == 0 {
			continue
		}
		if person.GivingLeaderId != nil && *person.GivingLeaderId == leaderId {
			continue
		}
		person.GivingLeaderId = &leaderId
		if err := m.store.Update(ctx, person); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) givingLeaderOf(ctx context.Context, groupId int) (int, error) {
	members, err := m.store.MembersOfGroup(ctx, groupId)
	if err != nil {
		return 0, err
	}
	adultRole := m.role(models.GroupTypeFamily, models.RoleAdult)
	leader := 0
	for _, member := range members {
		if adultRole != nil && member.GroupTypeRoleId != adultRole.ID {
			continue
		}
		if leader == 0 || member.PersonId < leader {
			leader = member.PersonId
		}
	}
	return leader, nil
}

func (m *Manager) recomputeBirthYears(ctx context.Context) error {
	for _, person := range m.generatedPeople {
		if person.BirthDate == nil || person.BirthYear == person.BirthDate.Year() {
			continue
		}
		person.BirthYear = person.BirthDate.Year()
		if err := m.store.Update(ctx, person); err != nil {
			return err
		}
	}
	return nil
}
