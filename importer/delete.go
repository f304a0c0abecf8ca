package importer

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/chms_sampledata/models"
)

// deleteExistingData removes everything a previous run created for the
// document's families so the same external keys can be recreated without
// unique-constraint conflicts. Children are always removed before parents:
// transaction details before transactions before batches, memberships
// before groups, aliases before people.
func (m *Manager) deleteExistingData(ctx context.Context, doc *Document) error {
	return m.store.RunInTransaction(ctx, func(tx Store) error {
		restore := m.rebindStore(tx)
		defer restore()

		for _, fam := range doc.Families {
			if err := m.deleteFamilyClosure(ctx, fam.Guid); err != nil {
				return fmt.Errorf("delete family %s: %w", fam.Guid, err)
			}
		}
		return nil
	})
}

func (m *Manager) deleteFamilyClosure(ctx context.Context, familyGuid string) error {
	family, err := m.store.GroupByGUID(ctx, familyGuid)
	if err != nil {
		return err
	}
	if family == nil {
		return nil
	}

	members, err := m.store.MembersOfGroup(ctx, family.ID)
	if err != nil {
		return err
	}

	seen := make(map[int]bool)
	var emptyBatchCandidates []int
	for _, member := range members {
		if seen[member.PersonId] {
			continue
		}
		seen[member.PersonId] = true
		batchIds, err := m.deletePersonClosure(ctx, member.PersonId)
		if err != nil {
			return err
		}
		emptyBatchCandidates = append(emptyBatchCandidates, batchIds...)
	}

	// Batches this family's transactions belonged to may now be empty.
	for _, batchId := range emptyBatchCandidates {
		count, err := m.store.TransactionCountOfBatch(ctx, batchId)
		if err != nil {
			return err
		}
		if count == 0 {
			if err := m.store.Delete(ctx, &models.FinancialBatch{ID: batchId}); err != nil {
				return err
			}
		}
	}

	return m.store.Delete(ctx, &models.Group{ID: family.ID})
}

// deletePersonClosure removes one person and every dependent record,
// returning the ids of batches that lost transactions.
func (m *Manager) deletePersonClosure(ctx context.Context, personId int) ([]int, error) {
	aliases, err := m.store.AliasesOfPerson(ctx, personId)
	if err != nil {
		return nil, err
	}
	aliasIds := make([]int, 0, len(aliases))
	for _, alias := range aliases {
		aliasIds = append(aliasIds, alias.ID)
	}

	var batchIds []int
	if len(aliasIds) > 0 {
		txns, err := m.store.TransactionsOfAliases(ctx, aliasIds)
		if err != nil {
			return nil, err
		}
		for _, txn := range txns {
			details, err := m.store.DetailsOfTransaction(ctx, txn.ID)
			if err != nil {
				return nil, err
			}
			for _, detail := range details {
				if err := m.store.Delete(ctx, &models.FinancialTransactionDetail{ID: detail.ID}); err != nil {
					return nil, err
				}
			}
			if txn.CheckImageId != nil {
				if err := m.store.Delete(ctx, &models.BinaryFile{ID: *txn.CheckImageId}); err != nil {
					return nil, err
				}
			}
			if err := m.store.Delete(ctx, &models.FinancialTransaction{ID: txn.ID}); err != nil {
				return nil, err
			}
			batchIds = append(batchIds, txn.BatchId)
		}

		attendance, err := m.store.AttendanceOfAliases(ctx, aliasIds)
		if err != nil {
			return nil, err
		}
		for _, att := range attendance {
			if err := m.store.Delete(ctx, &models.Attendance{ID: att.ID}); err != nil {
				return nil, err
			}
			if att.AttendanceCodeId != 0 {
				if err := m.store.Delete(ctx, &models.AttendanceCode{ID: att.AttendanceCodeId}); err != nil {
					return nil, err
				}
			}
		}

		requests, err := m.store.ConnectionRequestsOfAliases(ctx, aliasIds)
		if err != nil {
			return nil, err
		}
		for _, req := range requests {
			if err := m.store.Delete(ctx, &models.ConnectionRequest{ID: req.ID}); err != nil {
				return nil, err
			}
		}

		follows, err := m.store.FollowingOfAliases(ctx, aliasIds)
		if err != nil {
			return nil, err
		}
		for _, f := range follows {
			if err := m.store.Delete(ctx, &models.Following{ID: f.ID}); err != nil {
				return nil, err
			}
		}
	}

	if err := m.deletePersonChildRows(ctx, personId); err != nil {
		return nil, err
	}

	// Memberships before groups; a known-relationships container owned by
	// this person goes away with its remaining memberships.
	memberships, err := m.store.MembershipsOfPerson(ctx, personId)
	if err != nil {
		return nil, err
	}
	knownRelType, err := m.store.GroupTypeByName(ctx, models.GroupTypeKnownRelationships)
	if err != nil {
		return nil, err
	}
	var ownerRole *models.GroupTypeRole
	if knownRelType != nil {
		ownerRole, err = m.store.GroupTypeRoleByName(ctx, knownRelType.ID, models.RoleOwner)
		if err != nil {
			return nil, err
		}
	}
	for _, membership := range memberships {
		group, err := m.store.GroupByID(ctx, membership.GroupId)
		if err != nil {
			return nil, err
		}
		if err := m.store.Delete(ctx, &models.GroupMember{ID: membership.ID}); err != nil {
			return nil, err
		}
		// The person's own relationship container goes with them. Containers
		// they merely appear in keep existing, minus this membership.
		if group != nil && knownRelType != nil && ownerRole != nil &&
			group.GroupTypeId == knownRelType.ID && membership.GroupTypeRoleId == ownerRole.ID {
			others, err := m.store.MembersOfGroup(ctx, group.ID)
			if err != nil {
				return nil, err
			}
			for _, other := range others {
				if err := m.store.Delete(ctx, &models.GroupMember{ID: other.ID}); err != nil {
					return nil, err
				}
			}
			if err := m.store.Delete(ctx, &models.Group{ID: group.ID}); err != nil {
				return nil, err
			}
		}
	}

	for _, alias := range aliasIds {
		if err := m.store.Delete(ctx, &models.PersonAlias{ID: alias}); err != nil {
			return nil, err
		}
	}

	person, err := m.store.PersonByID(ctx, personId)
	if err != nil {
		return nil, err
	}
	if person != nil && person.PhotoId != nil {
		if err := m.store.Delete(ctx, &models.BinaryFile{ID: *person.PhotoId}); err != nil {
			return nil, err
		}
	}
	return batchIds, m.store.Delete(ctx, &models.Person{ID: personId})
}

func (m *Manager) deletePersonChildRows(ctx context.Context, personId int) error {
	logins, err := m.store.LoginsOfPerson(ctx, personId)
	if err != nil {
		return err
	}
	for _, login := range logins {
		if err := m.store.Delete(ctx, &models.UserLogin{ID: login.ID}); err != nil {
			return err
		}
	}

	attrs, err := m.store.AttributeValuesOfPerson(ctx, personId)
	if err != nil {
		return err
	}
	for _, attr := range attrs {
		if err := m.store.Delete(ctx, &models.AttributeValue{ID: attr.ID}); err != nil {
			return err
		}
	}

	notes, err := m.store.NotesOfPerson(ctx, personId)
	if err != nil {
		return err
	}
	for _, note := range notes {
		if err := m.store.Delete(ctx, &models.Note{ID: note.ID}); err != nil {
			return err
		}
	}

	phones, err := m.store.PhoneNumbersOfPerson(ctx, personId)
	if err != nil {
		return err
	}
	for _, phone := range phones {
		if err := m.store.Delete(ctx, &models.PhoneNumber{ID: phone.ID}); err != nil {
			return err
		}
	}

	prevNames, err := m.store.PreviousNamesOfPerson(ctx, personId)
	if err != nil {
		return err
	}
	for _, prev := range prevNames {
		if err := m.store.Delete(ctx, &models.PersonPreviousName{ID: prev.ID}); err != nil {
			return err
		}
	}
	return nil
}
