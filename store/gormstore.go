package store

import (
	"context"
	"errors"

	"github.com/mmdatafocus/chms_sampledata/config"
	"github.com/mmdatafocus/chms_sampledata/importer"
	"github.com/mmdatafocus/chms_sampledata/models"
	"gorm.io/gorm"
)

// GormStore implements importer.Store on a gorm DB handle. Adds queue in
// memory and flush on SaveChanges with persistence hooks disabled; the
// orchestrator replays the hook side effects itself in post-processing.
type GormStore struct {
	db      *gorm.DB
	pending []any
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Add(ctx context.Context, entity any) error {
	s.pending = append(s.pending, entity)
	return nil
}

func (s *GormStore) SaveChanges(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	flushCtx, cancel := context.WithTimeout(ctx, config.BulkSaveTimeout)
	defer cancel()
	session := s.db.WithContext(flushCtx).Session(&gorm.Session{SkipHooks: true})
	for _, entity := range s.pending {
		if err := session.Create(entity).Error; err != nil {
			return err
		}
	}
	s.pending = s.pending[:0]
	return nil
}

func (s *GormStore) Update(ctx context.Context, entity any) error {
	return s.db.WithContext(ctx).Session(&gorm.Session{SkipHooks: true}).Save(entity).Error
}

func (s *GormStore) Delete(ctx context.Context, entity any) error {
	return s.db.WithContext(ctx).Delete(entity).Error
}

func (s *GormStore) RunInTransaction(ctx context.Context, fn func(tx importer.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// first fetches a single row, translating gorm's not-found into (nil, nil).
func first[T any](ctx context.Context, db *gorm.DB, conds ...any) (*T, error) {
	var row T
	err := db.WithContext(ctx).First(&row, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GormStore) DefinedTypeByName(ctx context.Context, name string) (*models.DefinedType, error) {
	return first[models.DefinedType](ctx, s.db, "name = ?", name)
}

func (s *GormStore) DefinedValueByValue(ctx context.Context, definedTypeId int, value string) (*models.DefinedValue, error) {
	return first[models.DefinedValue](ctx, s.db, "defined_type_id = ? AND value = ?", definedTypeId, value)
}

func (s *GormStore) GroupTypeByName(ctx context.Context, name string) (*models.GroupType, error) {
	return first[models.GroupType](ctx, s.db, "name = ?", name)
}

func (s *GormStore) GroupTypeRoleByName(ctx context.Context, groupTypeId int, name string) (*models.GroupTypeRole, error) {
	return first[models.GroupTypeRole](ctx, s.db, "group_type_id = ? AND name = ?", groupTypeId, name)
}

func (s *GormStore) GroupByGUID(ctx context.Context, guid string) (*models.Group, error) {
	return first[models.Group](ctx, s.db, "guid = ?", guid)
}

func (s *GormStore) GroupByID(ctx context.Context, id int) (*models.Group, error) {
	return first[models.Group](ctx, s.db, "id = ?", id)
}

func (s *GormStore) LocationByGUID(ctx context.Context, guid string) (*models.Location, error) {
	return first[models.Location](ctx, s.db, "guid = ?", guid)
}

func (s *GormStore) CampusByGUID(ctx context.Context, guid string) (*models.Campus, error) {
	return first[models.Campus](ctx, s.db, "guid = ?", guid)
}

func (s *GormStore) PersonByGUID(ctx context.Context, guid string) (*models.Person, error) {
	return first[models.Person](ctx, s.db, "guid = ?", guid)
}

func (s *GormStore) PersonByID(ctx context.Context, id int) (*models.Person, error) {
	return first[models.Person](ctx, s.db, "id = ?", id)
}

func (s *GormStore) ScheduleByName(ctx context.Context, name string) (*models.Schedule, error) {
	return first[models.Schedule](ctx, s.db, "name = ?", name)
}

func (s *GormStore) FinancialAccountByName(ctx context.Context, name string) (*models.FinancialAccount, error) {
	return first[models.FinancialAccount](ctx, s.db, "name = ?", name)
}

func (s *GormStore) FinancialGatewayByGUID(ctx context.Context, guid string) (*models.FinancialGateway, error) {
	return first[models.FinancialGateway](ctx, s.db, "guid = ?", guid)
}

func (s *GormStore) RegistrationTemplateByGUID(ctx context.Context, guid string) (*models.RegistrationTemplate, error) {
	return first[models.RegistrationTemplate](ctx, s.db, "guid = ?", guid)
}

func (s *GormStore) RegistrationInstanceByGUID(ctx context.Context, guid string) (*models.RegistrationInstance, error) {
	return first[models.RegistrationInstance](ctx, s.db, "guid = ?", guid)
}

func (s *GormStore) GroupMemberExists(ctx context.Context, groupId, personId, roleId int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.GroupMember{}).
		Where("group_id = ? AND person_id = ? AND group_type_role_id = ?", groupId, personId, roleId).
		Count(&count).Error
	return count > 0, err
}

func listWhere[T any](ctx context.Context, db *gorm.DB, query string, args ...any) ([]T, error) {
	var rows []T
	err := db.WithContext(ctx).Where(query, args...).Find(&rows).Error
	return rows, err
}

func (s *GormStore) MembersOfGroup(ctx context.Context, groupId int) ([]models.GroupMember, error) {
	return listWhere[models.GroupMember](ctx, s.db, "group_id = ?", groupId)
}

func (s *GormStore) MembershipsOfPerson(ctx context.Context, personId int) ([]models.GroupMember, error) {
	return listWhere[models.GroupMember](ctx, s.db, "person_id = ?", personId)
}

func (s *GormStore) AliasesOfPerson(ctx context.Context, personId int) ([]models.PersonAlias, error) {
	return listWhere[models.PersonAlias](ctx, s.db, "person_id = ?", personId)
}

func (s *GormStore) PhoneNumbersOfPerson(ctx context.Context, personId int) ([]models.PhoneNumber, error) {
	return listWhere[models.PhoneNumber](ctx, s.db, "person_id = ?", personId)
}

func (s *GormStore) PreviousNamesOfPerson(ctx context.Context, personId int) ([]models.PersonPreviousName, error) {
	return listWhere[models.PersonPreviousName](ctx, s.db, "person_id = ?", personId)
}

func (s *GormStore) NotesOfPerson(ctx context.Context, personId int) ([]models.Note, error) {
	return listWhere[models.Note](ctx, s.db, "person_id = ?", personId)
}

func (s *GormStore) AttributeValuesOfPerson(ctx context.Context, personId int) ([]models.AttributeValue, error) {
	return listWhere[models.AttributeValue](ctx, s.db, "person_id = ?", personId)
}

func (s *GormStore) LoginsOfPerson(ctx context.Context, personId int) ([]models.UserLogin, error) {
	return listWhere[models.UserLogin](ctx, s.db, "person_id = ?", personId)
}

func (s *GormStore) TransactionsOfAliases(ctx context.Context, aliasIds []int) ([]models.FinancialTransaction, error) {
	if len(aliasIds) == 0 {
		return nil, nil
	}
	return listWhere[models.FinancialTransaction](ctx, s.db, "authorized_person_alias_id IN ?", aliasIds)
}

func (s *GormStore) DetailsOfTransaction(ctx context.Context, transactionId int) ([]models.FinancialTransactionDetail, error) {
	return listWhere[models.FinancialTransactionDetail](ctx, s.db, "transaction_id = ?", transactionId)
}

func (s *GormStore) AttendanceOfAliases(ctx context.Context, aliasIds []int) ([]models.Attendance, error) {
	if len(aliasIds) == 0 {
		return nil, nil
	}
	return listWhere[models.Attendance](ctx, s.db, "person_alias_id IN ?", aliasIds)
}

func (s *GormStore) ConnectionRequestsOfAliases(ctx context.Context, aliasIds []int) ([]models.ConnectionRequest, error) {
	if len(aliasIds) == 0 {
		return nil, nil
	}
	return listWhere[models.ConnectionRequest](ctx, s.db, "person_alias_id IN ?", aliasIds)
}

func (s *GormStore) FollowingOfAliases(ctx context.Context, aliasIds []int) ([]models.Following, error) {
	if len(aliasIds) == 0 {
		return nil, nil
	}
	return listWhere[models.Following](ctx, s.db, "person_alias_id IN ? OR followed_person_alias_id IN ?", aliasIds, aliasIds)
}

func (s *GormStore) TransactionCountOfBatch(ctx context.Context, batchId int) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.FinancialTransaction{}).
		Where("batch_id = ?", batchId).Count(&count).Error
	return int(count), err
}
