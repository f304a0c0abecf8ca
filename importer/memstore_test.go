package importer

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/chms_sampledata/models"
)

// memStore is an in-memory Store for package tests. It mirrors the
// production contract: Add queues, SaveChanges assigns ids in insertion
// order, lookups return (nil, nil) on a miss.
type memStore struct {
	seq     int
	pending []any

	definedTypes  []*models.DefinedType
	definedValues []*models.DefinedValue
	groupTypes    []*models.GroupType
	roles         []*models.GroupTypeRole
	groups        []*models.Group
	members       []*models.GroupMember
	groupAttrs    []*models.GroupAttributeValue
	people        []*models.Person
	aliases       []*models.PersonAlias
	phones        []*models.PhoneNumber
	prevNames     []*models.PersonPreviousName
	attrs         []*models.AttributeValue
	notes         []*models.Note
	logins        []*models.UserLogin
	files         []*models.BinaryFile
	follows       []*models.Following
	connections   []*models.ConnectionRequest
	locations     []*models.Location
	campuses      []*models.Campus
	schedules     []*models.Schedule
	accounts      []*models.FinancialAccount
	gateways      []*models.FinancialGateway
	batches       []*models.FinancialBatch
	txns          []*models.FinancialTransaction
	attendance    []*models.Attendance
	codes         []*models.AttendanceCode
	templates     []*models.RegistrationTemplate
	instances     []*models.RegistrationInstance
}

func newMemStore() *memStore { return &memStore{} }

func (s *memStore) nextId() int {
	s.seq++
	return s.seq
}

func (s *memStore) Add(ctx context.Context, entity any) error {
	s.pending = append(s.pending, entity)
	return nil
}

func (s *memStore) SaveChanges(ctx context.Context) error {
	for _, entity := range s.pending {
		if err := s.insert(entity); err != nil {
			return err
		}
	}
	s.pending = nil
	return nil
}

func (s *memStore) insert(entity any) error {
	switch v := entity.(type) {
	case *models.DefinedType:
		v.ID = s.nextId()
		s.definedTypes = append(s.definedTypes, v)
	case *models.DefinedValue:
		v.ID = s.nextId()
		s.definedValues = append(s.definedValues, v)
	case *models.GroupType:
		v.ID = s.nextId()
		s.groupTypes = append(s.groupTypes, v)
	case *models.GroupTypeRole:
		v.ID = s.nextId()
		s.roles = append(s.roles, v)
	case *models.Group:
		v.ID = s.nextId()
		s.groups = append(s.groups, v)
	case *models.GroupMember:
		v.ID = s.nextId()
		s.members = append(s.members, v)
	case *models.GroupAttributeValue:
		v.ID = s.nextId()
		s.groupAttrs = append(s.groupAttrs, v)
	case *models.Person:
		v.ID = s.nextId()
		s.people = append(s.people, v)
	case *models.PersonAlias:
		v.ID = s.nextId()
		s.aliases = append(s.aliases, v)
	case *models.PhoneNumber:
		v.ID = s.nextId()
		s.phones = append(s.phones, v)
	case *models.PersonPreviousName:
		v.ID = s.nextId()
		s.prevNames = append(s.prevNames, v)
	case *models.AttributeValue:
		v.ID = s.nextId()
		s.attrs = append(s.attrs, v)
	case *models.Note:
		v.ID = s.nextId()
		s.notes = append(s.notes, v)
	case *models.UserLogin:
		v.ID = s.nextId()
		s.logins = append(s.logins, v)
	case *models.BinaryFile:
		v.ID = s.nextId()
		s.files = append(s.files, v)
	case *models.Following:
		v.ID = s.nextId()
		s.follows = append(s.follows, v)
	case *models.ConnectionRequest:
		v.ID = s.nextId()
		s.connections = append(s.connections, v)
	case *models.Location:
		v.ID = s.nextId()
		s.locations = append(s.locations, v)
	case *models.Campus:
		v.ID = s.nextId()
		s.campuses = append(s.campuses, v)
	case *models.Schedule:
		v.ID = s.nextId()
		s.schedules = append(s.schedules, v)
	case *models.FinancialAccount:
		v.ID = s.nextId()
		s.accounts = append(s.accounts, v)
	case *models.FinancialGateway:
		v.ID = s.nextId()
		s.gateways = append(s.gateways, v)
	case *models.FinancialBatch:
		v.ID = s.nextId()
		s.batches = append(s.batches, v)
	case *models.FinancialTransaction:
		v.ID = s.nextId()
		for i := range v.Details {
			v.Details[i].ID = s.nextId()
			v.Details[i].TransactionId = v.ID
		}
		s.txns = append(s.txns, v)
	case *models.Attendance:
		v.ID = s.nextId()
		s.attendance = append(s.attendance, v)
	case *models.AttendanceCode:
		v.ID = s.nextId()
		s.codes = append(s.codes, v)
	case *models.RegistrationTemplate:
		v.ID = s.nextId()
		for i := range v.Forms {
			v.Forms[i].ID = s.nextId()
			v.Forms[i].TemplateId = v.ID
			for j := range v.Forms[i].Fields {
				v.Forms[i].Fields[j].ID = s.nextId()
				v.Forms[i].Fields[j].FormId = v.Forms[i].ID
			}
		}
		for i := range v.Fees {
			v.Fees[i].ID = s.nextId()
			v.Fees[i].TemplateId = v.ID
		}
		for i := range v.Discounts {
			v.Discounts[i].ID = s.nextId()
			v.Discounts[i].TemplateId = v.ID
		}
		s.templates = append(s.templates, v)
	case *models.RegistrationInstance:
		v.ID = s.nextId()
		s.instances = append(s.instances, v)
	default:
		return fmt.Errorf("memStore: unhandled entity type %T", entity)
	}
	return nil
}

func (s *memStore) Update(ctx context.Context, entity any) error {
	// Stored values are shared pointers; mutations are already visible.
	return nil
}

func remove[T any](rows []*T, match func(*T) bool) []*T {
	out := rows[:0]
	for _, row := range rows {
		if !match(row) {
			out = append(out, row)
		}
	}
	return out
}

func (s *memStore) Delete(ctx context.Context, entity any) error {
	switch v := entity.(type) {
	case *models.Group:
		s.groups = remove(s.groups, func(r *models.Group) bool { return r.ID == v.ID })
	case *models.GroupMember:
		s.members = remove(s.members, func(r *models.GroupMember) bool { return r.ID == v.ID })
	case *models.Person:
		s.people = remove(s.people, func(r *models.Person) bool { return r.ID == v.ID })
	case *models.PersonAlias:
		s.aliases = remove(s.aliases, func(r *models.PersonAlias) bool { return r.ID == v.ID })
	case *models.PhoneNumber:
		s.phones = remove(s.phones, func(r *models.PhoneNumber) bool { return r.ID == v.ID })
	case *models.PersonPreviousName:
		s.prevNames = remove(s.prevNames, func(r *models.PersonPreviousName) bool { return r.ID == v.ID })
	case *models.AttributeValue:
		s.attrs = remove(s.attrs, func(r *models.AttributeValue) bool { return r.ID == v.ID })
	case *models.Note:
		s.notes = remove(s.notes, func(r *models.Note) bool { return r.ID == v.ID })
	case *models.UserLogin:
		s.logins = remove(s.logins, func(r *models.UserLogin) bool { return r.ID == v.ID })
	case *models.BinaryFile:
		s.files = remove(s.files, func(r *models.BinaryFile) bool { return r.ID == v.ID })
	case *models.Following:
		s.follows = remove(s.follows, func(r *models.Following) bool { return r.ID == v.ID })
	case *models.ConnectionRequest:
		s.connections = remove(s.connections, func(r *models.ConnectionRequest) bool { return r.ID == v.ID })
	case *models.FinancialBatch:
		s.batches = remove(s.batches, func(r *models.FinancialBatch) bool { return r.ID == v.ID })
	case *models.FinancialTransaction:
		s.txns = remove(s.txns, func(r *models.FinancialTransaction) bool { return r.ID == v.ID })
	case *models.FinancialTransactionDetail:
		for _, txn := range s.txns {
			txn.Details = removeDetail(txn.Details, v.ID)
		}
	case *models.Attendance:
		s.attendance = remove(s.attendance, func(r *models.Attendance) bool { return r.ID == v.ID })
	case *models.AttendanceCode:
		s.codes = remove(s.codes, func(r *models.AttendanceCode) bool { return r.ID == v.ID })
	default:
		return fmt.Errorf("memStore: unhandled delete type %T", entity)
	}
	return nil
}

func removeDetail(details []models.FinancialTransactionDetail, id int) []models.FinancialTransactionDetail {
	out := details[:0]
	for _, d := range details {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}

func (s *memStore) RunInTransaction(ctx context.Context, fn func(tx Store) error) error {
	return fn(s)
}

func (s *memStore) DefinedTypeByName(ctx context.Context, name string) (*models.DefinedType, error) {
	for _, r := range s.definedTypes {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) DefinedValueByValue(ctx context.Context, definedTypeId int, value string) (*models.DefinedValue, error) {
	for _, r := range s.definedValues {
		if r.DefinedTypeId == definedTypeId && r.Value == value {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) GroupTypeByName(ctx context.Context, name string) (*models.GroupType, error) {
	for _, r := range s.groupTypes {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) GroupTypeRoleByName(ctx context.Context, groupTypeId int, name string) (*models.GroupTypeRole, error) {
	for _, r := range s.roles {
		if r.GroupTypeId == groupTypeId && r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) GroupByGUID(ctx context.Context, guid string) (*models.Group, error) {
	for _, r := range s.groups {
		if r.Guid == guid {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) GroupByID(ctx context.Context, id int) (*models.Group, error) {
	for _, r := range s.groups {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) LocationByGUID(ctx context.Context, guid string) (*models.Location, error) {
	for _, r := range s.locations {
		if r.Guid == guid {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) CampusByGUID(ctx context.Context, guid string) (*models.Campus, error) {
	for _, r := range s.campuses {
		if r.Guid == guid {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) PersonByGUID(ctx context.Context, guid string) (*models.Person, error) {
	for _, r := range s.people {
		if r.Guid == guid {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) PersonByID(ctx context.Context, id int) (*models.Person, error) {
	for _, r := range s.people {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) ScheduleByName(ctx context.Context, name string) (*models.Schedule, error) {
	for _, r := range s.schedules {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) FinancialAccountByName(ctx context.Context, name string) (*models.FinancialAccount, error) {
	for _, r := range s.accounts {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) FinancialGatewayByGUID(ctx context.Context, guid string) (*models.FinancialGateway, error) {
	for _, r := range s.gateways {
		if r.Guid == guid {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) RegistrationTemplateByGUID(ctx context.Context, guid string) (*models.RegistrationTemplate, error) {
	for _, r := range s.templates {
		if r.Guid == guid {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) RegistrationInstanceByGUID(ctx context.Context, guid string) (*models.RegistrationInstance, error) {
	for _, r := range s.instances {
		if r.Guid == guid {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memStore) GroupMemberExists(ctx context.Context, groupId, personId, roleId int) (bool, error) {
	for _, r := range s.members {
		if r.GroupId == groupId && r.PersonId == personId && r.GroupTypeRoleId == roleId {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) MembersOfGroup(ctx context.Context, groupId int) ([]models.GroupMember, error) {
	var out []models.GroupMember
	for _, r := range s.members {
		if r.GroupId == groupId {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) MembershipsOfPerson(ctx context.Context, personId int) ([]models.GroupMember, error) {
	var out []models.GroupMember
	for _, r := range s.members {
		if r.PersonId == personId {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) AliasesOfPerson(ctx context.Context, personId int) ([]models.PersonAlias, error) {
	var out []models.PersonAlias
	for _, r := range s.aliases {
		if r.PersonId == personId {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) PhoneNumbersOfPerson(ctx context.Context, personId int) ([]models.PhoneNumber, error) {
	var out []models.PhoneNumber
	for _, r := range s.phones {
		if r.PersonId == personId {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) PreviousNamesOfPerson(ctx context.Context, personId int) ([]models.PersonPreviousName, error) {
	var out []models.PersonPreviousName
	for _, r := range s.prevNames {
		if r.PersonId == personId {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) NotesOfPerson(ctx context.Context, personId int) ([]models.Note, error) {
	var out []models.Note
	for _, r := range s.notes {
		if r.PersonId == personId {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) AttributeValuesOfPerson(ctx context.Context, personId int) ([]models.AttributeValue, error) {
	var out []models.AttributeValue
	for _, r := range s.attrs {
		if r.PersonId == personId {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) LoginsOfPerson(ctx context.Context, personId int) ([]models.UserLogin, error) {
	var out []models.UserLogin
	for _, r := range s.logins {
		if r.PersonId == personId {
			out = append(out, *r)
		}
	}
	return out, nil
}

func containsInt(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s *memStore) TransactionsOfAliases(ctx context.Context, aliasIds []int) ([]models.FinancialTransaction, error) {
	var out []models.FinancialTransaction
	for _, r := range s.txns {
		if containsInt(aliasIds, r.AuthorizedPersonAliasId) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) DetailsOfTransaction(ctx context.Context, transactionId int) ([]models.FinancialTransactionDetail, error) {
	for _, r := range s.txns {
		if r.ID == transactionId {
			return append([]models.FinancialTransactionDetail{}, r.Details...), nil
		}
	}
	return nil, nil
}

func (s *memStore) AttendanceOfAliases(ctx context.Context, aliasIds []int) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, r := range s.attendance {
		if containsInt(aliasIds, r.PersonAliasId) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) ConnectionRequestsOfAliases(ctx context.Context, aliasIds []int) ([]models.ConnectionRequest, error) {
	var out []models.ConnectionRequest
	for _, r := range s.connections {
		if containsInt(aliasIds, r.PersonAliasId) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) FollowingOfAliases(ctx context.Context, aliasIds []int) ([]models.Following, error) {
	var out []models.Following
	for _, r := range s.follows {
		if containsInt(aliasIds, r.PersonAliasId) || containsInt(aliasIds, r.FollowedPersonAliasId) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) TransactionCountOfBatch(ctx context.Context, batchId int) (int, error) {
	count := 0
	for _, r := range s.txns {
		if r.BatchId == batchId {
			count++
		}
	}
	return count, nil
}
