package importer

import (
	"context"

	"github.com/mmdatafocus/chms_sampledata/models"
)

// Store is the narrow persistence surface the pipeline needs. Add queues an
// entity; storage ids are assigned when SaveChanges flushes the queue, so
// callers must flush before resolving references to freshly added rows.
// Lookup methods return (nil, nil) when nothing matches.
//
// The production implementation wraps gorm and runs bulk flushes with
// persistence hooks disabled; those side effects are replayed explicitly by
// the orchestrator's post-processing phase.
type Store interface {
	Add(ctx context.Context, entity any) error
	SaveChanges(ctx context.Context) error
	Update(ctx context.Context, entity any) error
	Delete(ctx context.Context, entity any) error
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	DefinedTypeByName(ctx context.Context, name string) (*models.DefinedType, error)
	DefinedValueByValue(ctx context.Context, definedTypeId int, value string) (*models.DefinedValue, error)
	GroupTypeByName(ctx context.Context, name string) (*models.GroupType, error)
	GroupTypeRoleByName(ctx context.Context, groupTypeId int, name string) (*models.GroupTypeRole, error)
	GroupByGUID(ctx context.Context, guid string) (*models.Group, error)
	GroupByID(ctx context.Context, id int) (*models.Group, error)
	LocationByGUID(ctx context.Context, guid string) (*models.Location, error)
	CampusByGUID(ctx context.Context, guid string) (*models.Campus, error)
	PersonByGUID(ctx context.Context, guid string) (*models.Person, error)
	PersonByID(ctx context.Context, id int) (*models.Person, error)
	ScheduleByName(ctx context.Context, name string) (*models.Schedule, error)
	FinancialAccountByName(ctx context.Context, name string) (*models.FinancialAccount, error)
	FinancialGatewayByGUID(ctx context.Context, guid string) (*models.FinancialGateway, error)
	RegistrationTemplateByGUID(ctx context.Context, guid string) (*models.RegistrationTemplate, error)
	RegistrationInstanceByGUID(ctx context.Context, guid string) (*models.RegistrationInstance, error)
	GroupMemberExists(ctx context.Context, groupId, personId, roleId int) (bool, error)

	// Dependency closure queries for the delete-then-recreate lifecycle.
	MembersOfGroup(ctx context.Context, groupId int) ([]models.GroupMember, error)
	MembershipsOfPerson(ctx context.Context, personId int) ([]models.GroupMember, error)
	AliasesOfPerson(ctx context.Context, personId int) ([]models.PersonAlias, error)
	PhoneNumbersOfPerson(ctx context.Context, personId int) ([]models.PhoneNumber, error)
	PreviousNamesOfPerson(ctx context.Context, personId int) ([]models.PersonPreviousName, error)
	NotesOfPerson(ctx context.Context, personId int) ([]models.Note, error)
	AttributeValuesOfPerson(ctx context.Context, personId int) ([]models.AttributeValue, error)
	LoginsOfPerson(ctx context.Context, personId int) ([]models.UserLogin, error)
	TransactionsOfAliases(ctx context.Context, aliasIds []int) ([]models.FinancialTransaction, error)
	DetailsOfTransaction(ctx context.Context, transactionId int) ([]models.FinancialTransactionDetail, error)
	AttendanceOfAliases(ctx context.Context, aliasIds []int) ([]models.Attendance, error)
	ConnectionRequestsOfAliases(ctx context.Context, aliasIds []int) ([]models.ConnectionRequest, error)
	FollowingOfAliases(ctx context.Context, aliasIds []int) ([]models.Following, error)
	TransactionCountOfBatch(ctx context.Context, batchId int) (int, error)
}
