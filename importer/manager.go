package importer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/chms_sampledata/models"
	"github.com/sirupsen/logrus"
)

// Manager owns one import run: the identifier cache, the lookup-or-create
// registry, the batch pool and the RNG all live exactly as long as the run
// and are never shared between concurrent runs.
type Manager struct {
	store   Store
	opts    Options
	log     *logrus.Logger
	fetcher AssetFetcher

	rng *rand.Rand
	now time.Time

	ids      *IdentifierCache
	registry *DefinedValueRegistry
	batches  *BatchPool

	groupTypes map[string]*models.GroupType
	roles      map[string]*models.GroupTypeRole // "type name/role name"
	campuses   map[string]int
	accounts   map[string]*models.FinancialAccount
	templates  map[string]*models.RegistrationTemplate

	classrooms       []classroom
	familyGroups     []*models.Group
	generatedPeople  []*models.Person
	securityGroupIds []int

	deferredPhones        []*models.PhoneNumber
	deferredPreviousNames []*models.PersonPreviousName
	deferredAttributes    []*models.AttributeValue
	deferredNotes         []*models.Note
	loginPeople           []*models.Person

	attendanceJobs []attendanceJob
	givingJobs     []givingJob
}

func NewManager(store Store, fetcher AssetFetcher, log *logrus.Logger, opts Options) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrFatalConfiguration)
	}
	if log == nil {
		return nil, fmt.Errorf("%w: logger is required", ErrFatalConfiguration)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	seed := opts.RandomizerSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Manager{
		store:      store,
		opts:       opts,
		log:        log,
		fetcher:    fetcher,
		rng:        rand.New(rand.NewSource(seed)),
		now:        now,
		ids:        NewIdentifierCache(),
		registry:   NewDefinedValueRegistry(store),
		batches:    NewBatchPool(store),
		groupTypes: make(map[string]*models.GroupType),
		roles:      make(map[string]*models.GroupTypeRole),
		campuses:   make(map[string]int),
		accounts:   make(map[string]*models.FinancialAccount),
		templates:  make(map[string]*models.RegistrationTemplate),
	}, nil
}

// role returns a seeded role or nil. Callers decide whether a miss is a
// skip (relationship/group roles) or fatal (family roles).
func (m *Manager) role(typeName, roleName string) *models.GroupTypeRole {
	return m.roles[typeName+"/"+roleName]
}

// ensureInfrastructure seeds the well-known group types, their roles, and
// the classification types. It is idempotent: existing rows are reused.
func (m *Manager) ensureInfrastructure(ctx context.Context) error {
	for _, def := range models.GetDefaultGroupTypes() {
		gt, err := m.store.GroupTypeByName(ctx, def.Name)
		if err != nil {
			return err
		}
		if gt == nil {
			gt = &models.GroupType{
				Guid:            uuid.NewString(),
				Name:            def.Name,
				TakesAttendance: newBool(def.TakesAttendance),
			}
			if err := m.store.Add(ctx, gt); err != nil {
				return err
			}
			if err := m.store.SaveChanges(ctx); err != nil {
				return fmt.Errorf("seed group type %q: %w", def.Name, err)
			}
		}
		m.groupTypes[def.Name] = gt

		for _, roleDef := range def.Roles {
			role, err := m.store.GroupTypeRoleByName(ctx, gt.ID, roleDef.Name)
			if err != nil {
				return err
			}
			if role == nil {
				role = &models.GroupTypeRole{
					GroupTypeId: gt.ID,
					Name:        roleDef.Name,
					IsLeader:    newBool(roleDef.IsLeader),
				}
				if err := m.store.Add(ctx, role); err != nil {
					return err
				}
				if err := m.store.SaveChanges(ctx); err != nil {
					return fmt.Errorf("seed role %q: %w", roleDef.Name, err)
				}
			}
			m.roles[def.Name+"/"+roleDef.Name] = role
		}
	}

	for _, typeName := range models.GetDefaultDefinedTypes() {
		if _, err := m.registry.TypeID(ctx, typeName); err != nil {
			return err
		}
	}
	return nil
}
