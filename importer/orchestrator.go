package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/chms_sampledata/appctx"
	"github.com/mmdatafocus/chms_sampledata/models"
	"github.com/mmdatafocus/chms_sampledata/utils"
	"github.com/sirupsen/logrus"
)

// CreateFromDocument runs the whole pipeline for one parsed document.
// Phases are strictly sequential; the creation phases run inside a single
// transaction and either all commit or all roll back. Post-processing runs
// after commit, and its failures are logged rather than propagated: those
// steps are idempotent and safe to re-run.
func (m *Manager) CreateFromDocument(ctx context.Context, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is required", ErrFatalConfiguration)
	}

	// The creator identity can ride in on the context instead of Options.
	if m.opts.CreatorAliasId == 0 {
		if aliasId, ok := appctx.GetInt(ctx, appctx.ContextKeyCreatorAliasId); ok {
			m.opts.CreatorAliasId = aliasId
		}
	}
	if correlationId, ok := appctx.GetString(ctx, appctx.ContextKeyCorrelationId); ok {
		m.log.WithField("correlationId", correlationId).Info("starting sample data import")
	}

	if m.opts.DeleteExistingData {
		if err := m.timed("delete existing data", func() error {
			return m.deleteExistingData(ctx, doc)
		}); err != nil {
			return err
		}
	}

	if m.opts.ProcessOnlyGivingData {
		return m.processOnlyGiving(ctx, doc)
	}

	err := m.store.RunInTransaction(ctx, func(tx Store) error {
		restore := m.rebindStore(tx)
		defer restore()
		if err := m.createCore(ctx, doc); err != nil {
			return err
		}
		return m.saveDeferred(ctx, doc)
	})
	if err != nil {
		return err
	}

	// Post-processing is intentionally outside the transaction: created
	// data is already committed and these steps must not unwind it.
	m.postProcess(ctx)
	return nil
}

// rebindStore points the manager and its helpers at a transaction-scoped
// store for the duration of the transaction. A run is single-threaded, so
// swapping in place is safe.
func (m *Manager) rebindStore(tx Store) (restore func()) {
	prev := m.store
	m.store = tx
	m.registry.store = tx
	m.batches.store = tx
	return func() {
		m.store = prev
		m.registry.store = prev
		m.batches.store = prev
	}
}

func (m *Manager) createCore(ctx context.Context, doc *Document) error {
	if err := m.timed("seed infrastructure", func() error {
		return m.ensureInfrastructure(ctx)
	}); err != nil {
		return err
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"locations", func() error { return m.importLocations(ctx, doc.Locations) }},
		{"campuses", func() error { return m.importCampuses(ctx, doc.Campuses) }},
		{"classrooms", func() error { return m.importClassrooms(ctx, doc.Classrooms) }},
		{"families", func() error {
			for _, fam := range doc.Families {
				if err := m.importFamily(ctx, fam); err != nil {
					return err
				}
			}
			return nil
		}},
		{"person children", func() error { return m.savePersonChildren(ctx) }},
		{"relationships", func() error {
			for _, rel := range doc.Relationships {
				if err := m.linkRelationship(ctx, rel.PersonGuid, rel.RelatesTo, rel.Relationship); err != nil {
					return err
				}
			}
			return nil
		}},
		{"security roles", func() error { return m.importSecurityRoles(ctx, doc.SecurityRoles) }},
		{"groups", func() error { return m.importGroups(ctx, doc.Groups, nil) }},
		{"financial gateways", func() error { return m.importFinancialGateways(ctx, doc.FinancialGateways) }},
		{"registration templates", func() error { return m.importRegistrationTemplates(ctx, doc.RegistrationTemplates) }},
		{"registration instances", func() error { return m.importRegistrationInstances(ctx, doc.RegistrationInstances) }},
	}
	for _, step := range steps {
		if err := m.timed(step.name, step.fn); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}

// saveDeferred runs the deferred passes in dependency order: aliases first
// (everything downstream references them), then attributes, then the
// alias-dependent passes, then generators, then logins.
func (m *Manager) saveDeferred(ctx context.Context, doc *Document) error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"aliases", func() error { return m.saveAliases(ctx) }},
		{"attributes", func() error { return m.saveAttributes(ctx) }},
		{"connections", func() error { return m.importConnections(ctx, doc.Connections) }},
		{"following", func() error { return m.importFollowing(ctx, doc.Following) }},
		{"attendance", func() error { return m.runAttendanceJobs(ctx) }},
		{"giving", func() error { return m.runGivingJobs(ctx) }},
		{"logins", func() error { return m.saveLogins(ctx) }},
	}
	for _, step := range steps {
		if err := m.timed(step.name, step.fn); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}

// savePersonChildren flushes phone numbers and previous names queued while
// assembling people.
func (m *Manager) savePersonChildren(ctx context.Context) error {
	for _, phone := range m.deferredPhones {
		if err := m.store.Add(ctx, phone); err != nil {
			return err
		}
	}
	for _, prev := range m.deferredPreviousNames {
		if err := m.store.Add(ctx, prev); err != nil {
			return err
		}
	}
	for _, note := range m.deferredNotes {
		if err := m.store.Add(ctx, note); err != nil {
			return err
		}
	}
	return m.store.SaveChanges(ctx)
}

// saveAliases creates the primary alias for every person created this run.
// Aliases cannot exist before their person has a storage id, which is why
// this is the first deferred pass.
func (m *Manager) saveAliases(ctx context.Context) error {
	aliases := make([]*models.PersonAlias, 0, len(m.generatedPeople))
	for _, person := range m.generatedPeople {
		alias := &models.PersonAlias{
			Guid:          uuid.NewString(),
			PersonId:      person.ID,
			AliasPersonId: person.ID,
		}
		if err := m.store.Add(ctx, alias); err != nil {
			return err
		}
		aliases = append(aliases, alias)
	}
	if err := m.store.SaveChanges(ctx); err != nil {
		return err
	}
	for i, person := range m.generatedPeople {
		m.ids.RegisterAlias(person.Guid, aliases[i].ID)
	}
	return nil
}

func (m *Manager) saveAttributes(ctx context.Context) error {
	for _, attr := range m.deferredAttributes {
		if err := m.store.Add(ctx, attr); err != nil {
			return err
		}
	}
	return m.store.SaveChanges(ctx)
}

func (m *Manager) importConnections(ctx context.Context, fragments []XConnection) error {
	for _, frag := range fragments {
		aliasId, err := m.ids.Alias(frag.PersonGuid)
		if err != nil {
			return err
		}
		status := frag.Status
		if status == "" {
			status = "Active"
		}
		statusValue, err := m.registry.GetOrAdd(ctx, models.DefinedTypeConnectionState, status)
		if err != nil {
			return err
		}
		guid := frag.Guid
		if guid == "" {
			guid = uuid.NewString()
		}
		if err := m.store.Add(ctx, &models.ConnectionRequest{
			Guid:            guid,
			PersonAliasId:   aliasId,
			OpportunityName: frag.Opportunity,
			StatusValueId:   statusValue.ID,
			Comments:        frag.Comment,
		}); err != nil {
			return err
		}
	}
	return m.store.SaveChanges(ctx)
}

func (m *Manager) importFollowing(ctx context.Context, fragments []XFollowing) error {
	for _, frag := range fragments {
		aliasId, err := m.ids.Alias(frag.PersonGuid)
		if err != nil {
			return err
		}
		followedAliasId, err := m.ids.Alias(frag.FollowsGuid)
		if err != nil {
			return err
		}
		if err := m.store.Add(ctx, &models.Following{
			PersonAliasId:         aliasId,
			FollowedPersonAliasId: followedAliasId,
		}); err != nil {
			return err
		}
	}
	return m.store.SaveChanges(ctx)
}

func (m *Manager) runAttendanceJobs(ctx context.Context) error {
	if !m.opts.FabricateAttendance {
		return nil
	}
	for _, job := range m.attendanceJobs {
		if err := m.generateAttendance(ctx, job); err != nil {
			return fmt.Errorf("attendance for family %s: %w", job.familyGuid, err)
		}
	}
	return nil
}

func (m *Manager) runGivingJobs(ctx context.Context) error {
	if !m.opts.EnableGiving {
		return nil
	}
	for _, job := range m.givingJobs {
		if err := m.generateGiving(ctx, job); err != nil {
			return fmt.Errorf("giving for person %s: %w", job.personGuid, err)
		}
	}
	return m.batches.FlushTotals(ctx)
}

// saveLogins creates one login per generated person, all sharing the
// configured password. No password configured means no logins.
func (m *Manager) saveLogins(ctx context.Context) error {
	if m.opts.NewLoginPassword == "" {
		return nil
	}
	hashed, err := utils.HashPassword(m.opts.NewLoginPassword)
	if err != nil {
		return fmt.Errorf("hash login password: %w", err)
	}
	seen := make(map[string]bool)
	for _, person := range m.loginPeople {
		userName := loginUserName(person, seen)
		if err := m.store.Add(ctx, &models.UserLogin{
			PersonId: person.ID,
			UserName: userName,
			Password: string(hashed),
			IsActive: newBool(true),
		}); err != nil {
			return err
		}
	}
	return m.store.SaveChanges(ctx)
}

func loginUserName(person *models.Person, seen map[string]bool) string {
	base := fmt.Sprintf("%s.%s", sanitizeLogin(person.FirstName), sanitizeLogin(person.LastName))
	name := base
	for i := 2; seen[name]; i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}
	seen[name] = true
	return name
}

func sanitizeLogin(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			out = append(out, r|0x20)
		}
	}
	return string(out)
}

// processOnlyGiving resolves already-imported people and runs only the
// giving generation passes.
func (m *Manager) processOnlyGiving(ctx context.Context, doc *Document) error {
	if err := m.timed("resolve existing people", func() error {
		for _, fam := range doc.Families {
			for _, frag := range fam.Members {
				person, err := m.store.PersonByGUID(ctx, frag.Guid)
				if err != nil {
					return err
				}
				if person == nil {
					return &MissingReferenceError{Kind: "person", Key: frag.Guid}
				}
				m.ids.RegisterPerson(frag.Guid, person.ID)
				aliases, err := m.store.AliasesOfPerson(ctx, person.ID)
				if err != nil {
					return err
				}
				if len(aliases) == 0 {
					return &MissingReferenceError{Kind: "person alias", Key: frag.Guid}
				}
				m.ids.RegisterAlias(frag.Guid, aliases[0].ID)

				if frag.Giving != nil {
					if err := m.queueGivingJob(ctx, frag.Guid, frag.Giving); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}); err != nil {
		return err
	}

	return m.store.RunInTransaction(ctx, func(tx Store) error {
		restore := m.rebindStore(tx)
		defer restore()
		return m.runGivingJobs(ctx)
	})
}

// timed logs per-step elapsed time when timing diagnostics are enabled.
func (m *Manager) timed(name string, fn func() error) error {
	if !m.opts.EnableTimingDiagnostics {
		return fn()
	}
	started := time.Now()
	err := fn()
	m.log.WithFields(logrus.Fields{
		"step":    name,
		"elapsed": time.Since(started).String(),
	}).Info("import step finished")
	return err
}
