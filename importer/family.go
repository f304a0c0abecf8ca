package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/chms_sampledata/models"
	"github.com/shopspring/decimal"
)

// importFamily creates the family group, its people and memberships, the
// home address, and queues attendance/giving jobs for the deferred passes.
func (m *Manager) importFamily(ctx context.Context, fam XFamily) error {
	familyType := m.groupTypes[models.GroupTypeFamily]
	if familyType == nil {
		return fmt.Errorf("%w: family group type not seeded", ErrFatalConfiguration)
	}

	group, err := m.store.GroupByGUID(ctx, fam.Guid)
	if err != nil {
		return err
	}
	if group == nil {
		group = &models.Group{
			Guid:        fam.Guid,
			GroupTypeId: familyType.ID,
			Name:        fam.Name,
			IsActive:    newBool(true),
		}
		if fam.CampusGuid != "" {
			if campusId, ok := m.campuses[fam.CampusGuid]; ok {
				group.CampusId = &campusId
			}
		}
		if err := m.store.Add(ctx, group); err != nil {
			return err
		}
		if err := m.store.SaveChanges(ctx); err != nil {
			return fmt.Errorf("create family %s: %w", fam.Guid, err)
		}
	}
	m.ids.RegisterGroup(fam.Guid, group.ID)
	m.familyGroups = append(m.familyGroups, group)

	// People. Reuse an existing person with the same guid rather than
	// duplicating them.
	var members []pendingMember
	for _, frag := range fam.Members {
		role, err := models.ParseFamilyRole(frag.FamilyRole)
		if err != nil {
			return fmt.Errorf("%w: family %s: %v", ErrUnsupportedValue, fam.Guid, err)
		}

		existing, err := m.store.PersonByGUID(ctx, frag.Guid)
		if err != nil {
			return err
		}
		if existing != nil {
			m.ids.RegisterPerson(frag.Guid, existing.ID)
			aliases, aerr := m.store.AliasesOfPerson(ctx, existing.ID)
			if aerr != nil {
				return aerr
			}
			if len(aliases) > 0 {
				m.ids.RegisterAlias(frag.Guid, aliases[0].ID)
			} else {
				// No alias on record; let the alias pass create one.
				m.generatedPeople = append(m.generatedPeople, existing)
			}
			members = append(members, pendingMember{frag: frag, person: existing, role: role})
			continue
		}

		person, err := m.assemblePerson(ctx, frag)
		if err != nil {
			return err
		}
		// The family group is the giving association point; children never
		// carry it.
		if role != models.FamilyRoleChild {
			person.GivingGroupId = &group.ID
		}
		if err := m.store.Add(ctx, person); err != nil {
			return err
		}
		members = append(members, pendingMember{frag: frag, person: person, role: role, created: true})
	}
	if err := m.store.SaveChanges(ctx); err != nil {
		return fmt.Errorf("save people of family %s: %w", fam.Guid, err)
	}

	adultRole := m.role(models.GroupTypeFamily, models.RoleAdult)
	childRole := m.role(models.GroupTypeFamily, models.RoleChild)
	for _, pm := range members {
		m.ids.RegisterPerson(pm.frag.Guid, pm.person.ID)
		if pm.created {
			m.generatedPeople = append(m.generatedPeople, pm.person)
			m.queuePersonChildren(pm.frag, pm.person)
		}

		role := adultRole
		if pm.role == models.FamilyRoleChild {
			role = childRole
		}
		exists, err := m.store.GroupMemberExists(ctx, group.ID, pm.person.ID, role.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := m.store.Add(ctx, &models.GroupMember{
			GroupId:         group.ID,
			PersonId:        pm.person.ID,
			GroupTypeRoleId: role.ID,
		}); err != nil {
			return err
		}
	}
	if err := m.store.SaveChanges(ctx); err != nil {
		return err
	}

	if fam.Address != nil {
		if err := m.importFamilyAddress(ctx, fam.Guid, group, fam.Address); err != nil {
			return err
		}
	}

	if fam.Attendance != nil && m.opts.FabricateAttendance {
		m.queueAttendanceJob(ctx, fam, members2attendees(members))
	}

	if m.opts.EnableGiving {
		for _, pm := range members {
			if pm.frag.Giving != nil {
				if err := m.queueGivingJob(ctx, pm.frag.Guid, pm.frag.Giving); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

type pendingMember struct {
	frag    XPerson
	person  *models.Person
	role    models.FamilyRole
	created bool
}

func members2attendees(members []pendingMember) []attendee {
	out := make([]attendee, 0, len(members))
	for _, pm := range members {
		out = append(out, attendee{
			personGuid: pm.frag.Guid,
			role:       pm.role,
			birthDate:  pm.person.BirthDate,
		})
	}
	return out
}

// importFamilyAddress creates (or reuses) the home address location and
// links it to the family group.
func (m *Manager) importFamilyAddress(ctx context.Context, familyGuid string, group *models.Group, addr *XAddress) error {
	addressType, err := models.ParseAddressType(addr.AddressType)
	if err != nil {
		return fmt.Errorf("%w: family %s: %v", ErrUnsupportedValue, familyGuid, err)
	}

	// A reused family group keeps the address it already has.
	if group.LocationId != nil {
		m.ids.RegisterFamilyLocation(familyGuid, *group.LocationId)
		return nil
	}

	country := addr.Country
	if country == "" {
		country = "US"
	}
	loc := &models.Location{
		Guid:       uuid.NewString(),
		Name:       fmt.Sprintf("%s %s Address", group.Name, addressType),
		Street1:    addr.Street1,
		Street2:    addr.Street2,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		Country:    country,
	}
	if lat, ok := parseCoordinate(addr.Latitude); ok {
		loc.Latitude = &lat
	}
	if lng, ok := parseCoordinate(addr.Longitude); ok {
		loc.Longitude = &lng
	}
	if err := m.store.Add(ctx, loc); err != nil {
		return err
	}
	if err := m.store.SaveChanges(ctx); err != nil {
		return err
	}
	m.ids.RegisterFamilyLocation(familyGuid, loc.ID)

	group.LocationId = &loc.ID
	return m.store.Update(ctx, group)
}

func parseCoordinate(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// queueAttendanceJob resolves the family's attendance configuration.
// An unknown schedule name skips the job; one family with a bad schedule
// should not fail the run.
func (m *Manager) queueAttendanceJob(ctx context.Context, fam XFamily, attendees []attendee) {
	cfg := fam.Attendance
	start, err1 := time.Parse(dateLayout, cfg.StartDate)
	end, err2 := time.Parse(dateLayout, cfg.EndDate)
	if err1 != nil || err2 != nil || end.Before(start) {
		m.log.WithField("family", fam.Guid).Debug("invalid attendance date range; skipping")
		return
	}

	schedule, err := m.store.ScheduleByName(ctx, cfg.Schedule)
	if err != nil || schedule == nil {
		m.log.WithField("family", fam.Guid).WithField("schedule", cfg.Schedule).
			Debug("unknown attendance schedule; skipping")
		return
	}
	var altSchedule *models.Schedule
	if cfg.AltSchedule != "" {
		altSchedule, err = m.store.ScheduleByName(ctx, cfg.AltSchedule)
		if err != nil || altSchedule == nil {
			m.log.WithField("family", fam.Guid).WithField("schedule", cfg.AltSchedule).
				Debug("unknown alternate schedule; skipping")
			return
		}
	}

	m.attendanceJobs = append(m.attendanceJobs, attendanceJob{
		familyGuid:            fam.Guid,
		members:               attendees,
		startDate:             start,
		endDate:               end,
		percentAttendance:     cfg.PercentAttendance,
		percentRegularService: cfg.PercentAttendedRegularService,
		schedule:              schedule,
		altSchedule:           altSchedule,
	})
}

// queueGivingJob resolves a person's giving configuration to storage ids.
func (m *Manager) queueGivingJob(ctx context.Context, personGuid string, cfg *XGiving) error {
	start, err := time.Parse(dateLayout, cfg.StartGiving)
	if err != nil {
		m.log.WithField("person", personGuid).Debug("invalid giving start date; skipping")
		return nil
	}
	end := m.now
	if cfg.EndGiving != "" {
		if parsed, perr := time.Parse(dateLayout, cfg.EndGiving); perr == nil {
			end = parsed
		}
	}

	frequency, err := models.ParseGivingFrequency(cfg.Frequency)
	if err != nil {
		return fmt.Errorf("%w: person %s: %v", ErrUnsupportedValue, personGuid, err)
	}

	var amounts []accountAmount
	for _, xa := range cfg.Amounts {
		amount, aerr := decimal.NewFromString(xa.Amount)
		if aerr != nil {
			m.log.WithField("person", personGuid).WithField("account", xa.Account).
				Debug("invalid giving amount; skipping line")
			continue
		}
		account, aerr := m.ensureAccount(ctx, xa.Account)
		if aerr != nil {
			return aerr
		}
		amounts = append(amounts, accountAmount{accountId: account.ID, amount: amount})
	}
	if len(amounts) == 0 {
		return nil
	}

	currencyType := cfg.CurrencyType
	if currencyType == "" {
		currencyType = "Check"
	}
	currencyValue, err := m.registry.GetOrAdd(ctx, models.DefinedTypeCurrencyType, currencyType)
	if err != nil {
		return err
	}

	var imageUrls []string
	for _, img := range cfg.CheckImages {
		if img.Url != "" {
			imageUrls = append(imageUrls, img.Url)
		}
	}

	m.givingJobs = append(m.givingJobs, givingJob{
		personGuid:          personGuid,
		startDate:           start,
		endDate:             end,
		frequency:           frequency,
		percentGive:         cfg.PercentGive,
		growRatePercent:     cfg.GrowRatePercent,
		growFrequencyWeeks:  cfg.GrowFrequencyWeeks,
		amounts:             amounts,
		checkImageUrls:      imageUrls,
		currencyTypeValueId: currencyValue.ID,
	})
	return nil
}

// ensureAccount finds or creates a financial account by exact name.
func (m *Manager) ensureAccount(ctx context.Context, name string) (*models.FinancialAccount, error) {
	if acct, ok := m.accounts[name]; ok {
		return acct, nil
	}
	acct, err := m.store.FinancialAccountByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		acct = &models.FinancialAccount{
			Guid:            uuid.NewString(),
			Name:            name,
			IsTaxDeductible: newBool(true),
		}
		if err := m.store.Add(ctx, acct); err != nil {
			return nil, err
		}
		if err := m.store.SaveChanges(ctx); err != nil {
			return nil, fmt.Errorf("create account %q: %w", name, err)
		}
	}
	m.accounts[name] = acct
	return acct, nil
}
