package importer

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/chms_sampledata/models"
)

// importLocations processes the document's named places. Locations are
// de-duplicated by guid, and parent references require the parent to be
// flushed first, so each location saves before the next is examined.
func (m *Manager) importLocations(ctx context.Context, fragments []XLocation) error {
	for _, frag := range fragments {
		if m.ids.HasLocation(frag.Guid) {
			continue
		}

		existing, err := m.store.LocationByGUID(ctx, frag.Guid)
		if err != nil {
			return err
		}
		if existing != nil {
			m.ids.RegisterLocation(frag.Guid, existing.ID)
			continue
		}

		locType, err := models.ParseLocationType(frag.LocationType)
		if err != nil {
			return fmt.Errorf("%w: location %s: %v", ErrUnsupportedValue, frag.Guid, err)
		}

		loc := &models.Location{
			Guid:         frag.Guid,
			Name:         frag.Name,
			LocationType: locType,
			Street1:      frag.Street1,
			Street2:      frag.Street2,
			City:         frag.City,
			State:        frag.State,
			PostalCode:   frag.PostalCode,
			Country:      frag.Country,
		}
		if loc.Street1 != "" && loc.Country == "" {
			loc.Country = "US"
		}
		if lat, ok := parseCoordinate(frag.Latitude); ok {
			loc.Latitude = &lat
		}
		if lng, ok := parseCoordinate(frag.Longitude); ok {
			loc.Longitude = &lng
		}

		if frag.ParentLocationGuid != "" {
			parentId, err := m.ids.Location(frag.ParentLocationGuid)
			if err != nil {
				return err
			}
			loc.ParentLocationId = &parentId
		}

		if err := m.store.Add(ctx, loc); err != nil {
			return err
		}
		if err := m.store.SaveChanges(ctx); err != nil {
			return fmt.Errorf("create location %s: %w", frag.Guid, err)
		}
		m.ids.RegisterLocation(frag.Guid, loc.ID)
	}
	return nil
}

// importCampuses creates campuses after locations so campus location
// references resolve.
func (m *Manager) importCampuses(ctx context.Context, fragments []XCampus) error {
	for _, frag := range fragments {
		existing, err := m.store.CampusByGUID(ctx, frag.Guid)
		if err != nil {
			return err
		}
		if existing != nil {
			m.campuses[frag.Guid] = existing.ID
			continue
		}

		campus := &models.Campus{
			Guid:      frag.Guid,
			Name:      frag.Name,
			ShortCode: frag.ShortCode,
			IsActive:  newBool(true),
		}
		if frag.LocationGuid != "" {
			locId, err := m.ids.Location(frag.LocationGuid)
			if err != nil {
				return err
			}
			campus.LocationId = &locId
		}
		if err := m.store.Add(ctx, campus); err != nil {
			return err
		}
		if err := m.store.SaveChanges(ctx); err != nil {
			return fmt.Errorf("create campus %s: %w", frag.Guid, err)
		}
		m.campuses[frag.Guid] = campus.ID
	}
	return nil
}

// importClassrooms creates one check-in area group per classroom fragment
// and records its age band for attendance generation.
func (m *Manager) importClassrooms(ctx context.Context, fragments []XClassroom) error {
	checkinType := m.groupTypes[models.GroupTypeCheckInArea]
	if checkinType == nil {
		return fmt.Errorf("%w: check-in group type not seeded", ErrFatalConfiguration)
	}

	for _, frag := range fragments {
		locId, err := m.ids.Location(frag.LocationGuid)
		if err != nil {
			return err
		}

		if existing, err := m.store.GroupByGUID(ctx, frag.Guid); err != nil {
			return err
		} else if existing != nil {
			m.ids.RegisterGroup(frag.Guid, existing.ID)
			m.classrooms = append(m.classrooms, classroom{
				name:       frag.Name,
				minAge:     frag.MinAge,
				maxAge:     frag.MaxAge,
				groupId:    existing.ID,
				locationId: locId,
			})
			continue
		}

		group := &models.Group{
			Guid:        frag.Guid,
			GroupTypeId: checkinType.ID,
			Name:        frag.Name,
			LocationId:  &locId,
			IsActive:    newBool(true),
		}
		if err := m.store.Add(ctx, group); err != nil {
			return err
		}
		if err := m.store.SaveChanges(ctx); err != nil {
			return fmt.Errorf("create classroom %s: %w", frag.Guid, err)
		}
		m.ids.RegisterGroup(frag.Guid, group.ID)

		m.classrooms = append(m.classrooms, classroom{
			name:       frag.Name,
			minAge:     frag.MinAge,
			maxAge:     frag.MaxAge,
			groupId:    group.ID,
			locationId: locId,
		})
	}
	sortClassrooms(m.classrooms)
	return nil
}
