package importer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/chms_sampledata/models"
	"github.com/mmdatafocus/chms_sampledata/utils"
)

const dateLayout = "2006-01-02"

// assemblePerson translates a person fragment into a storage-ready Person.
// Classification values (record type/status, connection status) resolve
// through the lookup-or-create registry; invalid emails are dropped, not
// errors.
func (m *Manager) assemblePerson(ctx context.Context, frag XPerson) (*models.Person, error) {
	gender, err := models.ParseGender(frag.Gender)
	if err != nil {
		return nil, fmt.Errorf("%w: person %s: %v", ErrUnsupportedValue, frag.Guid, err)
	}
	marital, err := models.ParseMaritalStatus(frag.MaritalStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: person %s: %v", ErrUnsupportedValue, frag.Guid, err)
	}

	recordType := frag.RecordType
	if recordType == "" {
		recordType = "Person"
	}
	recordTypeValue, err := m.registry.GetOrAdd(ctx, models.DefinedTypeRecordType, recordType)
	if err != nil {
		return nil, err
	}

	recordStatus, err := models.ParseRecordStatus(frag.RecordStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: person %s: %v", ErrUnsupportedValue, frag.Guid, err)
	}
	recordStatusValue, err := m.registry.GetOrAdd(ctx, models.DefinedTypeRecordStatus, string(recordStatus))
	if err != nil {
		return nil, err
	}

	var connectionStatusValueId int
	if frag.ConnectionStatus != "" {
		dv, err := m.registry.GetOrAdd(ctx, models.DefinedTypeConnectionStatus, frag.ConnectionStatus)
		if err != nil {
			return nil, err
		}
		connectionStatusValueId = dv.ID
	}

	person := &models.Person{
		Guid:                    frag.Guid,
		FirstName:               frag.FirstName,
		NickName:                frag.NickName,
		MiddleName:              frag.MiddleName,
		LastName:                frag.LastName,
		Gender:                  gender,
		MaritalStatus:           marital,
		RecordTypeValueId:       recordTypeValue.ID,
		RecordStatusValueId:     recordStatusValue.ID,
		ConnectionStatusValueId: connectionStatusValueId,
		IsDeceased:              newBool(utils.ParseBoolAttr(frag.Deceased)),
		CreatedByAliasId:        m.opts.CreatorAliasId,
	}

	if birthDate, ok := m.resolveBirthDate(frag); ok {
		person.BirthDate = &birthDate
		person.BirthYear = birthDate.Year()
	}

	if utils.IsValidEmail(frag.Email) {
		person.Email = frag.Email
		active := frag.EmailActive == "" || utils.ParseBoolAttr(frag.EmailActive)
		person.IsEmailActive = newBool(active)
	}

	if frag.PhotoUrl != "" {
		photoId, err := m.fetchPhoto(ctx, frag)
		if err != nil {
			return nil, err
		}
		if photoId != 0 {
			person.PhotoId = &photoId
		}
	}

	return person, nil
}

// resolveBirthDate reconciles the birthDate and age attributes. When both
// are present and disagree, the birth date is shifted by whole years so the
// declared age wins while the month and day are preserved.
func (m *Manager) resolveBirthDate(frag XPerson) (time.Time, bool) {
	var birthDate time.Time
	haveBirthDate := false
	if frag.BirthDate != "" {
		if parsed, err := time.Parse(dateLayout, frag.BirthDate); err == nil {
			birthDate = parsed
			haveBirthDate = true
		} else {
			m.log.WithField("person", frag.Guid).Debug("unparseable birth date; ignoring")
		}
	}

	if frag.Age == "" {
		return birthDate, haveBirthDate
	}
	declaredAge, err := strconv.Atoi(frag.Age)
	if err != nil || declaredAge < 0 {
		return birthDate, haveBirthDate
	}

	if !haveBirthDate {
		// No declared birth date: synthesize one the declared age ago.
		return m.now.AddDate(-declaredAge, 0, 0).Truncate(24 * time.Hour), true
	}

	computed := models.AgeAt(birthDate, m.now)
	if delta := computed - declaredAge; delta != 0 {
		birthDate = birthDate.AddDate(delta, 0, 0)
	}
	return birthDate, true
}

// fetchPhoto retrieves the person's photo; when the fetch fails the person
// simply has no photo. A failed store write still aborts the run.
func (m *Manager) fetchPhoto(ctx context.Context, frag XPerson) (int, error) {
	if m.fetcher == nil {
		return 0, nil
	}
	content, err := m.fetcher.Fetch(ctx, frag.PhotoUrl)
	if err != nil {
		m.log.WithField("person", frag.Guid).WithField("url", frag.PhotoUrl).
			Debug("photo fetch failed; person proceeds without photo")
		return 0, nil
	}
	file := &models.BinaryFile{
		Guid:     uuid.NewString(),
		FileName: frag.FirstName + " " + frag.LastName + ".jpg",
		MimeType: "image/jpeg",
		Content:  content,
	}
	if err := m.store.Add(ctx, file); err != nil {
		return 0, err
	}
	if err := m.store.SaveChanges(ctx); err != nil {
		return 0, err
	}
	return file.ID, nil
}

// queuePersonChildren collects the fragment's dependent records. Phone
// numbers and previous names save with the core pass; attribute values and
// notes are deferred; logins wait for the login pass (and a configured
// password).
func (m *Manager) queuePersonChildren(frag XPerson, person *models.Person) {
	for _, phone := range frag.Phones {
		m.deferredPhones = append(m.deferredPhones, &models.PhoneNumber{
			PersonId:        person.ID,
			Number:          phone.Number,
			NumberTypeValue: phone.Type,
			IsUnlisted:      newBool(utils.ParseBoolAttr(phone.Unlisted)),
		})
	}
	for _, prev := range frag.PreviousNames {
		m.deferredPreviousNames = append(m.deferredPreviousNames, &models.PersonPreviousName{
			PersonId: person.ID,
			LastName: prev.LastName,
		})
	}
	for _, attr := range frag.Attributes {
		m.deferredAttributes = append(m.deferredAttributes, &models.AttributeValue{
			PersonId:     person.ID,
			AttributeKey: attr.Key,
			Value:        attr.Value,
		})
	}
	for _, note := range frag.Notes {
		m.deferredNotes = append(m.deferredNotes, &models.Note{
			PersonId: person.ID,
			NoteType: note.Type,
			Text:     note.Text,
		})
	}
	if m.opts.NewLoginPassword != "" {
		m.loginPeople = append(m.loginPeople, person)
	}
}
