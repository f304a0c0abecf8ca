package importer

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/mmdatafocus/chms_sampledata/models"
)

// Seasonal penalty: attendance and giving both dip during the summer
// window, so the inclusion chance is reduced by a fixed number of points.
const (
	summerPenaltyPercent = 30
	summerStartMonth     = time.July
	summerEndMonth       = time.September
)

const (
	attendanceCodeLength = 4
	// No 0/O, 1/I/L, 5/S: codes get read out loud at pickup.
	attendanceCodeAlphabet = "BCDFGHJKMNPQRTVWXYZ2346789"
)

func seasonalPenalty(date time.Time) int {
	if date.Month() >= summerStartMonth && date.Month() <= summerEndMonth {
		return summerPenaltyPercent
	}
	return 0
}

// keepDate decides inclusion for one generated date. draw is uniform in
// [0,100); a draw exceeding the penalty-adjusted percentage skips the date.
func keepDate(draw int, percent int, date time.Time) bool {
	return draw <= percent-seasonalPenalty(date)
}

// classroom is a check-in area with an age band, resolved to storage ids.
type classroom struct {
	name       string
	minAge     float64
	maxAge     float64
	groupId    int
	locationId int
}

// sortClassrooms orders bands ascending by minAge, then maxAge, which is
// the match precedence when a child's age falls inside several bands.
func sortClassrooms(rooms []classroom) {
	sort.SliceStable(rooms, func(i, j int) bool {
		if rooms[i].minAge != rooms[j].minAge {
			return rooms[i].minAge < rooms[j].minAge
		}
		return rooms[i].maxAge < rooms[j].maxAge
	})
}

// findClassroom returns the first band containing age, or nil when no
// classroom matches. A nil result is ordinary control flow: the child is
// simply not checked in that week.
func findClassroom(rooms []classroom, age float64) *classroom {
	for i := range rooms {
		if age >= rooms[i].minAge && age <= rooms[i].maxAge {
			return &rooms[i]
		}
	}
	return nil
}

// preciseAge is the fractional age in years used for age-band matching.
func preciseAge(birthDate time.Time, at time.Time) float64 {
	return at.Sub(birthDate).Hours() / 24 / 365.25
}

// attendee is one family member considered for attendance generation.
type attendee struct {
	personGuid string
	role       models.FamilyRole
	birthDate  *time.Time
}

// attendanceJob is a family's fabricated-attendance configuration with all
// document references already resolved.
type attendanceJob struct {
	familyGuid            string
	members               []attendee
	startDate             time.Time
	endDate               time.Time
	percentAttendance     int
	percentRegularService int
	schedule              *models.Schedule
	altSchedule           *models.Schedule
}

// generateAttendance walks the job's date range one week at a time and
// emits attendance records for checked-in children. The rng is the run's
// single shared sequence; the draw order per week is fixed (inclusion,
// schedule, lateness, minutes, seconds, then one code per child) so a fixed
// seed reproduces identical output.
func (m *Manager) generateAttendance(ctx context.Context, job attendanceJob) error {
	for date := job.startDate; !date.After(job.endDate); date = date.AddDate(0, 0, 7) {
		if !keepDate(m.rng.Intn(100), job.percentAttendance, date) {
			continue
		}

		schedule := job.schedule
		if m.rng.Intn(100) >= job.percentRegularService && job.altSchedule != nil {
			schedule = job.altSchedule
		}

		checkinTime, err := jitteredCheckinTime(m.rng, date, schedule.StartTimeOfDay)
		if err != nil {
			return fmt.Errorf("schedule %q: %w", schedule.Name, err)
		}

		for _, member := range job.members {
			if member.role != models.FamilyRoleChild || member.birthDate == nil {
				continue
			}
			room := findClassroom(m.classrooms, preciseAge(*member.birthDate, checkinTime))
			if room == nil {
				continue
			}

			aliasId, err := m.ids.Alias(member.personGuid)
			if err != nil {
				return err
			}

			issue := m.opts.AttendanceCodeIssueTime
			if issue.IsZero() {
				issue = checkinTime
			}
			code := &models.AttendanceCode{
				Code:          newAttendanceCode(m.rng),
				IssueDateTime: issue,
			}
			if err := m.store.Add(ctx, code); err != nil {
				return err
			}
			if err := m.store.SaveChanges(ctx); err != nil {
				return err
			}

			att := &models.Attendance{
				PersonAliasId:    aliasId,
				GroupId:          room.groupId,
				LocationId:       room.locationId,
				ScheduleId:       schedule.ID,
				StartDateTime:    checkinTime,
				AttendanceCodeId: code.ID,
				DidAttend:        newBool(true),
			}
			if err := m.store.Add(ctx, att); err != nil {
				return err
			}
		}
	}
	return m.store.SaveChanges(ctx)
}

// jitteredCheckinTime offsets the schedule's canonical start by 0-15
// minutes and 0-60 seconds. Arriving late is the minority outcome.
func jitteredCheckinTime(rng *rand.Rand, date time.Time, startTimeOfDay string) (time.Time, error) {
	start, err := time.Parse("15:04", startTimeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time of day %q: %w", startTimeOfDay, err)
	}
	base := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, date.Location())

	sign := -1
	if rng.Intn(10) > 7 {
		sign = 1
	}
	minutes := rng.Intn(16)
	seconds := rng.Intn(60)
	return base.Add(time.Duration(sign) * (time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second)), nil
}

func newAttendanceCode(rng *rand.Rand) string {
	buf := make([]byte, attendanceCodeLength)
	for i := range buf {
		buf[i] = attendanceCodeAlphabet[rng.Intn(len(attendanceCodeAlphabet))]
	}
	return string(buf)
}

func newBool(b bool) *bool {
	return &b
}
