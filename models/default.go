package models

// Well-known group type names the importer seeds before any document
// fragment is processed.
const (
	GroupTypeFamily             = "Family"
	GroupTypeKnownRelationships = "Known Relationships"
	GroupTypeServingTeam        = "Serving Team"
	GroupTypeSmallGroup         = "Small Group"
	GroupTypeGeneral            = "General"
	GroupTypeSecurityRole       = "Security Role"
	GroupTypeCheckInArea        = "Check-in Area"
)

// Well-known role names.
const (
	RoleAdult  = "Adult"
	RoleChild  = "Child"
	RoleMember = "Member"
	RoleLeader = "Leader"
	RoleOwner  = "Owner"
)

type DefaultGroupType struct {
	Name            string
	TakesAttendance bool
	Roles           []DefaultGroupTypeRole
}

type DefaultGroupTypeRole struct {
	Name     string
	IsLeader bool
}

func GetDefaultGroupTypes() []DefaultGroupType {
	return []DefaultGroupType{
		{
			Name: GroupTypeFamily,
			Roles: []DefaultGroupTypeRole{
				{Name: RoleAdult, IsLeader: true},
				{Name: RoleChild},
			},
		},
		{
			Name: GroupTypeKnownRelationships,
			Roles: []DefaultGroupTypeRole{
				{Name: RoleOwner, IsLeader: true},
				{Name: "Parent"}, {Name: "Child"},
				{Name: "Step-parent"}, {Name: "Step-child"},
				{Name: "Grandparent"}, {Name: "Grandchild"},
				{Name: "Sibling"},
				{Name: "Invited"}, {Name: "Invited-by"},
				{Name: "Can-check-in"}, {Name: "Allow-check-in-by"},
				{Name: "Previous-spouse"},
				{Name: "Related"},
				{Name: "Business"},
			},
		},
		{
			Name: GroupTypeServingTeam,
			Roles: []DefaultGroupTypeRole{
				{Name: RoleLeader, IsLeader: true},
				{Name: RoleMember},
			},
		},
		{
			Name: GroupTypeSmallGroup,
			Roles: []DefaultGroupTypeRole{
				{Name: RoleLeader, IsLeader: true},
				{Name: RoleMember},
			},
		},
		{
			Name: GroupTypeGeneral,
			Roles: []DefaultGroupTypeRole{
				{Name: RoleLeader, IsLeader: true},
				{Name: RoleMember},
			},
		},
		{
			Name: GroupTypeSecurityRole,
			Roles: []DefaultGroupTypeRole{
				{Name: RoleMember},
			},
		},
		{
			Name:            GroupTypeCheckInArea,
			TakesAttendance: true,
			Roles: []DefaultGroupTypeRole{
				{Name: RoleMember},
			},
		},
	}
}

// GetDefaultDefinedTypes lists the classification types the lookup-or-create
// registry resolves values against.
func GetDefaultDefinedTypes() []string {
	return []string{
		DefinedTypeRecordType,
		DefinedTypeRecordStatus,
		DefinedTypeConnectionStatus,
		DefinedTypeCurrencyType,
		DefinedTypePhoneType,
		DefinedTypeGroupTopic,
		DefinedTypeConnectionState,
	}
}
