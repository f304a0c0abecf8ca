package importer

// IdentifierCache maps document guids to storage-assigned ids. One cache
// exists per orchestrator run; it is passed explicitly so its lifetime is
// visible and concurrent runs never share state.
//
// A failed resolve is always a *MissingReferenceError. Returning a zero id
// instead would let cross-reference ordering bugs produce silently broken
// rows, which is exactly what this cache exists to surface.
type IdentifierCache struct {
	people         map[string]int
	aliases        map[string]int // person guid -> primary alias id
	groups         map[string]int
	locations      map[string]int
	familyLocation map[string]int // family guid -> home address location id
	relationships  map[string]int // person guid -> known-relationships container group id
}

func NewIdentifierCache() *IdentifierCache {
	return &IdentifierCache{
		people:         make(map[string]int),
		aliases:        make(map[string]int),
		groups:         make(map[string]int),
		locations:      make(map[string]int),
		familyLocation: make(map[string]int),
		relationships:  make(map[string]int),
	}
}

func (c *IdentifierCache) RegisterPerson(guid string, id int)         { c.people[guid] = id }
func (c *IdentifierCache) RegisterAlias(personGuid string, id int)    { c.aliases[personGuid] = id }
func (c *IdentifierCache) RegisterGroup(guid string, id int)          { c.groups[guid] = id }
func (c *IdentifierCache) RegisterLocation(guid string, id int)       { c.locations[guid] = id }
func (c *IdentifierCache) RegisterFamilyLocation(guid string, id int) { c.familyLocation[guid] = id }
func (c *IdentifierCache) RegisterRelationshipGroup(personGuid string, id int) {
	c.relationships[personGuid] = id
}

func (c *IdentifierCache) Person(guid string) (int, error) {
	return c.resolve(c.people, "person", guid)
}

func (c *IdentifierCache) Alias(personGuid string) (int, error) {
	return c.resolve(c.aliases, "person alias", personGuid)
}

func (c *IdentifierCache) Group(guid string) (int, error) {
	return c.resolve(c.groups, "group", guid)
}

func (c *IdentifierCache) Location(guid string) (int, error) {
	return c.resolve(c.locations, "location", guid)
}

func (c *IdentifierCache) FamilyLocation(familyGuid string) (int, error) {
	return c.resolve(c.familyLocation, "family location", familyGuid)
}

// RelationshipGroup returns (0, false) on a miss rather than an error:
// a missing container is the normal create trigger, not an ordering bug.
func (c *IdentifierCache) RelationshipGroup(personGuid string) (int, bool) {
	id, ok := c.relationships[personGuid]
	return id, ok
}

// HasLocation reports registration without the error contract; the
// location pass legitimately probes before create-or-reuse.
func (c *IdentifierCache) HasLocation(guid string) bool {
	_, ok := c.locations[guid]
	return ok
}

func (c *IdentifierCache) resolve(m map[string]int, kind, key string) (int, error) {
	id, ok := m[key]
	if !ok {
		return 0, &MissingReferenceError{Kind: kind, Key: key}
	}
	return id, nil
}
