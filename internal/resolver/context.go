// Package resolver holds the identifier maps that let later uploads reference
// entities created earlier in the same run.
//
// Every map has a single writer: the stage that uploads the corresponding
// entity. All later stages only read. Lookups that miss report ok=false so
// callers can omit the dependent field.
package resolver

import "sync"

type Context struct {
	mu sync.RWMutex

	// RackTables rack id -> Device42 rack id. Written by the racks stage.
	racks map[int64]int64
	// Device42 racks that existed before the run, by name.
	existingRacks map[string]int64
	// RackTables PDU id -> Device42 PDU id. Written by the pdus stage.
	pdus map[int64]int64
	// RackTables object id -> device name. Written by the containers stage.
	vmHosts map[int64]string
	chassis map[int64]string
	// child object id -> parent object id.
	containers map[int64]int64

	buildings    map[string]struct{}
	hardware     map[string]struct{}
	pduModels    map[string]struct{}
	moduleModels map[string]struct{}
}

func NewContext() *Context {
	return &Context{
		racks:         map[int64]int64{},
		existingRacks: map[string]int64{},
		pdus:          map[int64]int64{},
		vmHosts:       map[int64]string{},
		chassis:       map[int64]string{},
		containers:    map[int64]int64{},
		buildings:     map[string]struct{}{},
		hardware:      map[string]struct{}{},
		pduModels:     map[string]struct{}{},
		moduleModels:  map[string]struct{}{},
	}
}

func (c *Context) SeedExistingRack(name string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.existingRacks[name] = id
}

// ExistingRack returns the Device42 id of a rack that already exists under
// name.
func (c *Context) ExistingRack(name string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.existingRacks[name]
	return id, ok
}

func (c *Context) SetRack(rtID, d42ID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.racks[rtID] = d42ID
}

func (c *Context) Rack(rtID int64) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.racks[rtID]
	return id, ok
}

func (c *Context) SetPDU(rtID, d42ID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pdus[rtID] = d42ID
}

func (c *Context) PDU(rtID int64) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.pdus[rtID]
	return id, ok
}

func (c *Context) SetVMHost(rtID int64, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vmHosts[rtID] = name
}

func (c *Context) IsVMHost(rtID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.vmHosts[rtID]
	return ok
}

func (c *Context) SetChassis(rtID int64, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chassis[rtID] = name
}

func (c *Context) SetContainer(childID, parentID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.containers[childID] = parentID
}

// BladeHost returns the name of the chassis containing objectID.
func (c *Context) BladeHost(objectID int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	parent, ok := c.containers[objectID]
	if !ok {
		return "", false
	}
	name, ok := c.chassis[parent]
	return name, ok
}

// VirtualHost returns the name of the VM host containing objectID.
func (c *Context) VirtualHost(objectID int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	parent, ok := c.containers[objectID]
	if !ok {
		return "", false
	}
	name, ok := c.vmHosts[parent]
	return name, ok
}

// MarkBuilding records a building name known to the target. It returns false
// when the name was already known.
func (c *Context) MarkBuilding(name string) bool {
	return c.mark(c.buildings, name)
}

func (c *Context) HasBuilding(name string) bool {
	return c.has(c.buildings, name)
}

// MarkHardware records an uploaded hardware model name. It returns false when
// the model was already uploaded.
func (c *Context) MarkHardware(name string) bool {
	return c.mark(c.hardware, name)
}

func (c *Context) HasHardware(name string) bool {
	return c.has(c.hardware, name)
}

func (c *Context) MarkPDUModel(name string) bool {
	return c.mark(c.pduModels, name)
}

func (c *Context) MarkModuleModel(name string) bool {
	return c.mark(c.moduleModels, name)
}

func (c *Context) mark(set map[string]struct{}, name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := set[name]; ok {
		return false
	}
	set[name] = struct{}{}
	return true
}

func (c *Context) has(set map[string]struct{}, name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := set[name]
	return ok
}
