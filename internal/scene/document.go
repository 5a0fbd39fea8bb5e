package scene

import (
	"errors"
	"fmt"
	"sync"
)

// ErrContainerNotFound is returned when drawing into an unknown container.
var ErrContainerNotFound = errors.New("container not found")

// Document is the host page: named chart containers plus one shared
// tooltip.
type Document struct {
	mu         sync.Mutex
	containers map[string]*Surface
	order      []string
	tooltip    *Tooltip
}

// NewDocument creates a document with empty containers.
func NewDocument(ids ...string) *Document {
	d := &Document{
		containers: make(map[string]*Surface, len(ids)),
		tooltip:    &Tooltip{},
	}
	for _, id := range ids {
		if _, ok := d.containers[id]; ok {
			continue
		}
		d.containers[id] = nil
		d.order = append(d.order, id)
	}
	return d
}

// Containers returns the container ids in declaration order.
func (d *Document) Containers() []string {
	return append([]string(nil), d.order...)
}

// Has reports whether the container exists.
func (d *Document) Has(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.containers[id]
	return ok
}

// Mount replaces the content of container id with s. The previous surface is
// discarded whole; the last mount wins.
func (d *Document) Mount(id string, s *Surface) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.containers[id]; !ok {
		return fmt.Errorf("%w: #%s", ErrContainerNotFound, id)
	}
	s.mu.Lock()
	s.tooltip = d.tooltip
	s.mu.Unlock()
	d.containers[id] = s
	return nil
}

// Clear empties container id.
func (d *Document) Clear(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.containers[id]; !ok {
		return fmt.Errorf("%w: #%s", ErrContainerNotFound, id)
	}
	d.containers[id] = nil
	return nil
}

// Surface returns the surface mounted in container id, nil when empty.
func (d *Document) Surface(id string) (*Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.containers[id]
	if !ok {
		return nil, fmt.Errorf("%w: #%s", ErrContainerNotFound, id)
	}
	return s, nil
}

// Tooltip returns a copy of the shared tooltip state.
func (d *Document) Tooltip() Tooltip {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *d.tooltip
}

// Enter highlights shape i of container id.
func (d *Document) Enter(id string, i int) (*Shape, error) {
	s, err := d.mounted(id)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return s.Enter(i)
}

// Leave returns shape i of container id to idle.
func (d *Document) Leave(id string, i int) error {
	s, err := d.mounted(id)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return s.Leave(i)
}

func (d *Document) mounted(id string) (*Surface, error) {
	s, err := d.Surface(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("container #%s is empty", id)
	}
	return s, nil
}
