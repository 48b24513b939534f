// Package reconcile keeps the console's in-memory product collection consistent
// with server responses, together with the selection and edit pointers that
// refer into it.
package reconcile

import (
	"sort"
	"sync"

	"github.com/georgemunganga/copydesk/internal/modules/brief"
	"github.com/georgemunganga/copydesk/internal/modules/catalog"
)

// Snapshot is a copy of the collection state after one operation. Its records
// are deep copies, so changing them never reaches the collection. Empty ids
// mean "none".
type Snapshot struct {
	Version          uint64
	Products         []*catalog.Product
	SelectedID       string
	EditingID        string
	Draft            brief.Form
	DraftDescription string
}

// Find returns the record with id, or nil.
func (s Snapshot) Find(id string) *catalog.Product {
	if id == "" {
		return nil
	}
	for _, p := range s.Products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s Snapshot) Selected() *catalog.Product { return s.Find(s.SelectedID) }

func (s Snapshot) Editing() *catalog.Product { return s.Find(s.EditingID) }

// Observer is called synchronously after every mutation.
type Observer func(Snapshot)

// Collection owns the ordered product list, the selected and editing ids and the
// draft form. After every operation both ids are either empty or present in the
// list, and the list is ordered by UpdatedAt descending.
type Collection struct {
	mu               sync.Mutex
	products         []*catalog.Product
	selectedID       string
	editingID        string
	draft            brief.Form
	draftDescription string
	version          uint64

	observerMu sync.Mutex
	observers  map[int]Observer
	nextObs    int
}

func NewCollection() *Collection {
	return &Collection{
		products:  []*catalog.Product{},
		draft:     brief.DefaultForm(),
		observers: map[int]Observer{},
	}
}

// Subscribe registers fn and returns a function that removes it.
func (c *Collection) Subscribe(fn Observer) (unsubscribe func()) {
	c.observerMu.Lock()
	defer c.observerMu.Unlock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	return func() {
		c.observerMu.Lock()
		defer c.observerMu.Unlock()
		delete(c.observers, id)
	}
}

func (c *Collection) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// ReplaceAll installs the result of a full list refresh.
func (c *Collection) ReplaceAll(records []*catalog.Product) {
	c.mutate(func() {
		next := make([]*catalog.Product, 0, len(records))
		seen := make(map[string]int, len(records))
		for _, r := range records {
			if r == nil {
				continue
			}
			cp := r.Clone()
			if i, dup := seen[cp.ID]; dup {
				next[i] = cp
				continue
			}
			seen[cp.ID] = len(next)
			next = append(next, cp)
		}
		c.products = next
		c.sortLocked()

		if c.selectedID == "" || c.indexLocked(c.selectedID) < 0 {
			c.selectedID = c.firstIDLocked()
		}
		if c.editingID != "" && c.indexLocked(c.editingID) < 0 {
			c.resetDraftLocked()
		}
	})
}

// Upsert applies a created or updated record and selects it.
func (c *Collection) Upsert(record *catalog.Product) {
	if record == nil {
		return
	}
	c.mutate(func() {
		c.upsertLocked(record)
		c.selectedID = record.ID
	})
}

// Remove applies a successful delete.
func (c *Collection) Remove(id string) {
	c.mutate(func() {
		if i := c.indexLocked(id); i >= 0 {
			c.products = append(c.products[:i:i], c.products[i+1:]...)
		}
		if c.selectedID == id {
			c.selectedID = c.firstIDLocked()
		}
		if c.editingID == id {
			c.resetDraftLocked()
		}
	})
}

// BeginEdit loads record into the draft and points both ids at it. A record not
// yet in the collection is added first.
func (c *Collection) BeginEdit(record *catalog.Product) {
	if record == nil {
		return
	}
	c.mutate(func() {
		if c.indexLocked(record.ID) < 0 {
			c.upsertLocked(record)
		}
		c.editingID = record.ID
		c.selectedID = record.ID
		c.draft = brief.FormFromProduct(record)
		c.draftDescription = record.Description
	})
}

// ResetDraft clears the edit pointer and the draft. The list and the selection
// are untouched.
func (c *Collection) ResetDraft() {
	c.mutate(c.resetDraftLocked)
}

// Select points the selection at id. Unknown ids are ignored and report false.
func (c *Collection) Select(id string) bool {
	ok := false
	c.mutate(func() {
		if c.indexLocked(id) >= 0 {
			c.selectedID = id
			ok = true
		}
	})
	return ok
}

// SetDraft stores the form and description as last submitted by the user.
func (c *Collection) SetDraft(form brief.Form, description string) {
	c.mutate(func() {
		c.draft = form
		c.draftDescription = description
	})
}

func (c *Collection) mutate(fn func()) {
	c.mu.Lock()
	fn()
	c.version++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.observerMu.Lock()
	observers := make([]Observer, 0, len(c.observers))
	for i := 0; i < c.nextObs; i++ {
		if o, ok := c.observers[i]; ok {
			observers = append(observers, o)
		}
	}
	c.observerMu.Unlock()

	for _, o := range observers {
		o(snap)
	}
}

func (c *Collection) upsertLocked(record *catalog.Product) {
	cp := record.Clone()
	next := make([]*catalog.Product, 0, len(c.products)+1)
	next = append(next, cp)
	for _, p := range c.products {
		if p.ID != cp.ID {
			next = append(next, p)
		}
	}
	c.products = next
	c.sortLocked()
}

// sortLocked orders by UpdatedAt descending; equal timestamps keep their current
// relative order.
func (c *Collection) sortLocked() {
	sort.SliceStable(c.products, func(i, j int) bool {
		return c.products[i].UpdatedAt.After(c.products[j].UpdatedAt.Time)
	})
}

func (c *Collection) resetDraftLocked() {
	c.editingID = ""
	c.draft = brief.DefaultForm()
	c.draftDescription = ""
}

func (c *Collection) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, p := range c.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) firstIDLocked() string {
	if len(c.products) == 0 {
		return ""
	}
	return c.products[0].ID
}

func (c *Collection) snapshotLocked() Snapshot {
	products := make([]*catalog.Product, len(c.products))
	for i, p := range c.products {
		products[i] = p.Clone()
	}
	return Snapshot{
		Version:          c.version,
		Products:         products,
		SelectedID:       c.selectedID,
		EditingID:        c.editingID,
		Draft:            c.draft,
		DraftDescription: c.draftDescription,
	}
}
