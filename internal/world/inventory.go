package world

import "encoding/json"

// Inventory holds an ordered, capacity-bounded item list. Used for the
// backpack, the warehouse and the magic-stone pouch.
// Accessed only from the game loop goroutine.
type Inventory struct {
	Items []*Item
	Limit int
}

// NewInventory creates an empty inventory holding at most limit entries.
func NewInventory(limit int) *Inventory {
	return &Inventory{
		Items: make([]*Item, 0, limit),
		Limit: limit,
	}
}

// Find returns the item with the given ID.
func (inv *Inventory) Find(id string) *Item {
	for _, it := range inv.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Size returns the number of entries used.
func (inv *Inventory) Size() int {
	return len(inv.Items)
}

// IsFull returns true if no new entry fits.
func (inv *Inventory) IsFull() bool {
	return len(inv.Items) >= inv.Limit
}

// stackFor returns an existing entry item may merge into.
func (inv *Inventory) stackFor(item *Item) *Item {
	if !item.Stackable() {
		return nil
	}
	for _, it := range inv.Items {
		if it.StacksWith(item) {
			return it
		}
	}
	return nil
}

// CanAdd reports whether item would fit (by stacking or in a free entry).
func (inv *Inventory) CanAdd(item *Item) bool {
	return inv.stackFor(item) != nil || !inv.IsFull()
}

// AddItem stacks item onto a matching entry or appends it. Returns the
// affected entry, or nil when the inventory is full.
func (inv *Inventory) AddItem(item *Item) *Item {
	if item.Stackable() && item.Count < 1 {
		item.Count = 1
	}
	if existing := inv.stackFor(item); existing != nil {
		existing.Count += item.Count
		return existing
	}
	if inv.IsFull() {
		return nil
	}
	inv.Items = append(inv.Items, item)
	return item
}

// RemoveItem takes the whole entry out. Returns nil if absent.
func (inv *Inventory) RemoveItem(id string) *Item {
	for i, it := range inv.Items {
		if it.ID == id {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return it
		}
	}
	return nil
}

// TakeOne removes a single unit. Stacks with more than one unit are
// decremented and a detached copy of one unit is returned; otherwise the
// entry itself is removed and returned.
func (inv *Inventory) TakeOne(id string) *Item {
	it := inv.Find(id)
	if it == nil {
		return nil
	}
	if it.Stackable() && it.Count > 1 {
		it.Count--
		one := it.Clone()
		one.ID = NewItemID()
		one.Count = 1
		return one
	}
	return inv.RemoveItem(id)
}

func (inv *Inventory) MarshalJSON() ([]byte, error) {
	return json.Marshal(inv.Items)
}

// UnmarshalJSON keeps Limit and drops entries beyond it.
func (inv *Inventory) UnmarshalJSON(b []byte) error {
	var items []*Item
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	inv.Items = inv.Items[:0]
	for _, it := range items {
		if it == nil {
			continue
		}
		if inv.Limit > 0 && len(inv.Items) >= inv.Limit {
			break
		}
		inv.Items = append(inv.Items, it)
	}
	return nil
}
