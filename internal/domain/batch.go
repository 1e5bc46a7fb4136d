package domain

// groupKey keeps batch groups and singleton orders in disjoint key spaces:
// a singleton whose order id happens to equal some batch id must not be
// folded into that batch.
type groupKey struct {
	batch bool
	id    string
}

// OrderGroup is an ephemeral display record over the order feed: one group
// per distinct batch id, or a singleton wrapping a lone order. It is
// recomputed from scratch on every filter change, never mutated in place.
type OrderGroup struct {
	// Representative is the first order seen for the group.
	Representative Order
	// Orders holds the members in input order. Singletons hold one entry.
	Orders []Order
	// DropOffs concatenates the first dropoff of each member in input order.
	DropOffs []DropOffPoint
}

// IsBatch reports whether the group aggregates a batched shipment.
func (g OrderGroup) IsBatch() bool {
	return g.Representative.BatchID != ""
}

// TotalPrice sums the delivery price of every member.
func (g OrderGroup) TotalPrice() float64 {
	var sum float64
	for _, o := range g.Orders {
		sum += o.DeliveryPrice
	}
	return sum
}

// GroupByBatch folds a flat order sequence into display groups. Orders
// sharing a non-empty batch id collapse to one group in first-occurrence
// order of that id; subsequent same-batch orders append in input order.
// Orders without a batch id pass through unchanged. Single linear pass.
func GroupByBatch(orders []Order) []OrderGroup {
	index := make(map[groupKey]int, len(orders))
	groups := make([]OrderGroup, 0, len(orders))

	for _, o := range orders {
		key := groupKey{batch: o.BatchID != "", id: o.ID}
		if key.batch {
			key.id = o.BatchID
		}

		i, ok := index[key]
		if !ok {
			index[key] = len(groups)
			groups = append(groups, OrderGroup{
				Representative: o,
				Orders:         []Order{o},
				DropOffs:       firstDropOff(o),
			})
			continue
		}
		groups[i].Orders = append(groups[i].Orders, o)
		groups[i].DropOffs = append(groups[i].DropOffs, firstDropOff(o)...)
	}

	return groups
}

func firstDropOff(o Order) []DropOffPoint {
	if len(o.DropOff) == 0 {
		return nil
	}
	return []DropOffPoint{o.DropOff[0]}
}

// FilterByTab returns the orders whose status belongs to the tab,
// preserving input order.
func FilterByTab(orders []Order, tab Tab) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if tab.Matches(o.Status) {
			out = append(out, o)
		}
	}
	return out
}

// FilterByBatch returns the orders passing the batch-type filter,
// preserving input order.
func FilterByBatch(orders []Order, f BatchFilter) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if f.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}
