package domain

// OrderStatus represents the delivery status of an order.
type OrderStatus string

// List of possible order statuses
const (
	StatusReadyForPickup OrderStatus = "ReadyForPickup"
	StatusAssigned       OrderStatus = "Assigned"
	StatusPickup         OrderStatus = "Pickup"
	StatusOnTheWay       OrderStatus = "OnTheWay"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
	StatusDeliveryFailed OrderStatus = "DeliveryFailed"
	StatusCompleted      OrderStatus = "Completed"
)

// List of allowed statuses
var allowedStatuses = [...]OrderStatus{
	StatusReadyForPickup, StatusAssigned, StatusPickup, StatusOnTheWay,
	StatusDelivered, StatusCancelled, StatusDeliveryFailed, StatusCompleted,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// StatusColors is the display color pair of a status badge.
type StatusColors struct {
	Background string
	Text       string
}

var statusColors = map[OrderStatus]StatusColors{
	StatusReadyForPickup: {Background: "#DEE9FF", Text: "#4A6FA5"},
	StatusAssigned:       {Background: "#FFFCAD", Text: "#8B8654"},
	StatusPickup:         {Background: "#EDEDED", Text: "#666666"},
	StatusOnTheWay:       {Background: "#FFD9AD", Text: "#A67B4D"},
	StatusDelivered:      {Background: "#D2FFAD", Text: "#5C8C3E"},
	StatusCancelled:      {Background: "#FFBDAD", Text: "#A65D45"},
	StatusDeliveryFailed: {Background: "#000000", Text: "#FFFFFF"},
	StatusCompleted:      {Background: "#D2FFAD", Text: "#5C8C3E"},
}

// Colors returns the display colors of the status. Unknown statuses fall
// back to the ReadyForPickup pair.
func (s OrderStatus) Colors() StatusColors {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return statusColors[StatusReadyForPickup]
}

// Tab is a filter over the rider order feed.
type Tab string

// List of feed tabs
const (
	TabPending  Tab = "Pending"
	TabActive   Tab = "Active"
	TabComplete Tab = "Complete"
)

// Matches reports whether an order with the given status belongs to the tab.
func (t Tab) Matches(s OrderStatus) bool {
	switch t {
	case TabPending:
		return s == StatusAssigned
	case TabActive:
		return s == StatusPickup || s == StatusOnTheWay || s == StatusDelivered
	case TabComplete:
		return s == StatusCompleted
	default:
		return false
	}
}

// BatchFilter selects single orders, batched orders, or both.
type BatchFilter string

// List of batch filters
const (
	BatchAll     BatchFilter = "All"
	BatchBatched BatchFilter = "Batched"
	BatchSingle  BatchFilter = "Single"
)

// Matches reports whether the order passes the batch-type filter.
func (f BatchFilter) Matches(o Order) bool {
	switch f {
	case BatchBatched:
		return o.BatchID != ""
	case BatchSingle:
		return o.BatchID == ""
	default:
		return true
	}
}
