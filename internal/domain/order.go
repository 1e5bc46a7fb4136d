package domain

import "time"

// PickupPoint is an order pickup location. Latitude and longitude are zero
// when the backend did not geocode the address.
type PickupPoint struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// DropOffPoint is an order dropoff location.
type DropOffPoint struct {
	Address string
}

// Order represents a rider-assigned delivery order. The backend owns the
// record; the client holds a read/write cached copy per fetch cycle.
type Order struct {
	ID            string
	CustomerName  string
	OrderNumber   string
	Status        OrderStatus
	Pickup        []PickupPoint
	DropOff       []DropOffPoint
	DeliveryPrice float64
	BatchID       string
	CourierName   string
	CustomerPhone string
	ReceivedAt    time.Time
	PickedUpAt    time.Time
	OnMyWayAt     time.Time
	CompletedAt   time.Time
}

// PickupAddress returns the first pickup address, or "" when absent.
func (o Order) PickupAddress() string {
	if len(o.Pickup) == 0 {
		return ""
	}
	return o.Pickup[0].Address
}

// DropOffAddress returns the first dropoff address, or "" when absent.
func (o Order) DropOffAddress() string {
	if len(o.DropOff) == 0 {
		return ""
	}
	return o.DropOff[0].Address
}

// StatusPatch carries an order status transition and the timestamp that the
// transition stamps. A zero time field is not sent.
type StatusPatch struct {
	Status      OrderStatus
	PickedUpAt  time.Time
	OnMyWayAt   time.Time
	CompletedAt time.Time
}
