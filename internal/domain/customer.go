package domain

import "time"

// Customer is a registered or guest customer profile.
// Guest profiles are provisioned during booking creation when the email is
// unknown: they carry IsGuest=true and a synthetic NIC placeholder, since
// the schema enforces NIC uniqueness even for guest-style bookings.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	NIC       string
	IsGuest   bool
	CreatedAt time.Time
}

// Guide is a staff member who can be attached to a reservation
type Guide struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     *string
}

// TourPackage is a purchasable tour product; reservations book a date
// range against it
type TourPackage struct {
	ID          int64
	Title       string
	Description *string
	Price       float64
	DurationDay int
}
