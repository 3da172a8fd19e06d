package domain

// Date format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Confirmation code constants.
// Codes look like TT-20240601-0042: prefix, creation date, 4 random digits.
// The random part gives ~1-in-10000 collision space per day; the unique
// constraint on reservations.confirmation_code is the backstop.
const (
	ConfirmationCodePrefix   = "TT"
	ConfirmationCodeDatePart = "20060102" // YYYYMMDD
)

// Guest NIC placeholder prefix, followed by 8 hex characters
const GuestNICPrefix = "AUTO"

// ActiveStatuses are the statuses that count against package availability
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
