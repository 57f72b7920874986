package model

import "time"

// Booking is one user's seat in one class. Its document id is the
// deterministic composite key classId + "_" + userId, so a second booking
// attempt by the same user collides on the primary key instead of needing a
// query. Bookings are created by Reserve and deleted by Cancel; there is no
// update path.
type Booking struct {
	ID        string    `json:"bookingId" bson:"_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	UserEmail string    `json:"userEmail,omitempty" bson:"user_email,omitempty"`
	ClassID   string    `json:"classId" bson:"class_id"`
	ClassName string    `json:"className,omitempty" bson:"class_name,omitempty"`
	ClassTime string    `json:"classTime,omitempty" bson:"class_time,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// BookingID derives the deterministic composite booking key.
func BookingID(classID, userID string) string {
	return classID + "_" + userID
}

type UserSnapshot struct {
	ID    string  `json:"id"`
	Email *string `json:"email"`
}

// ReserveResult is the payload of a successful Reserve: the booking key and
// snapshots of the class and user involved.
type ReserveResult struct {
	BookingID string        `json:"bookingId"`
	Class     ClassSnapshot `json:"class"`
	User      UserSnapshot  `json:"user"`
}

// CancelResult mirrors ReserveResult for Cancel; the user snapshot carries
// only the id.
type CancelResult struct {
	BookingID string        `json:"bookingId"`
	Class     ClassSnapshot `json:"class"`
	User      struct {
		ID string `json:"id"`
	} `json:"user"`
}
