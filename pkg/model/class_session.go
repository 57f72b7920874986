package model

// ClassSession is a bookable class with a capacity and a live enrollment
// counter. Capacity 0 means unlimited. The enrolled counter is maintained
// exclusively by the reservation ledger's transactions and always equals the
// number of live bookings for the class.
type ClassSession struct {
	ID       string `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Time     string `json:"time" bson:"time"`
	Capacity int    `json:"capacity" bson:"capacity"`
	Enrolled int    `json:"enrolled" bson:"enrolled"`
}

// ClassSnapshot is the class view returned from ledger operations: the
// fields denormalized onto bookings at reservation time.
type ClassSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time string `json:"time"`
}

func (c *ClassSession) Snapshot() ClassSnapshot {
	return ClassSnapshot{ID: c.ID, Name: c.Name, Time: c.Time}
}
