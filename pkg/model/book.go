package model

// Book is a catalog document. Title and Author are the structured fields;
// Meta carries whatever else a client sends and is stored as-is (after the
// uppercase transform). Legacy documents may have arbitrary shapes, so list
// reads go through raw documents rather than this struct.
type Book struct {
	ID     string         `json:"id,omitempty" bson:"_id,omitempty"`
	Title  string         `json:"title" bson:"title" validate:"required,min=1,max=200"`
	Author string         `json:"author,omitempty" bson:"author,omitempty" validate:"omitempty,max=200"`
	Tags   []string       `json:"tags,omitempty" bson:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=60"`
	Meta   map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}
