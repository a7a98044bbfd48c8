package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// ErrInvalidObjectID is returned when a string is not a 24 character hex ObjectID.
var ErrInvalidObjectID = errors.New("invalid objectid")

// ID is a MongoDB ObjectID that travels as a hex string in JSON and as a
// native ObjectID in BSON.
type ID primitive.ObjectID

// NilID is the zero ObjectID.
var NilID = ID(primitive.NilObjectID)

func NewID() ID {
	return ID(primitive.NewObjectID())
}

// ParseID converts a hex string into an ID.
func ParseID(s string) (ID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return NilID, fmt.Errorf("%w: %q", ErrInvalidObjectID, s)
	}
	return ID(oid), nil
}

func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func IsValidID(s string) bool {
	_, err := ParseID(s)
	return err == nil
}

func (id ID) Hex() string {
	return primitive.ObjectID(id).Hex()
}

func (id ID) String() string {
	return id.Hex()
}

func (id ID) IsZero() bool {
	return id == NilID
}

func (id ID) Equal(other ID) bool {
	return id == other
}

// Timestamp returns the creation time encoded in the first four bytes.
func (id ID) Timestamp() time.Time {
	return primitive.ObjectID(id).Timestamp()
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON accepts a hex string, extended JSON {"$oid": "..."} or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = NilID
		return nil
	}

	var s string
	if len(b) > 0 && b[0] == '{' {
		var ext struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(b, &ext); err != nil {
			return ErrInvalidObjectID
		}
		s = ext.OID
	} else if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidObjectID
	}

	return id.UnmarshalText([]byte(s))
}

func (id ID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	oid := primitive.ObjectID(id)
	return bsontype.ObjectID, bsoncore.AppendObjectID(nil, oid), nil
}

func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.ObjectID:
		oid, _, ok := bsoncore.ReadObjectID(data)
		if !ok {
			return ErrInvalidObjectID
		}
		*id = ID(oid)
		return nil
	case bsontype.String:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return ErrInvalidObjectID
		}
		return id.UnmarshalText([]byte(s))
	case bsontype.Null, bsontype.Undefined:
		*id = NilID
		return nil
	default:
		return fmt.Errorf("cannot decode BSON %s into an ObjectID", t)
	}
}

// Base is embedded by every stored document.
type Base struct {
	ID        ID        `json:"_id" bson:"_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewBase assigns a fresh identifier and stamps both timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        NewID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Pagination bounds a list query.
type Pagination struct {
	Limit int64 `validate:"min=1,max=100"`
	Skip  int64 `validate:"min=0"`
}

const DefaultPageSize int64 = 50

func DefaultPagination() Pagination {
	return Pagination{Limit: DefaultPageSize}
}

// StatusUpdate is the payload of the /{id}/status endpoints.
type StatusUpdate struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes,omitempty" validate:"max=2000"`
}
