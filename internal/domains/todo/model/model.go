package model

import (
	"fmt"
	"mytodos/shared/constant"
	"mytodos/shared/timezone"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionName = "todos"
	EntityName     = "todo"

	FieldID          = "_id"
	FieldTitle       = "title"
	FieldCompleted   = "completed"
	FieldCompletedAt = "completedAt"
	FieldUpdatedAt   = "updatedAt"
)

// Todo is the stored document. The collection has no schema, so the identifier is
// whatever the writer chose: an ObjectID for documents created here, anything for
// documents inserted by other clients.
type Todo struct {
	ID          any        `bson:"_id,omitempty"`
	Title       string     `bson:"title"`
	Completed   bool       `bson:"completed"`
	CompletedAt *Timestamp `bson:"completedAt"`
	UpdatedAt   *Timestamp `bson:"updatedAt"`
}

// IDString renders the identifier for clients. ObjectIDs use their hex form.
func (t Todo) IDString() string {
	switch id := t.ID.(type) {
	case nil:
		return constant.Empty
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

// Timestamp is an ISO-8601 string with milliseconds. It is written as a string and
// read from either a string or a BSON date, dates being rendered in the app timezone.
type Timestamp string

func NewTimestamp(value string) *Timestamp {
	ts := Timestamp(value)

	return &ts
}

func (t *Timestamp) String() string {
	if t == nil {
		return constant.Empty
	}

	return string(*t)
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (t *Timestamp) UnmarshalBSONValue(typ bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: typ, Value: data}

	switch typ {
	case bson.TypeString:
		*t = Timestamp(raw.StringValue())
	case bson.TypeDateTime:
		*t = Timestamp(timezone.Format(raw.Time(), constant.DateFormat))
	case bson.TypeTimestamp:
		seconds, _ := raw.Timestamp()
		*t = Timestamp(timezone.Format(time.Unix(int64(seconds), 0), constant.DateFormat))
	case bson.TypeNull, bson.TypeUndefined:
		*t = Timestamp(constant.Empty)
	default:
		if err := raw.Validate(); err != nil {
			return fmt.Errorf("invalid timestamp value: %w", err)
		}

		*t = Timestamp(raw.String())
	}

	return nil
}
