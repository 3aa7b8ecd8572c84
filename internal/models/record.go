package models

import (
	"encoding/json"
	"fmt"
)

// Record type discriminators used by the data synchronization service.
const (
	RecordTypeOrder   = "order"
	RecordTypeUser    = "user"
	RecordTypeProduct = "product"
	RecordTypeAddress = "address"
)

// Record is one tagged JSON document in the shared collection. The data
// service stores records opaquely; only the type tag and id are inspected
// before the typed decode at the snapshot boundary.
type Record struct {
	Type string
	ID   string
	Body json.RawMessage
}

// NewRecord marshals an entity into its record envelope. The entity must
// serialize with non-empty "type" and "id" fields.
func NewRecord(entity any) (Record, error) {
	body, err := json.Marshal(entity)
	if err != nil {
		return Record{}, fmt.Errorf("marshal record: %w", err)
	}

	var env struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return Record{}, fmt.Errorf("decode record envelope: %w", err)
	}
	if env.Type == "" {
		return Record{}, fmt.Errorf("record has no type tag")
	}
	if env.ID == "" {
		return Record{}, fmt.Errorf("record has no id")
	}

	return Record{Type: env.Type, ID: env.ID, Body: body}, nil
}

// ParseRecord rebuilds a record envelope from raw stored bytes.
func ParseRecord(body []byte) (Record, error) {
	return NewRecord(json.RawMessage(body))
}

// Snapshot is the full collection partitioned by record type. It wholesale
// replaces any previously held partitions; there is no incremental merge.
type Snapshot struct {
	Orders    []Order
	Users     []User
	Products  []Product
	Addresses []Address

	// Skipped counts records that carried an unknown type tag or failed
	// to decode into their entity shape.
	Skipped int
}

// DecodeSnapshot partitions a pushed collection into typed entities.
func DecodeSnapshot(records []Record) Snapshot {
	var snap Snapshot
	for _, rec := range records {
		switch rec.Type {
		case RecordTypeOrder:
			var o Order
			if err := json.Unmarshal(rec.Body, &o); err != nil {
				snap.Skipped++
				continue
			}
			snap.Orders = append(snap.Orders, o)
		case RecordTypeUser:
			var u User
			if err := json.Unmarshal(rec.Body, &u); err != nil {
				snap.Skipped++
				continue
			}
			snap.Users = append(snap.Users, u)
		case RecordTypeProduct:
			var p Product
			if err := json.Unmarshal(rec.Body, &p); err != nil {
				snap.Skipped++
				continue
			}
			snap.Products = append(snap.Products, p)
		case RecordTypeAddress:
			var a Address
			if err := json.Unmarshal(rec.Body, &a); err != nil {
				snap.Skipped++
				continue
			}
			snap.Addresses = append(snap.Addresses, a)
		default:
			snap.Skipped++
		}
	}
	return snap
}
