package storage

import (
	"encoding/json"
	"fmt"

	"ticket-booking/constants"
	bookingModel "ticket-booking/models/booking"
	fraudModel "ticket-booking/models/fraud"
)

// Store is the persisted record boundary: three string-keyed JSON collections.
// Reads never fail; missing or corrupt values degrade to the collection's
// empty default. Writes are last-write-wins with no transactional guarantees,
// so two concurrent writers can lose updates. Single-writer deployments are
// assumed.
type Store interface {
	FraudRecords() fraudModel.Records
	SaveFraudRecords(records fraudModel.Records) error

	PendingBookings() []bookingModel.PendingBooking
	SavePendingBookings(bookings []bookingModel.PendingBooking) error

	VerifiedBookings() []bookingModel.VerifiedBooking
	SaveVerifiedBookings(bookings []bookingModel.VerifiedBooking) error
}

// rawStore is the key/value layer the typed accessors are built on.
type rawStore interface {
	get(key string) ([]byte, error)
	set(key string, value []byte) error
}

// decodeCollection unmarshals a stored value into out, reporting whether out
// was populated. Any read or parse failure leaves out untouched.
func decodeCollection(rs rawStore, key string, out interface{}) bool {
	data, err := rs.get(key)
	if err != nil || len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false
	}
	return true
}

// encodeCollection marshals value and writes it under key.
func encodeCollection(rs rawStore, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", key, err)
	}
	if err := rs.set(key, data); err != nil {
		return fmt.Errorf("failed to persist collection %s: %w", key, err)
	}
	return nil
}

// typedStore adapts a rawStore into the collection-typed Store contract.
type typedStore struct {
	raw rawStore
}

func (s *typedStore) FraudRecords() fraudModel.Records {
	records := fraudModel.Records{}
	decodeCollection(s.raw, constants.FraudDataKey, &records)
	if records == nil {
		records = fraudModel.Records{}
	}
	return records
}

func (s *typedStore) SaveFraudRecords(records fraudModel.Records) error {
	return encodeCollection(s.raw, constants.FraudDataKey, records)
}

func (s *typedStore) PendingBookings() []bookingModel.PendingBooking {
	var bookings []bookingModel.PendingBooking
	decodeCollection(s.raw, constants.PendingBookingsKey, &bookings)
	if bookings == nil {
		bookings = []bookingModel.PendingBooking{}
	}
	return bookings
}

func (s *typedStore) SavePendingBookings(bookings []bookingModel.PendingBooking) error {
	return encodeCollection(s.raw, constants.PendingBookingsKey, bookings)
}

func (s *typedStore) VerifiedBookings() []bookingModel.VerifiedBooking {
	var bookings []bookingModel.VerifiedBooking
	decodeCollection(s.raw, constants.VerifiedBookingsKey, &bookings)
	if bookings == nil {
		bookings = []bookingModel.VerifiedBooking{}
	}
	return bookings
}

func (s *typedStore) SaveVerifiedBookings(bookings []bookingModel.VerifiedBooking) error {
	return encodeCollection(s.raw, constants.VerifiedBookingsKey, bookings)
}
