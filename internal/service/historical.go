package service

import (
	"fmt"
	"strconv"

	"treasury_go/internal/fabric"
)

// RecordStore archives persisted entities locally, alongside the outbound
// feed. Implemented by the sqlite store.
type RecordStore interface {
	SaveRecord(stream, key string, v any) error
}

// HistoricalDataService persists every entity of one derived stream.
// A monotonic counter produces string persistence keys, unique for the
// lifetime of the process.
type HistoricalDataService[V any] struct {
	fabric.NopListener[V]
	stream  string
	out     fabric.Publisher[V]
	store   RecordStore
	nextKey int64
}

// NewHistoricalDataService creates a persistence sink for one stream.
// store may be nil to skip local archiving.
func NewHistoricalDataService[V any](stream string, out fabric.Publisher[V], store RecordStore) *HistoricalDataService[V] {
	return &HistoricalDataService[V]{stream: stream, out: out, store: store}
}

// OnAdd persists an entity under the next key. A transport failure here
// is unrecoverable; the pipeline halts.
func (s *HistoricalDataService[V]) OnAdd(v V) {
	key := strconv.FormatInt(s.nextKey, 10)
	s.nextKey++
	if err := s.PersistData(key, v); err != nil {
		panic(fmt.Sprintf("historical %s: persist key %s: %v", s.stream, key, err))
	}
}

// PersistData archives and publishes one entity.
func (s *HistoricalDataService[V]) PersistData(key string, v V) error {
	if s.store != nil {
		if err := s.store.SaveRecord(s.stream, key, v); err != nil {
			return err
		}
	}
	return s.out.Publish(v)
}
