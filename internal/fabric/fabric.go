// Package fabric is the generic publish/subscribe wiring the pipeline is
// built from. A Service is a keyed store of entities that notifies its
// listeners synchronously on mutation; a Listener bridges one service's
// output to another service's input; a Connector adapts the boundary to
// the outside world.
//
// Notify runs every listener to completion before returning, in
// registration order. The whole graph executes on one goroutine: a call to
// OnMessage on any service finishes the entire downstream propagation
// before the next record is read.
package fabric

import (
	"fmt"

	"treasury_go/internal/domain"
)

// Listener consumes another service's notifications. Only OnAdd carries
// data through the core graph; OnRemove and OnUpdate exist for
// completeness and are no-ops on most edges.
type Listener[V any] interface {
	OnAdd(v V)
	OnRemove(v V)
	OnUpdate(v V)
}

// Service is a keyed store of entities of type V that notifies registered
// listeners on mutation.
type Service[K comparable, V any] interface {
	// OnMessage is the ingest point invoked by inbound connectors.
	OnMessage(v V) error

	// GetData returns the cached entity for a key.
	GetData(key K) (V, error)

	// AddListener registers a listener for notify callbacks.
	AddListener(l Listener[V])

	// Notify invokes every listener's OnAdd in registration order.
	Notify(v V)
}

// Publisher is the outbound half of a Connector: services push entities
// out of the fabric through it.
type Publisher[V any] interface {
	Publish(v V) error
}

// NopListener provides no-op OnRemove and OnUpdate callbacks. Embed it in
// listeners that only care about adds.
type NopListener[V any] struct{}

func (NopListener[V]) OnRemove(V) {}
func (NopListener[V]) OnUpdate(V) {}

// ListenerFunc adapts a function to the Listener interface, OnAdd only.
type ListenerFunc[V any] func(v V)

func (f ListenerFunc[V]) OnAdd(v V)  { f(v) }
func (f ListenerFunc[V]) OnRemove(V) {}
func (f ListenerFunc[V]) OnUpdate(V) {}

// Cache is the keyed store and listener registry services embed.
// The most recent value per key is kept; Put overwrites.
type Cache[K comparable, V any] struct {
	data      map[K]V
	listeners []Listener[V]
}

// NewCache allocates an empty cache.
func NewCache[K comparable, V any]() Cache[K, V] {
	return Cache[K, V]{data: make(map[K]V)}
}

// Put overwrites the cached value for a key.
func (c *Cache[K, V]) Put(key K, v V) {
	c.data[key] = v
}

// GetData returns the cached value for a key, or ErrNotFound.
func (c *Cache[K, V]) GetData(key K) (V, error) {
	v, ok := c.data[key]
	if !ok {
		return v, fmt.Errorf("cache key %v: %w", key, domain.ErrNotFound)
	}
	return v, nil
}

// Len returns the number of cached keys.
func (c *Cache[K, V]) Len() int {
	return len(c.data)
}

// AddListener registers a listener. Notification order follows
// registration order.
func (c *Cache[K, V]) AddListener(l Listener[V]) {
	c.listeners = append(c.listeners, l)
}

// Notify invokes every listener's OnAdd synchronously.
func (c *Cache[K, V]) Notify(v V) {
	for _, l := range c.listeners {
		l.OnAdd(v)
	}
}
