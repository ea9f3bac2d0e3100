package storage

import (
	"errors"
	"hash/fnv"
	"math/bits"
	"strconv"
)

// ShardedMapRepository is a thread-safe hash-indexed repository,
// divided into segments (shards) to reduce contention for locking.
// All shards share one id generator, so ids behave exactly like in MapRepository
type ShardedMapRepository struct {
	shards    []*MapRepository
	shardMask uint32
	ids       *IDGenerator
}

// NewShardedMapRepository creates a new instance of ShardedMapRepository.
// The requestedShards parameter must be a power of two for efficient allocation.
// The maximum allowed number of shards is 64.
func NewShardedMapRepository(requestedShards uint) (*ShardedMapRepository, error) {
	if bits.OnesCount(requestedShards) != 1 {
		return nil, errors.New("requested shards must be a power of 2")
	}

	if requestedShards > 64 {
		return nil, errors.New("requested shards must be less or equal than 64")
	}

	s := &ShardedMapRepository{
		shards:    make([]*MapRepository, requestedShards),
		shardMask: uint32(requestedShards - 1),
		ids:       &IDGenerator{},
	}

	for i := range s.shards {
		s.shards[i] = newMapRepository(s.ids)
	}

	return s, nil
}

// getShardIndex returns index of shard by id
func (s *ShardedMapRepository) getShardIndex(id int64) uint32 {
	var buf [20]byte
	hash := fnv.New32a()
	hash.Write(strconv.AppendInt(buf[:0], id, 10)) //nolint:errcheck

	return hash.Sum32() & s.shardMask
}

// Create assigns the next id and stores the user in its shard
func (s *ShardedMapRepository) Create(attrs Attributes) User {
	u := User{ID: s.ids.Next()}
	u.apply(attrs)

	s.shards[s.getShardIndex(u.ID)].insert(u)
	return u
}

// FindByID returns the user and true if the id is stored. Otherwise, User{}, false
func (s *ShardedMapRepository) FindByID(id int64) (User, bool) {
	return s.shards[s.getShardIndex(id)].FindByID(id)
}

// FindByEmail asks every shard and returns the earliest created match or ErrNotFound
func (s *ShardedMapRepository) FindByEmail(email string) (User, error) {
	var found User
	ok := false

	for _, shard := range s.shards {
		u, hit := shard.firstByEmail(email)
		if hit && (!ok || u.ID < found.ID) {
			found = u
			ok = true
		}
	}

	if !ok {
		return User{}, ErrNotFound
	}
	return found, nil
}

// FindAll collects a snapshot of every shard sequentially to minimize locking time
func (s *ShardedMapRepository) FindAll() []User {
	out := make([]User, 0, s.Len())
	for _, shard := range s.shards {
		out = append(out, shard.FindAll()...)
	}
	return out
}

// Update calculate index shard and delegates the work to the MapRepository
func (s *ShardedMapRepository) Update(id int64, attrs Attributes) error {
	return s.shards[s.getShardIndex(id)].Update(id, attrs)
}

// Delete is not supported
func (s *ShardedMapRepository) Delete(int64) error {
	return ErrUnsupported
}

// Len returns the number of stored users across all shards
func (s *ShardedMapRepository) Len() int {
	n := 0
	for _, shard := range s.shards {
		n += shard.Len()
	}
	return n
}
