package storage

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getAllImplementations returns a fresh instance of every strategy
func getAllImplementations(t testing.TB) map[string]Repository {
	t.Helper()

	sharded1, err := NewShardedMapRepository(1)
	require.NoError(t, err)
	sharded16, err := NewShardedMapRepository(16)
	require.NoError(t, err)

	return map[string]Repository{
		"MapRepository":           NewMapRepository(),
		"ListRepository":          NewListRepository(),
		"ShardedMapRepository_1":  sharded1,
		"ShardedMapRepository_16": sharded16,
	}
}

func forEachImplementation(t *testing.T, fn func(t *testing.T, r Repository)) {
	for name, r := range getAllImplementations(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, r)
		})
	}
}

func TestRepository_CreateAndFindByID(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, r Repository) {
		alice := r.Create(Attributes{Name: "Alice", Email: "alice@example.com"})
		assert.Equal(t, int64(1), alice.ID)

		got, ok := r.FindByID(alice.ID)
		require.True(t, ok)
		assert.Equal(t, User{ID: 1, Name: "Alice", Email: "alice@example.com"}, got)
	})
}

func TestRepository_IDsIncrease(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, r Repository) {
		var last int64
		for i := 0; i < 50; i++ {
			u := r.Create(Attributes{Name: fmt.Sprintf("user-%d", i), Email: fmt.Sprintf("u%d@example.com", i)})
			assert.Greater(t, u.ID, last)
			last = u.ID
		}
		assert.Equal(t, 50, r.Len())
	})
}

func TestRepository_FindByIDMissing(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, r Repository) {
		got, ok := r.FindByID(999)
		assert.False(t, ok)
		assert.Equal(t, User{}, got)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, r Repository) {
		r.Create(Attributes{Name: "Bob", Email: "bob@example.com"})

		got, err := r.FindByEmail("bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Bob", got.Name)

		_, err = r.FindByEmail("jyami@kakao.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_FindByEmailDuplicates(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, r Repository) {
		first := r.Create(Attributes{Name: "first", Email: "same@example.com"})
		r.Create(Attributes{Name: "second", Email: "same@example.com"})

		got, err := r.FindByEmail("same@example.com")
		require.NoError(t, err)
		assert.Equal(t, first, got)
	})
}

func TestRepository_FindAll(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, r Repository) {
		assert.Empty(t, r.FindAll())

		for i := 0; i < 10; i++ {
			r.Create(Attributes{Name: fmt.Sprintf("n%d", i), Email: fmt.Sprintf("e%d", i)})
		}

		all := r.FindAll()
		require.Len(t, all, 10)

		ids := make([]int64, len(all))
		for i, u := range all {
			ids[i] = u.ID
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids)

		// the snapshot is a copy
		all[0].Name = "changed"
		u, ok := r.FindByID(all[0].ID)
		require.True(t, ok)
		assert.NotEqual(t, "changed", u.Name)
	})
}

func TestListRepository_FindAllInsertionOrder(t *testing.T) {
	r := NewListRepository()
	for _, name := range []string{"c", "a", "b"} {
		r.Create(Attributes{Name: name, Email: name + "@example.com"})
	}

	all := r.FindAll()
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Name)
	assert.Equal(t, "a", all[1].Name)
	assert.Equal(t, "b", all[2].Name)
}

func TestRepository_Update(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, r Repository) {
		alice := r.Create(Attributes{Name: "Alice", Email: "alice@example.com"})

		err := r.Update(alice.ID, Attributes{Name: "Alice2", Email: "alice2@example.com"})
		require.NoError(t, err)

		got, ok := r.FindByID(alice.ID)
		require.True(t, ok)
		assert.Equal(t, User{ID: alice.ID, Name: "Alice2", Email: "alice2@example.com"}, got)

		// the copy returned by Create is not the stored instance
		assert.Equal(t, "Alice", alice.Name)

		_, err = r.FindByEmail("alice@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_UpdateMissing(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, r Repository) {
		err := r.Update(42, Attributes{Name: "ghost", Email: "ghost@example.com"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 0, r.Len())
	})
}

func TestRepository_Delete(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, r Repository) {
		u := r.Create(Attributes{Name: "Alice", Email: "alice@example.com"})

		for _, id := range []int64{u.ID, 0, -1, 999} {
			assert.ErrorIs(t, r.Delete(id), ErrUnsupported)
		}

		_, ok := r.FindByID(u.ID)
		assert.True(t, ok)
	})
}

func TestRepository_ConcurrentCreate(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, r Repository) {
		const workers = 100

		ids := make(chan int64, workers)
		var wg sync.WaitGroup
		wg.Add(workers)

		for i := 0; i < workers; i++ {
			go func(n int) {
				defer wg.Done()
				u := r.Create(Attributes{Name: fmt.Sprintf("w%d", n), Email: fmt.Sprintf("w%d@example.com", n)})
				ids <- u.ID
			}(i)
		}

		wg.Wait()
		close(ids)

		seen := make(map[int64]struct{}, workers)
		for id := range ids {
			_, dup := seen[id]
			require.False(t, dup, "duplicate id %d", id)
			seen[id] = struct{}{}
		}

		require.Len(t, seen, workers)
		for id := int64(1); id <= workers; id++ {
			assert.Contains(t, seen, id)
		}
		assert.Equal(t, workers, r.Len())
	})
}

func TestRepository_ConcurrentMixed(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, r Repository) {
		const workers = 50
		const opsPerWorker = 200

		var wg sync.WaitGroup
		wg.Add(workers)

		for i := 0; i < workers; i++ {
			go func(workerID int) {
				defer wg.Done()
				for j := 0; j < opsPerWorker; j++ {
					switch j % 4 {
					case 0:
						r.Create(Attributes{Name: "n", Email: fmt.Sprintf("w%d@example.com", workerID)})
					case 1:
						r.FindByID(int64(j))
					case 2:
						r.Update(int64(j), Attributes{Name: "u", Email: "u@example.com"}) //nolint:errcheck
					case 3:
						r.FindByEmail(fmt.Sprintf("w%d@example.com", workerID)) //nolint:errcheck
					}
				}
			}(i)
		}

		wg.Wait()
		assert.Equal(t, workers*opsPerWorker/4, r.Len())
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		shards      uint
		expectError bool
	}{
		{"hash", KindHash, 0, false},
		{"list", KindList, 0, false},
		{"sharded", KindSharded, 8, false},
		{"sharded with bad shard count", KindSharded, 3, true},
		{"unknown kind", Kind("btree"), 0, true},
		{"empty kind", Kind(""), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.kind, tt.shards)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}

	_, err := New("btree", 0)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func FuzzRepository(f *testing.F) {
	f.Add("Alice", "alice@example.com")
	f.Add("special", "!@#$%^&*()")
	f.Add("", "")

	repos := getAllImplementations(f)

	f.Fuzz(func(t *testing.T, name, email string) {
		for implName, r := range repos {
			u := r.Create(Attributes{Name: name, Email: email})

			got, ok := r.FindByID(u.ID)
			if !ok || got != u {
				t.Errorf("%s: FindByID failed after Create: name=%q, email=%q", implName, name, email)
			}

			if _, err := r.FindByEmail(email); err != nil {
				t.Errorf("%s: FindByEmail failed after Create: email=%q: %v", implName, email, err)
			}
		}
	})
}
