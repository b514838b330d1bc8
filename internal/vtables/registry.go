package vtables

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Convention names the calling convention a dispatch table was built for.
type Convention string

const (
	ConvByRef        Convention = "dyn_fn_go_conv_by_ref"
	ConvByMutRef     Convention = "dyn_fn_go_conv_by_mut_ref"
	ConvByOnce       Convention = "dyn_fn_go_conv_by_once"
	ConvAsync        Convention = "dyn_fn_go_conv_async"
	ConvAsyncMut     Convention = "dyn_fn_go_conv_async_mut"
	ConvAsyncOnce    Convention = "dyn_fn_go_conv_async_once"
	ConvAsyncSync    Convention = "dyn_fn_go_conv_async_from_sync"
	ConvAsyncSyncMut Convention = "dyn_fn_go_conv_async_from_sync_mut"
	ConvAsyncSyncOne Convention = "dyn_fn_go_conv_async_from_sync_once"
	ConvFuture       Convention = "dyn_fn_go_conv_future"
)

// Key identifies a dispatch table: the concrete erased type, the
// argument/result instantiation, and the calling convention. Tables are
// built once per key and live for the rest of the process.
type Key struct {
	Concrete reflect.Type
	Arg      reflect.Type
	Ret      reflect.Type
	Conv     Convention
}

const numShards = 16

// registry memoizes dispatch tables. Shards are selected by hash so that
// unrelated types do not contend on a single map.
type registry struct {
	shards [numShards]sync.Map
}

var global registry

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger replaces the registry logger. The default is a nop logger;
// table construction events are emitted at debug level.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func hash(key string) int {
	return int(xxhash.Sum64String(key))
}

func shardOf(k Key) int {
	h := hash(k.Concrete.String() + "|" + string(k.Conv))
	if h < 0 {
		h = -h
	}
	return h % numShards
}

// entry pairs a registered table with the identity assigned to it at
// registration. The id names the table in lifecycle logs and stays with it
// for the rest of the process.
type entry struct {
	id  uuid.UUID
	tab any
}

// LoadOrBuild returns the canonical table for the key, building it with
// build on first use. Concurrent builders may race; exactly one table wins
// and is returned to everyone.
func LoadOrBuild(k Key, build func() any) any {
	shard := &global.shards[shardOf(k)]
	if v, ok := shard.Load(k); ok {
		return v.(*entry).tab
	}
	e := &entry{id: uuid.New(), tab: build()}
	actual, loaded := shard.LoadOrStore(k, e)
	won := actual.(*entry)
	if !loaded {
		logger.Load().Sugar().Debugf(
			"built dispatch table: tableId: %v, concrete: %v, conv: %v",
			won.id, k.Concrete, k.Conv,
		)
	}
	return won.tab
}

// TableID returns the identity of the table registered for the key, false if
// no table has been built for it yet.
func TableID(k Key) (uuid.UUID, bool) {
	v, ok := global.shards[shardOf(k)].Load(k)
	if !ok {
		return uuid.UUID{}, false
	}
	return v.(*entry).id, true
}

// KeyFor assembles a key from instantiated type parameters.
func KeyFor[Concrete, A, R any](conv Convention) Key {
	return Key{
		Concrete: reflect.TypeOf((*Concrete)(nil)).Elem(),
		Arg:      reflect.TypeOf((*A)(nil)).Elem(),
		Ret:      reflect.TypeOf((*R)(nil)).Elem(),
		Conv:     conv,
	}
}

// KeyOf assembles a key for a concrete type known only at runtime, as with
// the futures produced by erased async callables.
func KeyOf[R any](concrete reflect.Type, conv Convention) Key {
	return Key{
		Concrete: concrete,
		Ret:      reflect.TypeOf((*R)(nil)).Elem(),
		Conv:     conv,
	}
}
