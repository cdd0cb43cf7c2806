package reply

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/orm"
)

// Continuation is a snapshot of the state needed to finish an operation once
// the reply to a call is delivered.
type Continuation interface {
	orm.Model
	// Kind returns the name the continuation was registered with.
	Kind() string
}

func init() {
	orm.RegisterInterface((*Continuation)(nil))
}

// RegisterContinuation registers a continuation kind. prototype must be a
// pointer to a struct implementing Continuation and continuations of this
// kind must always be stashed as pointers.
//
// Use this function only during a program startup phase.
func RegisterContinuation(prototype Continuation) {
	orm.RegisterConcrete(prototype, prototype.Kind())
}

var (
	bucket = orm.NewModelBucket("reply")
	idSeq  = orm.NewSequence("reply", "id")
)

type stashed struct {
	Continuation Continuation
}

func (s *stashed) Validate() error {
	if s.Continuation == nil {
		return errors.Wrap(errors.ErrEmpty, "continuation")
	}
	return s.Continuation.Validate()
}

// Stash persists given continuation and returns the id that must be used as
// the reply id of the call.
func Stash(db nexus.KVStore, c Continuation) (uint64, error) {
	id, err := idSeq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "reply id")
	}
	if err := bucket.Put(db, orm.EncodeSequence(id), &stashed{Continuation: c}); err != nil {
		return 0, errors.Wrapf(err, "stash %s", c.Kind())
	}
	return id, nil
}

// Take loads and removes the continuation stashed under given id.
// ErrUnknownReplyID is returned if there is none.
func Take(db nexus.KVStore, id uint64) (Continuation, error) {
	key := orm.EncodeSequence(id)
	var s stashed
	switch err := bucket.One(db, key, &s); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrUnknownReplyID, "id=%d", id)
	case err != nil:
		return nil, err
	}
	if err := bucket.Delete(db, key); err != nil {
		return nil, errors.Wrapf(err, "delete continuation %d", id)
	}
	return s.Continuation, nil
}

// Pending returns the number of continuations that were stashed and not yet
// taken.
func Pending(db nexus.ReadOnlyKVStore) (int, error) {
	keys, err := bucket.Keys(db, nil)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
