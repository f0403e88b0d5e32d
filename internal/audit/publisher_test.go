package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct{ err error }

func (f *failingSink) Publish(context.Context, Event) error { return f.err }

func TestEmitFillsIDAndTimestamp(t *testing.T) {
	store := NewMemoryStore()
	p := NewPublisher(store, nil)

	require.NoError(t, p.Emit(context.Background(), Event{Action: ActionLogin, Outcome: OutcomeSuccess}))

	all := store.All()
	require.Len(t, all, 1)
	assert.NotEqual(t, uuid.Nil, all[0].ID)
	assert.False(t, all[0].Timestamp.IsZero())
}

func TestEmitSurfacesSinkError(t *testing.T) {
	store := NewMemoryStore()
	p := NewPublisher(store, &failingSink{err: errors.New("broker down")})

	err := p.Emit(context.Background(), Event{Action: ActionLogout})
	require.Error(t, err)

	// The store append still happened.
	assert.Len(t, store.All(), 1)
}

func TestListByActor(t *testing.T) {
	store := NewMemoryStore()
	p := NewPublisher(store, nil)
	ctx := context.Background()

	actor := uuid.New()
	require.NoError(t, p.Emit(ctx, Event{Action: ActionLogin, ActorID: actor}))
	require.NoError(t, p.Emit(ctx, Event{Action: ActionLogin, ActorID: uuid.New()}))

	assert.Len(t, store.ListByActor(ctx, actor), 1)
}
