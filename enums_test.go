package vitrin

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumProvider_Load(t *testing.T) {
	source := StaticEnumSource{
		"gadget.brands": {
			{Value: "apple", Label: "Apple"},
			{Value: "fairphone", Label: "Fairphone"},
		},
	}
	p := NewEnumProvider(source, 16, nil)

	_, ok := p.Enum("gadget.brands")
	assert.False(t, ok, "unloaded key must miss")
	assert.Nil(t, p.Lookup("gadget.brands"))

	p.Load(context.Background(), "gadget.brands")

	opts, ok := p.Enum("gadget.brands")
	require.True(t, ok)
	require.Len(t, opts, 2)
	assert.Equal(t, "Apple", opts[0].Label)
	assert.Len(t, p.Lookup("gadget.brands"), 2)
}

func TestEnumProvider_LoadSkipsCached(t *testing.T) {
	var calls int32
	source := EnumSourceFunc(func(ctx context.Context, key string) ([]Option, error) {
		atomic.AddInt32(&calls, 1)
		return []Option{{Value: "a", Label: "A"}}, nil
	})
	p := NewEnumProvider(source, 16, nil)

	p.Load(context.Background(), "colors")
	p.Load(context.Background(), "colors")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestEnumProvider_FetchFailureDegrades(t *testing.T) {
	source := EnumSourceFunc(func(ctx context.Context, key string) ([]Option, error) {
		return nil, errors.New("bucket unreachable")
	})
	p := NewEnumProvider(source, 16, nil)

	p.Load(context.Background(), "colors")

	// the failure is not cached; the key stays in loading state
	_, ok := p.Enum("colors")
	assert.False(t, ok)
	assert.Nil(t, p.Lookup("colors"))
}

func TestEnumProvider_EmptyListIsCached(t *testing.T) {
	var calls int32
	source := EnumSourceFunc(func(ctx context.Context, key string) ([]Option, error) {
		atomic.AddInt32(&calls, 1)
		return []Option{}, nil
	})
	p := NewEnumProvider(source, 16, nil)

	p.Load(context.Background(), "empties")
	p.Load(context.Background(), "empties")

	opts, ok := p.Enum("empties")
	assert.True(t, ok)
	assert.Empty(t, opts)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
