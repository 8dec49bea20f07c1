package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/leapstack-labs/querykit/internal/testutil"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessBatchKeepsOrder(t *testing.T) {
	e := New(Config{Logger: testutil.NewTestLogger(t), Concurrency: 3})

	var items []BatchItem
	for i := range 20 {
		items = append(items, BatchItem{
			ID:     fmt.Sprintf("item-%02d", i),
			Input:  fmt.Sprintf("table: t%d", i),
			Config: testutil.NewConfig(core.QuerySelect, core.DatabaseMySQL),
		})
	}
	items = append(items, BatchItem{Name: "empty", Config: testutil.NewConfig(core.QuerySelect, core.DatabaseMySQL)})

	results, err := e.ProcessBatch(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, results, len(items))

	for i := range 20 {
		assert.Equal(t, fmt.Sprintf("item-%02d", i), results[i].ID)
		require.True(t, results[i].Result.Success)
		assert.Equal(t, []string{fmt.Sprintf("t%d", i)}, results[i].Result.QueryInfo.Tables)
	}

	last := results[len(results)-1]
	assert.Equal(t, "empty", last.Name)
	assert.NotEmpty(t, last.ID, "missing ids are generated")
	assert.False(t, last.Result.Success)
}

func TestProcessBatchCanceled(t *testing.T) {
	e := New(Config{Logger: testutil.NewTestLogger(t)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []BatchItem{{Input: "table: t", Config: testutil.NewConfig(core.QuerySelect, core.DatabaseMySQL)}}
	results, err := e.ProcessBatch(ctx, items)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, 1)
}

func TestProcessBatchEmpty(t *testing.T) {
	results, err := New(Config{}).ProcessBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
