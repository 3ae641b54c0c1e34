package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkAncestorsNoReferrer(t *testing.T) {
	setupTestDB(t)

	user := createUser(t, "alone", "CODE0001", nil)

	chain, err := WalkAncestors(nil, user.ID)
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestWalkAncestorsDepthCap(t *testing.T) {
	setupTestDB(t)

	// five-user chain, walk starts at the bottom
	root := createUser(t, "user0", "CODE0000", nil)
	prev := root
	ids := []int64{root.ID}
	for i := 1; i < 5; i++ {
		u := createUser(t, fmt.Sprintf("user%d", i), fmt.Sprintf("CODE%04d", i), &prev.ID)
		ids = append(ids, u.ID)
		prev = u
	}

	chain, err := WalkAncestors(nil, ids[4])
	require.NoError(t, err)
	require.Len(t, chain, MaxReferralDepth)

	// nearest ancestors first, levels 1..3
	assert.Equal(t, ids[3], chain[0].UserID)
	assert.Equal(t, 1, chain[0].Level)
	assert.Equal(t, ids[2], chain[1].UserID)
	assert.Equal(t, 2, chain[1].Level)
	assert.Equal(t, ids[1], chain[2].UserID)
	assert.Equal(t, 3, chain[2].Level)
}

func TestWalkAncestorsTruncatesOnMissingReferrer(t *testing.T) {
	setupTestDB(t)

	missing := int64(9999)
	dangling := createUser(t, "dangling", "CODE0001", &missing)

	chain, err := WalkAncestors(nil, dangling.ID)
	require.NoError(t, err)
	assert.Empty(t, chain)

	child := createUser(t, "child", "CODE0002", &dangling.ID)

	chain, err = WalkAncestors(nil, child.ID)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, dangling.ID, chain[0].UserID)
	assert.Equal(t, 1, chain[0].Level)
}
