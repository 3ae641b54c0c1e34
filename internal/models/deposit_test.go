package models

import (
	"testing"
	"time"

	"ReferralApi/cmd/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createDeposit(t *testing.T, userID int64, amount float64, createdAt time.Time) {
	t.Helper()

	dep := Deposit{
		UserID:    userID,
		Amount:    amount,
		Status:    DepositStatusCompleted,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.DB.Create(&dep).Error)
}

func TestSumDirectTeamDeposits(t *testing.T) {
	setupTestDB(t)

	referrer := createUser(t, "referrer", "REF00001", nil)
	refereeB := createUser(t, "refereeB", "REF00002", &referrer.ID)
	refereeC := createUser(t, "refereeC", "REF00003", &referrer.ID)
	grandchild := createUser(t, "grandchild", "REF00004", &refereeB.ID)

	now := time.Now()
	createDeposit(t, refereeB.ID, 100, now)
	createDeposit(t, refereeC.ID, 200, now)
	createDeposit(t, refereeC.ID, 300, now.Add(-25*time.Hour)) // outside window
	createDeposit(t, grandchild.ID, 400, now)                  // not a direct referee

	sum, err := SumDirectTeamDeposits(nil, referrer.ID, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, 300, sum, 1e-9)
}

func TestSumDirectTeamDepositsEmptyTeam(t *testing.T) {
	setupTestDB(t)

	referrer := createUser(t, "loner", "REF00001", nil)

	sum, err := SumDirectTeamDeposits(nil, referrer.ID, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, sum)
}
