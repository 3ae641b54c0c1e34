package service

import (
	"testing"
	"time"

	"ReferralApi/cmd/db"
	"ReferralApi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateTeamBonusesBelowThreshold(t *testing.T) {
	setupTestDB(t)
	s := newTestService()

	referrer := createUser(t, "referrer", "CODE0001", nil)
	referee := createUser(t, "referee", "CODE0002", &referrer.ID)

	createDeposit(t, referee.ID, 1500, time.Now())

	qualified, err := s.EvaluateTeamBonuses(nil, referrer.ID, time.Now())
	require.NoError(t, err)
	assert.Empty(t, qualified)
}

func TestEvaluateTeamBonusesMultipleTiers(t *testing.T) {
	setupTestDB(t)
	s := newTestService()

	referrer := createUser(t, "referrer", "CODE0001", nil)
	referee := createUser(t, "referee", "CODE0002", &referrer.ID)

	createDeposit(t, referee.ID, 3000, time.Now())
	createDeposit(t, referee.ID, 2000, time.Now())

	qualified, err := s.EvaluateTeamBonuses(nil, referrer.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, qualified, 2)

	assert.Equal(t, 2000.0, qualified[0].Threshold)
	assert.Equal(t, 12.0, qualified[0].Reward)
	assert.Equal(t, 5000.0, qualified[1].Threshold)
	assert.Equal(t, 40.0, qualified[1].Reward)
	assert.InDelta(t, 5000, qualified[0].TeamTotal, 1e-9)
}

func TestEvaluateTeamBonusesSkipsGrantedTier(t *testing.T) {
	setupTestDB(t)
	s := newTestService()

	referrer := createUser(t, "referrer", "CODE0001", nil)
	referee := createUser(t, "referee", "CODE0002", &referrer.ID)

	createDeposit(t, referee.ID, 5000, time.Now())

	require.NoError(t, db.DB.Create(&models.TeamBonus{
		UserID:      referrer.ID,
		BonusAmount: 12,
		TeamTotal:   2000,
		BonusType:   models.TeamBonusType24h,
		CreatedAt:   time.Now(),
	}).Error)

	qualified, err := s.EvaluateTeamBonuses(nil, referrer.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, qualified, 1)
	assert.Equal(t, 5000.0, qualified[0].Threshold)
}

func TestEvaluateTeamBonusesRegrantAfterWindow(t *testing.T) {
	setupTestDB(t)
	s := newTestService()

	referrer := createUser(t, "referrer", "CODE0001", nil)
	referee := createUser(t, "referee", "CODE0002", &referrer.ID)

	createDeposit(t, referee.ID, 2500, time.Now())

	// prior grant aged out of the rolling window
	require.NoError(t, db.DB.Create(&models.TeamBonus{
		UserID:      referrer.ID,
		BonusAmount: 12,
		TeamTotal:   2000,
		BonusType:   models.TeamBonusType24h,
		CreatedAt:   time.Now().Add(-25 * time.Hour),
	}).Error)

	qualified, err := s.EvaluateTeamBonuses(nil, referrer.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, qualified, 1)
	assert.Equal(t, 2000.0, qualified[0].Threshold)
}

func TestEvaluateTeamBonusesIgnoresOldDeposits(t *testing.T) {
	setupTestDB(t)
	s := newTestService()

	referrer := createUser(t, "referrer", "CODE0001", nil)
	referee := createUser(t, "referee", "CODE0002", &referrer.ID)

	createDeposit(t, referee.ID, 5000, time.Now().Add(-25*time.Hour))
	createDeposit(t, referee.ID, 500, time.Now())

	qualified, err := s.EvaluateTeamBonuses(nil, referrer.ID, time.Now())
	require.NoError(t, err)
	assert.Empty(t, qualified)
}
