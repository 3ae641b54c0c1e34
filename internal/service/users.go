package service

import (
	"ReferralApi/cmd/db"
	"ReferralApi/internal/models"
	"ReferralApi/pkg/logger"
	"errors"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

type registerInput struct {
	Username     string `json:"username" validate:"required,min=3,max=32"`
	ReferralCode string `json:"referralCode" validate:"omitempty,alphanum,max=16"`
}

func (i *registerInput) Validate() error {
	return validate.Struct(i)
}

// Register handles POST users/register. An unknown referral code is not an
// error: the user is simply created without a referrer.
func Register(c *gin.Context) {
	var input registerInput
	if err := c.Bind(&input); err != nil {
		c.JSON(400, gin.H{"error": "Unable to unmarshal body"})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	exists, err := models.CheckIfUserExistsByUsername(input.Username)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}
	if exists {
		c.JSON(409, gin.H{"error": "User with this username already exists"})
		return
	}

	var user models.User
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if input.ReferralCode != "" {
			referrer, err := models.GetUserByReferralCode(tx, input.ReferralCode)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return logger.WrapError(err, "")
			}
			if referrer != nil {
				user.ReferredBy = &referrer.ID
			}
		}

		code, err := models.GenerateReferralCode(tx)
		if err != nil {
			return logger.WrapError(err, "")
		}

		user.Username = input.Username
		user.ReferralCode = code

		if err := tx.Create(&user).Error; err != nil {
			return logger.WrapError(err, "")
		}

		return nil
	})
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, gin.H{
		"user":         user,
		"referralLink": referralLink(user.ReferralCode),
	})
}

// GetUser handles GET users/:userID. Team size and team total cover the
// whole downstream sub-tree, unlike the bonus evaluator's direct-team sum.
func GetUser(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid user id"})
		return
	}

	user, err := models.GetUserByID(nil, userID)
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(404, gin.H{"error": "User not found"})
		return
	} else if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	rewards, err := models.GetUserRecentRewards(nil, userID, 50)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	teamSize, err := TeamSize(nil, userID)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	teamTotal, err := TeamTotalDeposits(nil, userID)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, gin.H{
		"user":         user,
		"rewards":      rewards,
		"teamSize":     teamSize,
		"teamTotal":    teamTotal,
		"referralLink": referralLink(user.ReferralCode),
	})
}

// GetUserByUsername handles GET users/by-username/:username.
func GetUserByUsername(c *gin.Context) {
	user, err := models.GetUserByUsername(nil, c.Param("username"))
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(404, gin.H{"error": "User not found"})
		return
	} else if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, gin.H{"user": user})
}

// GetUserReferrals handles GET users/:userID/referrals, listing direct
// referees only.
func GetUserReferrals(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid user id"})
		return
	}

	var referrals []models.User
	err = db.DB.Find(&referrals, "referred_by = ?", userID).Error
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	if len(referrals) == 0 {
		c.String(404, "[]")
		return
	}

	c.JSON(200, referrals)
}

// GetUserRewards handles GET users/:userID/rewards.
func GetUserRewards(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid user id"})
		return
	}

	rewards, err := models.GetUserRecentRewards(nil, userID, 50)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	if len(rewards) == 0 {
		c.String(404, "[]")
		return
	}

	c.JSON(200, rewards)
}

func userIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("userID"), 10, 64)
}

func referralLink(code string) string {
	base, ok := os.LookupEnv("REFERRAL_LINK_BASE")
	if !ok {
		base = "http://localhost:8080"
	}
	return base + "/?ref=" + code
}
