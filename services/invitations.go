package services

import (
	"context"
	"time"

	"github.com/cride-hq/cride_backend/models"
	"github.com/cride-hq/cride_backend/utils"
	"gorm.io/gorm"
)

// maxCodeAttempts bounds the collision-retry loop. At ten characters over
// 62 symbols collisions are vanishingly rare, so hitting the cap means the
// generator is misconfigured.
const maxCodeAttempts = 100

// InvitationService owns the invitation code ledger: issuing codes,
// redeeming them into memberships, and keeping issuer quotas honest.
type InvitationService struct {
	db       *gorm.DB
	generate func() string
}

func NewInvitationService(db *gorm.DB) *InvitationService {
	return &InvitationService{
		db: db,
		generate: func() string {
			return utils.GenerateCode(utils.CodeLength, utils.CodeAlphabet)
		},
	}
}

// Issue creates a new unused invitation bound to (circle, issuer). Codes
// are unique across all circles; generation retries on collision.
func (s *InvitationService) Issue(ctx context.Context, circleID, issuerID uint) (*models.Invitation, error) {
	db := s.db.WithContext(ctx)

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := s.generate()

		var count int64
		if err := db.Model(&models.Invitation{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}

		invitation := &models.Invitation{
			Code:       code,
			IssuedByID: issuerID,
			CircleID:   circleID,
		}
		if err := db.Create(invitation).Error; err != nil {
			// Most likely a concurrent insert of the same code hit the
			// unique index first. Generate a fresh candidate.
			continue
		}
		return invitation, nil
	}

	return nil, &Error{Kind: KindExhaustedRetries, Message: "could not allocate a unique invitation code"}
}

// Outstanding returns the unused codes issued by issuer in circle.
func (s *InvitationService) Outstanding(ctx context.Context, circleID, issuerID uint) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := s.db.WithContext(ctx).
		Where("circle_id = ? AND issued_by_id = ? AND used = ?", circleID, issuerID, false).
		Order("created_at").
		Find(&invitations).Error
	return invitations, err
}

// ConsumedInvitation records who redeemed one of a member's codes.
type ConsumedInvitation struct {
	Code   string    `json:"code"`
	UsedBy string    `json:"used_by"`
	UsedAt time.Time `json:"used_at"`
}

// InvitationReport is the invitation dashboard for one membership.
type InvitationReport struct {
	Unused   []string             `json:"invitations"`
	Consumed []ConsumedInvitation `json:"used_invitations"`
}

// EnsureSupply tops up a member's outstanding codes to match their
// remaining invitation quota and returns the full dashboard. Calling it
// again without an intervening redemption changes nothing.
func (s *InvitationService) EnsureSupply(ctx context.Context, membership *models.Membership) (*InvitationReport, error) {
	outstanding, err := s.Outstanding(ctx, membership.CircleID, membership.UserID)
	if err != nil {
		return nil, err
	}

	deficit := int(membership.RemainingInvitations) - len(outstanding)
	for i := 0; i < deficit; i++ {
		invitation, err := s.Issue(ctx, membership.CircleID, membership.UserID)
		if err != nil {
			return nil, err
		}
		outstanding = append(outstanding, *invitation)
	}

	var consumed []models.Invitation
	if err := s.db.WithContext(ctx).
		Preload("UsedBy").
		Where("circle_id = ? AND issued_by_id = ? AND used = ?", membership.CircleID, membership.UserID, true).
		Order("used_at").
		Find(&consumed).Error; err != nil {
		return nil, err
	}

	report := &InvitationReport{
		Unused:   make([]string, 0, len(outstanding)),
		Consumed: make([]ConsumedInvitation, 0, len(consumed)),
	}
	for _, invitation := range outstanding {
		report.Unused = append(report.Unused, invitation.Code)
	}
	for _, invitation := range consumed {
		entry := ConsumedInvitation{Code: invitation.Code}
		if invitation.UsedBy != nil {
			entry.UsedBy = invitation.UsedBy.Username
		}
		if invitation.UsedAt != nil {
			entry.UsedAt = *invitation.UsedAt
		}
		report.Consumed = append(report.Consumed, entry)
	}
	return report, nil
}

// Redeem consumes an unused invitation code and creates the joining
// user's membership. The whole operation is one transaction: either the
// code is marked used and the membership exists, or neither happened.
func (s *InvitationService) Redeem(ctx context.Context, code string, circleID, userID uint) (*models.Membership, error) {
	var membership *models.Membership

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var circle models.Circle
		if err := tx.First(&circle, circleID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errNotFound("circle not found")
			}
			return err
		}

		// Touching the circle row serializes concurrent joins against the
		// capacity ceiling: Postgres holds the row lock until commit.
		if err := tx.Model(&models.Circle{}).Where("id = ?", circleID).
			Update("updated_at", time.Now()).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Membership{}).
			Where("user_id = ? AND circle_id = ?", userID, circleID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errConflict("user is already a circle's member")
		}

		var invitation models.Invitation
		if err := tx.Where("code = ? AND circle_id = ? AND used = ?", code, circleID, false).
			First(&invitation).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errNotFound("invalid invitation code")
			}
			return err
		}

		admits, err := admitsNewMember(tx, &circle)
		if err != nil {
			return err
		}
		if !admits {
			return errCapacityExceeded("circle doesn't have room for more members")
		}

		now := time.Now()
		result := tx.Model(&models.Invitation{}).
			Where("id = ? AND used = ?", invitation.ID, false).
			Updates(map[string]interface{}{
				"used":       true,
				"used_by_id": userID,
				"used_at":    now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// A concurrent redeem won the race for this code.
			return errNotFound("invalid invitation code")
		}

		membership = &models.Membership{
			UserID:      userID,
			CircleID:    circleID,
			IsActive:    true,
			InvitedByID: &invitation.IssuedByID,
		}
		if err := tx.Create(membership).Error; err != nil {
			return err
		}

		// Issuer accounting: one invitation spent, one fewer remaining.
		return tx.Model(&models.Membership{}).
			Where("user_id = ? AND circle_id = ?", invitation.IssuedByID, circleID).
			Updates(map[string]interface{}{
				"used_invitations":      gorm.Expr("used_invitations + 1"),
				"remaining_invitations": gorm.Expr("CASE WHEN remaining_invitations > 0 THEN remaining_invitations - 1 ELSE 0 END"),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}
