package services

import (
	"context"

	"github.com/cride-hq/cride_backend/models"
	"gorm.io/gorm"
)

// MembershipService answers membership questions for a circle and handles
// founder creation and member removal.
type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

// admitsNewMember is the circle capacity policy. Unlimited circles always
// admit; limited circles admit while the active head count is below the
// ceiling. Callers must evaluate it inside the joining transaction.
func admitsNewMember(tx *gorm.DB, circle *models.Circle) (bool, error) {
	if !circle.IsLimited {
		return true, nil
	}

	var members int64
	if err := tx.Model(&models.Membership{}).
		Where("circle_id = ? AND is_active = ?", circle.ID, true).
		Count(&members).Error; err != nil {
		return false, err
	}
	return members < int64(circle.MembersLimit), nil
}

// CreateFounder seeds the admin membership for a freshly created circle.
func (s *MembershipService) CreateFounder(ctx context.Context, userID, circleID uint) (*models.Membership, error) {
	membership := &models.Membership{
		UserID:               userID,
		CircleID:             circleID,
		IsAdmin:              true,
		IsActive:             true,
		RemainingInvitations: models.FounderInvitations,
	}
	if err := s.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

// ActiveMember returns the user's active membership in the circle, or a
// PermissionDenied error when there is none.
func (s *MembershipService) ActiveMember(ctx context.Context, circleID, userID uint) (*models.Membership, error) {
	var membership models.Membership
	err := s.db.WithContext(ctx).
		Where("circle_id = ? AND user_id = ? AND is_active = ?", circleID, userID, true).
		First(&membership).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errPermissionDenied("not an active member of this circle")
		}
		return nil, err
	}
	return &membership, nil
}

// Members lists the circle's active members with user data preloaded.
func (s *MembershipService) Members(ctx context.Context, circleID uint) ([]models.Membership, error) {
	var memberships []models.Membership
	err := s.db.WithContext(ctx).
		Preload("User").Preload("User.Profile").
		Where("circle_id = ? AND is_active = ?", circleID, true).
		Order("created_at").
		Find(&memberships).Error
	return memberships, err
}

// Member resolves an active membership by the member's username.
func (s *MembershipService) Member(ctx context.Context, circleID uint, username string) (*models.Membership, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errNotFound("member not found")
		}
		return nil, err
	}

	var membership models.Membership
	err := s.db.WithContext(ctx).
		Preload("User").Preload("User.Profile").
		Where("circle_id = ? AND user_id = ? AND is_active = ?", circleID, user.ID, true).
		First(&membership).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errNotFound("member not found")
		}
		return nil, err
	}
	return &membership, nil
}

// Remove disables a membership. Members can leave on their own; kicking
// someone else requires circle admin rights. The row is kept so the
// member's invitation history survives.
func (s *MembershipService) Remove(ctx context.Context, circleID uint, username string, actorID uint) error {
	target, err := s.Member(ctx, circleID, username)
	if err != nil {
		return err
	}

	if target.UserID != actorID {
		actor, err := s.ActiveMember(ctx, circleID, actorID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin {
			return errPermissionDenied("only circle admins can remove other members")
		}
	}

	return s.db.WithContext(ctx).Model(&models.Membership{}).
		Where("id = ?", target.ID).
		Update("is_active", false).Error
}
