package controllers

import (
	"net/http"

	"github.com/cride-hq/cride_backend/database"
	"github.com/cride-hq/cride_backend/services"
	"github.com/cride-hq/cride_backend/websocket"
	"github.com/gin-gonic/gin"
)

type JoinCircleInput struct {
	InvitationCode string `json:"invitation_code" binding:"required,min=8,max=50"`
}

// GetMembers godoc
// @Summary List a circle's members
// @Description Returns the circle's active members; caller must be an active member
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Circle slug"
// @Success 200 {object} map[string]interface{} "List of members"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Circle not found"
// @Router /api/circles/{slug}/members [get]
func GetMembers(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	circle, ok := findCircle(c)
	if !ok {
		return
	}

	memberships := services.NewMembershipService(database.DB)
	if _, err := memberships.ActiveMember(c.Request.Context(), circle.ID, userID); err != nil {
		respondError(c, err)
		return
	}

	members, err := memberships.Members(c.Request.Context(), circle.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// GetMember godoc
// @Summary Get one circle member
// @Description Returns an active member of the circle by username
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Circle slug"
// @Param username path string true "Member username"
// @Success 200 {object} map[string]interface{} "Member detail"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/circles/{slug}/members/{username} [get]
func GetMember(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	circle, ok := findCircle(c)
	if !ok {
		return
	}

	memberships := services.NewMembershipService(database.DB)
	if _, err := memberships.ActiveMember(c.Request.Context(), circle.ID, userID); err != nil {
		respondError(c, err)
		return
	}

	member, err := memberships.Member(c.Request.Context(), circle.ID, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

// JoinCircle godoc
// @Summary Join a circle with an invitation code
// @Description Redeems an unused invitation code and creates the membership
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Circle slug"
// @Param invitation body JoinCircleInput true "Invitation code"
// @Success 201 {object} map[string]interface{} "Joined the circle"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invalid invitation code"
// @Failure 409 {object} map[string]string "Already a member or circle is full"
// @Router /api/circles/{slug}/members [post]
func JoinCircle(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	circle, ok := findCircle(c)
	if !ok {
		return
	}

	var input JoinCircleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitations := services.NewInvitationService(database.DB)
	membership, err := invitations.Redeem(c.Request.Context(), input.InvitationCode, circle.ID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	websocket.BroadcastToCircle(circle.ID, "member_joined", membership)

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Welcome to the circle",
		"membership": membership,
	})
}

// RemoveMember godoc
// @Summary Remove a member from a circle
// @Description Disables a membership; members can leave, admins can kick
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Circle slug"
// @Param username path string true "Member username"
// @Success 200 {object} map[string]string "Member removed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/circles/{slug}/members/{username} [delete]
func RemoveMember(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	circle, ok := findCircle(c)
	if !ok {
		return
	}

	memberships := services.NewMembershipService(database.DB)
	if err := memberships.Remove(c.Request.Context(), circle.ID, c.Param("username"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed from circle"})
}

// GetMemberInvitations godoc
// @Summary Invitation dashboard for a member
// @Description Tops the member's unused codes up to their remaining quota and returns them with the consumed breakdown
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Circle slug"
// @Param username path string true "Member username"
// @Success 200 {object} map[string]interface{} "Invitation dashboard"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/circles/{slug}/members/{username}/invitations [get]
func GetMemberInvitations(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	circle, ok := findCircle(c)
	if !ok {
		return
	}

	memberships := services.NewMembershipService(database.DB)
	member, err := memberships.Member(c.Request.Context(), circle.ID, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	// Members only see their own invitation codes
	if member.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only view your own invitations"})
		return
	}

	invitations := services.NewInvitationService(database.DB)
	report, err := invitations.EnsureSupply(c.Request.Context(), member)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"used_invitations":      report.Consumed,
		"invitations":           report.Unused,
		"remaining_invitations": member.RemainingInvitations,
	})
}
