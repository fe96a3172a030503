package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmark/internal/friends"
	"tripmark/internal/models/request_models"
	"tripmark/pkg/utils"
)

type FriendController struct {
	friends *friends.Service
}

func NewFriendController(friends *friends.Service) *FriendController {
	return &FriendController{friends: friends}
}

func (f *FriendController) ListFriends(c *gin.Context) {
	list, err := f.friends.Friends(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, list, "Friends fetched")
}

func (f *FriendController) SearchUsers(c *gin.Context) {
	results, err := f.friends.SearchUsers(c.Request.Context(), c.Query("name"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, results, "Users fetched")
}

func (f *FriendController) ListReceivedRequests(c *gin.Context) {
	requests, err := f.friends.ReceivedRequests(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, requests, "Friend requests fetched")
}

func (f *FriendController) SendRequest(c *gin.Context) {
	var req request_models.SendFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := f.friends.SendRequest(c.Request.Context(), req.UserID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Friend request sent")
}

func (f *FriendController) AcceptRequest(c *gin.Context) {
	if err := f.friends.AcceptRequest(c.Request.Context(), c.Param("userId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Friend request accepted")
}

func (f *FriendController) RejectRequest(c *gin.Context) {
	if err := f.friends.RejectRequest(c.Request.Context(), c.Param("userId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Friend request rejected")
}

func (f *FriendController) RemoveFriend(c *gin.Context) {
	if err := f.friends.RemoveFriend(c.Request.Context(), c.Param("userId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Friend removed")
}
