package controllers

import (
	"time"

	"Linkup/models"

	"gorm.io/gorm"
)

const apiTimeFormat = time.RFC3339

func userToResponse(db *gorm.DB, user *models.User) (UserDTO, error) {
	followers, err := models.FollowerPublicIDs(db, user.ID)
	if err != nil {
		return UserDTO{}, err
	}
	following, err := models.FollowingPublicIDs(db, user.ID)
	if err != nil {
		return UserDTO{}, err
	}
	return UserDTO{
		ID:              user.PublicID,
		Username:        user.Username,
		Email:           user.Email,
		Phone:           user.Phone,
		BirthDate:       user.BirthDate,
		ProfileImageURL: user.ProfileImageURL,
		PrivateAccount:  user.IsPrivate,
		Followers:       followers,
		Following:       following,
	}, nil
}

func usersToResponse(db *gorm.DB, users []models.User) ([]UserDTO, error) {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		dto, err := userToResponse(db, &users[i])
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

// requestToResponse denormalizes the sender/receiver display fields. The
// users map must be keyed by internal id and contain both parties.
func requestToResponse(request *models.FollowRequest, users map[uint]models.User) FollowRequestDTO {
	dto := FollowRequestDTO{
		ID:        request.PublicID,
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt.UTC().Format(apiTimeFormat),
	}
	if sender, ok := users[request.SenderID]; ok {
		dto.SenderID = sender.PublicID
		dto.SenderUsername = sender.Username
		dto.SenderProfileImage = sender.ProfileImageURL
	}
	if receiver, ok := users[request.ReceiverID]; ok {
		dto.ReceiverID = receiver.PublicID
		dto.ReceiverUsername = receiver.Username
		dto.ReceiverProfileImage = receiver.ProfileImageURL
	}
	return dto
}

// requestsToResponse loads every referenced user once, then maps the batch.
func requestsToResponse(db *gorm.DB, requests []models.FollowRequest) ([]FollowRequestDTO, error) {
	if len(requests) == 0 {
		return []FollowRequestDTO{}, nil
	}
	idSet := make(map[uint]struct{}, len(requests)*2)
	for i := range requests {
		idSet[requests[i].SenderID] = struct{}{}
		idSet[requests[i].ReceiverID] = struct{}{}
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	userMap := make(map[uint]models.User, len(users))
	for i := range users {
		userMap[users[i].ID] = users[i]
	}

	out := make([]FollowRequestDTO, 0, len(requests))
	for i := range requests {
		out = append(out, requestToResponse(&requests[i], userMap))
	}
	return out, nil
}

func postToResponse(db *gorm.DB, post *models.Post, authorPublicID string) (PostDTO, error) {
	likes, err := models.LikerPublicIDs(db, post.ID)
	if err != nil {
		return PostDTO{}, err
	}
	comments, err := models.FindCommentsByPost(db, post.ID)
	if err != nil {
		return PostDTO{}, err
	}
	commentDTOs := make([]CommentDTO, 0, len(comments))
	for i := range comments {
		commentDTOs = append(commentDTOs, commentToResponse(&comments[i]))
	}
	return PostDTO{
		ID:             post.PublicID,
		AuthorID:       authorPublicID,
		AuthorUsername: post.AuthorUsername,
		Content:        post.Content,
		ImageURL:       post.ImageURL,
		Location:       post.Location,
		Likes:          likes,
		Comments:       commentDTOs,
		CreatedAt:      post.CreatedAt.UTC().Format(apiTimeFormat),
	}, nil
}

func commentToResponse(comment *models.Comment) CommentDTO {
	return CommentDTO{
		ID:             comment.ID,
		AuthorUsername: comment.AuthorUsername,
		Body:           comment.Body,
		CreatedAt:      comment.CreatedAt.UTC().Format(apiTimeFormat),
	}
}
