package models

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/twinj/uuid"
	"gorm.io/gorm"
)

// RequestStatus is the lifecycle state of a follow request. Accepted and
// rejected are terminal; a pending request can also disappear entirely when
// the sender unfollows before it is resolved.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status can no longer change.
func (s RequestStatus) Terminal() bool {
	switch s {
	case StatusAccepted, StatusRejected:
		return true
	case StatusPending:
		return false
	}
	return false
}

// FollowRequest records one handshake attempt against a private account.
// At most one pending row exists per (sender, receiver) pair; the workflow in
// follow_workflow.go enforces that inside its transactions.
type FollowRequest struct {
	ID         uint          `gorm:"primary_key;autoIncrement" json:"-"`
	PublicID   string        `gorm:"size:36;not null;uniqueIndex;column:public_id" json:"id"`
	SenderID   uint          `gorm:"not null;index" json:"-"`
	ReceiverID uint          `gorm:"not null;index" json:"-"`
	Status     RequestStatus `gorm:"size:16;not null;default:'pending'" json:"status"`
	CreatedAt  time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (fr *FollowRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(fr.PublicID) == "" {
		fr.PublicID = uuid.NewV4().String()
	}
	return nil
}

// PendingRequest returns the open request from sender to receiver, or nil.
func PendingRequest(db *gorm.DB, senderID, receiverID uint) (*FollowRequest, error) {
	var request FollowRequest
	err := db.Where("sender_id = ? AND receiver_id = ? AND status = ?",
		senderID, receiverID, StatusPending).Take(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// FindRequestByIdentifier resolves a request by its public id, falling back to
// the numeric primary key for older clients.
func FindRequestByIdentifier(db *gorm.DB, identifier string) (*FollowRequest, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var request FollowRequest
	err := db.Where("public_id = ?", trimmed).Take(&request).Error
	if err == nil {
		return &request, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	numericID, parseErr := strconv.ParseUint(trimmed, 10, 32)
	if parseErr != nil {
		return nil, gorm.ErrRecordNotFound
	}
	if err := db.First(&request, uint(numericID)).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ReceivedPending lists open requests addressed to the user, newest first.
func ReceivedPending(db *gorm.DB, receiverID uint) ([]FollowRequest, error) {
	var requests []FollowRequest
	err := db.Where("receiver_id = ? AND status = ?", receiverID, StatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// SentPending lists open requests the user has sent, newest first.
func SentPending(db *gorm.DB, senderID uint) ([]FollowRequest, error) {
	var requests []FollowRequest
	err := db.Where("sender_id = ? AND status = ?", senderID, StatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}
