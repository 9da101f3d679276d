package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrDuplicateRequest = errors.New("follow request already sent")
	ErrRequestNotFound  = errors.New("follow request not found")
)

// FollowOutcome tells the caller which branch of the handshake ran.
type FollowOutcome int

const (
	// OutcomeFollowing means the edge was written directly (public target,
	// or the edge already existed).
	OutcomeFollowing FollowOutcome = iota
	// OutcomeRequested means the target is private and a pending request now
	// sits in the ledger.
	OutcomeRequested
)

// RequestFollow runs one follow(A,B) transition. Public targets get the edge
// immediately; private targets get a pending ledger entry unless one is
// already open, which is ErrDuplicateRequest. Following an account twice is a
// no-op, not an error.
func RequestFollow(db *gorm.DB, sender, target *User) (FollowOutcome, error) {
	if sender.ID == target.ID {
		return OutcomeFollowing, ErrSelfFollow
	}

	if !target.IsPrivate {
		err := db.Transaction(func(tx *gorm.DB) error {
			return createFollowEdge(tx, sender.ID, target.ID)
		})
		return OutcomeFollowing, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		existing, err := PendingRequest(tx, sender.ID, target.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateRequest
		}
		request := FollowRequest{
			SenderID:   sender.ID,
			ReceiverID: target.ID,
			Status:     StatusPending,
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return OutcomeRequested, err
	}
	return OutcomeRequested, nil
}

// Unfollow runs the unfollow(A,B) transition: cancel any pending request and
// drop the edge if present. Idempotent; repeating it changes nothing.
func Unfollow(db *gorm.DB, sender, target *User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sender_id = ? AND receiver_id = ? AND status = ?",
			sender.ID, target.ID, StatusPending).
			Delete(&FollowRequest{}).Error; err != nil {
			return err
		}
		return removeFollowEdge(tx, sender.ID, target.ID)
	})
}

// AcceptFollowRequest marks a pending request accepted and writes the edge in
// the same transaction. Terminal or unknown requests are ErrRequestNotFound;
// re-accepting is an error, not a no-op.
func AcceptFollowRequest(db *gorm.DB, requestID uint) (*FollowRequest, error) {
	var request FollowRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND status = ?", requestID, StatusPending).
			Take(&request).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		if err != nil {
			return err
		}
		res := tx.Model(&FollowRequest{}).
			Where("id = ? AND status = ?", request.ID, StatusPending).
			Updates(map[string]interface{}{
				"status":     StatusAccepted,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		// A concurrent resolver may have settled the request between the read
		// and the guarded update. Only the caller whose update lands wins.
		if res.RowsAffected == 0 {
			return ErrRequestNotFound
		}
		request.Status = StatusAccepted
		return createFollowEdge(tx, request.SenderID, request.ReceiverID)
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// RejectFollowRequest marks a pending request rejected. No relationship
// mutation happens on this path.
func RejectFollowRequest(db *gorm.DB, requestID uint) (*FollowRequest, error) {
	var request FollowRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND status = ?", requestID, StatusPending).
			Take(&request).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		if err != nil {
			return err
		}
		res := tx.Model(&FollowRequest{}).
			Where("id = ? AND status = ?", request.ID, StatusPending).
			Updates(map[string]interface{}{
				"status":     StatusRejected,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotFound
		}
		request.Status = StatusRejected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// createFollowEdge inserts the edge and bumps both counters. The unique pair
// index makes re-follows a clean no-op.
func createFollowEdge(tx *gorm.DB, followerID, followedID uint) error {
	follow := Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return nil
	}
	if err := tx.Model(&User{}).
		Where("id = ?", followerID).
		UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
		return err
	}
	return tx.Model(&User{}).
		Where("id = ?", followedID).
		UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
}

func removeFollowEdge(tx *gorm.DB, followerID, followedID uint) error {
	result := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return nil
	}
	if err := tx.Model(&User{}).
		Where("id = ?", followerID).
		UpdateColumn("following_count", gorm.Expr("CASE WHEN following_count > 0 THEN following_count - 1 ELSE 0 END")).Error; err != nil {
		return err
	}
	return tx.Model(&User{}).
		Where("id = ?", followedID).
		UpdateColumn("followers_count", gorm.Expr("CASE WHEN followers_count > 0 THEN followers_count - 1 ELSE 0 END")).Error
}
