package models

import (
	"errors"
	"html"
	"strings"
	"time"

	"Linkup/security"

	"github.com/badoux/checkmail"
	"github.com/twinj/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uint      `gorm:"primary_key;autoIncrement" json:"-"`
	PublicID        string    `gorm:"size:36;not null;uniqueIndex;column:public_id" json:"id"`
	Username        string    `gorm:"size:255;not null;unique" json:"username"`
	Email           string    `gorm:"size:100;not null;unique" json:"email"`
	Password        string    `gorm:"size:255;not null" json:"-"`
	Phone           string    `gorm:"size:32" json:"phone,omitempty"`
	BirthDate       string    `gorm:"size:32" json:"birth_date,omitempty"`
	ProfileImageURL string    `gorm:"size:255" json:"profile_image_url,omitempty"`
	IsAdmin         bool      `gorm:"not null;default:false" json:"-"`
	IsPrivate       bool      `gorm:"not null;default:false" json:"private_account"`
	FollowersCount  int64     `gorm:"not null;default:0" json:"followers_count"`
	FollowingCount  int64     `gorm:"not null;default:0" json:"following_count"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (u *User) HashPassword() error {
	hashedPassword, err := security.Hash(u.Password)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	// Hooks run on create and on full saves; password updates go through
	// HashPassword explicitly, so only hash when the value is still plaintext.
	if u.Password != "" && !strings.HasPrefix(u.Password, "$2") {
		return u.HashPassword()
	}
	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(u.PublicID) == "" {
		u.PublicID = uuid.NewV4().String()
	}
	return nil
}

func (u *User) Prepare() {
	u.Username = html.EscapeString(strings.ToLower(strings.TrimSpace(u.Username)))
	u.Email = html.EscapeString(strings.ToLower(strings.TrimSpace(u.Email)))
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
}

func (u *User) Validate(action string) map[string]string {
	var errorMessages = make(map[string]string)

	switch strings.ToLower(action) {
	case "update":
		if u.Email != "" {
			if err := checkmail.ValidateFormat(u.Email); err != nil {
				errorMessages["Invalid_email"] = "Invalid Email"
			}
		}
	case "login":
		if u.Password == "" {
			errorMessages["Required_password"] = "Required Password"
		}
		if u.Username == "" {
			errorMessages["Required_username"] = "Required Username"
		}
	case "forgotpassword":
		if u.Email == "" {
			errorMessages["Required_email"] = "Required Email"
		}
		if u.Email != "" {
			if err := checkmail.ValidateFormat(u.Email); err != nil {
				errorMessages["Invalid_email"] = "Invalid Email"
			}
		}
	default:
		if u.Username == "" {
			errorMessages["Required_username"] = "Required Username"
		}
		if u.Password == "" {
			errorMessages["Required_password"] = "Required Password"
		}
		if len(u.Password) > 0 && len(u.Password) < 6 {
			errorMessages["Invalid_password"] = "Password should be at least 6 characters"
		}
		if u.Email == "" {
			errorMessages["Required_email"] = "Required Email"
		}
		if u.Email != "" {
			if err := checkmail.ValidateFormat(u.Email); err != nil {
				errorMessages["Invalid_email"] = "Invalid Email"
			}
		}
	}
	return errorMessages
}

func (u *User) SaveUser(db *gorm.DB) (*User, error) {
	if err := db.Create(&u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) FindAllUsers(db *gorm.DB) (*[]User, error) {
	var users []User
	if err := db.Limit(1000).Find(&users).Error; err != nil {
		return nil, err
	}
	return &users, nil
}

func (u *User) FindUserByID(db *gorm.DB, uid uint) (*User, error) {
	var user User
	err := db.Where("id = ?", uid).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("User not found")
		}
		return nil, err
	}
	return &user, nil
}

func (u *User) SearchUsersByUsername(db *gorm.DB, query string) (*[]User, error) {
	var users []User
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	err := db.Where("lower(username) LIKE ?", pattern).Limit(20).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return &users, nil
}

func (u *User) UpdateAUser(db *gorm.DB, uid uint) (*User, error) {
	columns := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if u.Email != "" {
		columns["email"] = u.Email
	}
	if u.Phone != "" {
		columns["phone"] = u.Phone
	}
	if u.BirthDate != "" {
		columns["birth_date"] = u.BirthDate
	}
	if u.ProfileImageURL != "" {
		columns["profile_image_url"] = u.ProfileImageURL
	}
	columns["is_private"] = u.IsPrivate
	if u.Password != "" {
		if err := u.HashPassword(); err != nil {
			return nil, err
		}
		columns["password"] = u.Password
	}

	if err := db.Model(&User{}).Where("id = ?", uid).Updates(columns).Error; err != nil {
		return nil, err
	}
	if err := db.Where("id = ?", uid).Take(&u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) UpdatePassword(db *gorm.DB) error {
	if err := u.HashPassword(); err != nil {
		return err
	}
	return db.Model(&User{}).Where("email = ?", u.Email).Updates(map[string]interface{}{
		"password":   u.Password,
		"updated_at": time.Now(),
	}).Error
}
