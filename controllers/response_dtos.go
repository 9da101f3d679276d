package controllers

// UserDTO is the public shape of a user profile. Followers and Following are
// public ids derived from the relationship edge table.
type UserDTO struct {
	ID              string   `json:"id"`
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone,omitempty"`
	BirthDate       string   `json:"birth_date,omitempty"`
	ProfileImageURL string   `json:"profile_image_url,omitempty"`
	PrivateAccount  bool     `json:"private_account"`
	Followers       []string `json:"followers"`
	Following       []string `json:"following"`
}

// FollowRequestDTO is the API-visible follow-request record, with sender and
// receiver display fields denormalized for list screens.
type FollowRequestDTO struct {
	ID                   string `json:"id"`
	SenderID             string `json:"sender_id"`
	ReceiverID           string `json:"receiver_id"`
	Status               string `json:"status"`
	CreatedAt            string `json:"created_at"`
	SenderUsername       string `json:"senderUsername,omitempty"`
	SenderProfileImage   string `json:"senderProfileImage,omitempty"`
	ReceiverUsername     string `json:"receiverUsername,omitempty"`
	ReceiverProfileImage string `json:"receiverProfileImage,omitempty"`
}

// PostDTO decorates a post with its likes (liker public ids) and comments.
type PostDTO struct {
	ID             string       `json:"id"`
	AuthorID       string       `json:"author_id"`
	AuthorUsername string       `json:"author_username"`
	Content        string       `json:"content"`
	ImageURL       string       `json:"image_url,omitempty"`
	Location       string       `json:"location,omitempty"`
	Likes          []string     `json:"likes"`
	Comments       []CommentDTO `json:"comments"`
	CreatedAt      string       `json:"created_at"`
}

type CommentDTO struct {
	ID             uint   `json:"id"`
	AuthorUsername string `json:"author_username"`
	Body           string `json:"body"`
	CreatedAt      string `json:"created_at"`
}

// RelationshipDTO reports the edge state between viewer and target in both
// directions, plus any open handshake.
type RelationshipDTO struct {
	Following  bool   `json:"following"`
	FollowedBy bool   `json:"followed_by"`
	Mutual     bool   `json:"mutual"`
	Pending    bool   `json:"pending"`
	RequestID  string `json:"request_id,omitempty"`
}
