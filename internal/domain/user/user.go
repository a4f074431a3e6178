package user

// Role ユーザーの権限ロール
type Role string

const (
	// RoleUser 一般ユーザー
	RoleUser Role = "user"
	// RoleAdmin 管理者
	RoleAdmin Role = "admin"
)

// String 文字列表現を返す
func (r Role) String() string {
	return string(r)
}

// User ユーザーエンティティ（読み取り専用）
// ユーザーの作成・更新は認証コラボレーターの責務で、本サービスは参照のみ行う
type User struct {
	userID    string
	email     string
	username  string
	role      Role
	discordID *string
}

// NewUser 新しいUserエンティティを作成
func NewUser(userID, email, username string, role Role, discordID *string) (*User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if role != RoleUser && role != RoleAdmin {
		role = RoleUser
	}
	return &User{
		userID:    userID,
		email:     email,
		username:  username,
		role:      role,
		discordID: discordID,
	}, nil
}

// UserID ユーザーIDを返す
func (u *User) UserID() string {
	return u.userID
}

// Email メールアドレスを返す
func (u *User) Email() string {
	return u.email
}

// Username ユーザー名を返す
func (u *User) Username() string {
	return u.username
}

// Role ロールを返す
func (u *User) Role() Role {
	return u.role
}

// DiscordID 連携済みDiscord IDを返す（未連携ならnil）
func (u *User) DiscordID() *string {
	return u.discordID
}

// HasDiscordLink Discordアカウントが連携済みかどうかを返す
func (u *User) HasDiscordLink() bool {
	return u.discordID != nil && *u.discordID != ""
}
