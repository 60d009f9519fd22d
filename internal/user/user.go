package user

type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Gender     string `json:"gender,omitempty"`
	ProfilePic string `json:"profilePic,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Location   string `json:"location,omitempty"`
	Onboarded  bool   `json:"isOnboarded"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ProfileUpdate is the allow-list of fields onboarding may change. Everything
// else on the record (id, email, password hash) is immutable through this path.
type ProfileUpdate struct {
	Username  string
	Gender    string
	Bio       string
	Location  string
	Onboarded bool
}
