package auth

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"golang.org/x/crypto/bcrypt"

	"chat-app-backend/internal/user"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// IdentitySyncer mirrors local profile data into the chat provider. Failures
// are logged and swallowed: the provider is a side channel, never a reason to
// fail signup or onboarding.
type IdentitySyncer interface {
	UpsertUser(id, name, image string) error
}

type Service struct {
	repo user.Repository
	sync IdentitySyncer
}

func NewService(repo user.Repository, sync IdentitySyncer) *Service {
	return &Service{repo: repo, sync: sync}
}

func (s *Service) Signup(username, email, password, gender string) (user.User, error) {
	if _, err := s.repo.GetByEmail(email); err == nil {
		return user.User{}, user.ErrEmailExists
	} else if err != user.ErrNotFound {
		return user.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, err
	}

	created, err := s.repo.Create(user.User{
		Username:   username,
		Email:      email,
		Password:   string(hashed),
		Gender:     gender,
		ProfilePic: randomAvatar(gender),
	})
	if err != nil {
		return user.User{}, err
	}

	s.trySync(created)
	return created, nil
}

func (s *Service) Login(email, password string) (user.User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return user.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Onboard(id string, update user.ProfileUpdate) (user.User, error) {
	update.Onboarded = true
	updated, err := s.repo.UpdateProfile(id, update)
	if err != nil {
		return user.User{}, err
	}

	s.trySync(updated)
	return updated, nil
}

func (s *Service) GetByID(id string) (user.User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) trySync(u user.User) {
	if err := s.sync.UpsertUser(u.ID, u.Username, u.ProfilePic); err != nil {
		log.Printf("chat identity sync failed for user %s: %v", u.ID, err)
		return
	}
	log.Printf("chat identity synced for user %s", u.Username)
}

func randomAvatar(gender string) string {
	idx := rand.Intn(99) + 1
	return fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", gender, idx)
}
