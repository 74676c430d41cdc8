package services

import (
	"errors"

	"classhub/backend/apperrors"
	"classhub/backend/config"
	"classhub/backend/models"
	"classhub/backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
// Контроллер отображает её в 401, не раскрывая, что именно не совпало.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// Register создает пользователя. Роль фиксируется навсегда: ни одна
// операция профиля её не меняет.
func (s *AuthService) Register(in RegisterInput) (models.User, string, error) {
	if !models.ValidRole(in.Role) {
		return models.User{}, "", apperrors.Validation("role must be organizer or participant")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         in.Role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return models.User{}, "", apperrors.Conflict("username or email already taken")
		}
		return models.User{}, "", err
	}

	token, err := utils.GenerateJWTToken(user.ID, s.cfg)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(username, password string) (models.User, string, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateJWTToken(user.ID, s.cfg)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

type ProfileInput struct {
	Email     string
	FirstName string
	LastName  string
}

// UpdateProfile меняет контактные поля. Username и Role иммутабельны.
func (s *AuthService) UpdateProfile(actor models.User, in ProfileInput) (models.User, error) {
	updates := map[string]interface{}{}
	if in.Email != "" {
		updates["email"] = in.Email
	}
	if in.FirstName != "" {
		updates["first_name"] = in.FirstName
	}
	if in.LastName != "" {
		updates["last_name"] = in.LastName
	}

	if len(updates) > 0 {
		if err := s.db.Model(&actor).Updates(updates).Error; err != nil {
			if isDuplicate(err) {
				return models.User{}, apperrors.Conflict("email already taken")
			}
			return models.User{}, err
		}
	}

	var user models.User
	if err := s.db.First(&user, actor.ID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}
