// Package services holds the core operations behind the HTTP shell.
// Every mutating method takes the acting user explicitly; nothing in
// this package reads session state or logs.
package services

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gustavosampaioo/statusrotas/internal/core"
	"github.com/gustavosampaioo/statusrotas/internal/models"
)

// MinPasswordLength is the registration password policy.
const MinPasswordLength = 4

// AuthService authenticates users and manages accounts. User rows are
// soft-deleted only (Active cleared) so audit stamps keep resolving.
type AuthService struct {
	db *gorm.DB
	// bootstrapUsername is the reserved seeded admin; it can never be
	// deactivated.
	bootstrapUsername string
}

func NewAuthService(db *gorm.DB, bootstrapUsername string) *AuthService {
	return &AuthService{db: db, bootstrapUsername: bootstrapUsername}
}

// IsAdmin reports whether a user carries the admin role.
func IsAdmin(u *models.User) bool {
	return u != nil && u.Role == models.RoleAdmin
}

// requireAdmin gates admin-only mutations.
func requireAdmin(actor *models.User, action string) error {
	if !IsAdmin(actor) {
		return &core.ForbiddenError{Action: action}
	}
	return nil
}

// requireActor gates operations open to any authenticated user.
func requireActor(actor *models.User, action string) error {
	if actor == nil {
		return &core.ForbiddenError{Action: action}
	}
	return nil
}

// Authenticate looks up an active user by username and compares the
// password digest. Unknown username, deactivated account and wrong
// password all return the same InvalidCredentialsError so the caller
// cannot tell them apart.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &core.InvalidCredentialsError{}
		}
		return nil, err
	}
	if !user.Active {
		return nil, &core.InvalidCredentialsError{}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, &core.InvalidCredentialsError{}
	}
	return &user, nil
}

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username   string
	Password   string
	FullName   string
	EmployeeID string
	Role       string
}

// Register creates a new account. Admin only. Username and employee ID
// must be unique across active and deactivated users alike; a retired
// name stays reserved.
func (s *AuthService) Register(actor *models.User, in RegisterInput) (*models.User, error) {
	if err := requireAdmin(actor, "register users"); err != nil {
		return nil, err
	}

	in.Username = strings.TrimSpace(in.Username)
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	if in.Username == "" {
		return nil, &core.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if in.EmployeeID == "" {
		return nil, &core.ValidationError{Field: "employee_id", Reason: "must not be empty"}
	}
	if len(in.Password) < MinPasswordLength {
		return nil, &core.WeakPasswordError{MinLength: MinPasswordLength}
	}

	role, err := normalizeRole(in.Role)
	if err != nil {
		return nil, err
	}

	// Pre-check both unique columns so SQLite and Postgres report the
	// same typed error; the pq 23505 branch below is the backstop for
	// concurrent inserts.
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &core.DuplicateError{Field: "username", Value: in.Username}
	}
	if err := s.db.Model(&models.User{}).Where("employee_id = ?", in.EmployeeID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &core.DuplicateError{Field: "employee_id", Value: in.EmployeeID}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:   in.Username,
		Password:   string(hash),
		FullName:   in.FullName,
		EmployeeID: in.EmployeeID,
		Role:       role,
		Active:     true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, duplicateFromConstraint(pgErr.Constraint, in)
		}
		return nil, err
	}
	return &user, nil
}

// duplicateFromConstraint attributes a Postgres unique violation to the
// column whose index fired.
func duplicateFromConstraint(constraint string, in RegisterInput) *core.DuplicateError {
	if strings.Contains(constraint, "employee_id") {
		return &core.DuplicateError{Field: "employee_id", Value: in.EmployeeID}
	}
	return &core.DuplicateError{Field: "username", Value: in.Username}
}

// Deactivate soft-deletes an account. Admin only. The bootstrap admin
// is refused unconditionally; it must always remain active.
func (s *AuthService) Deactivate(actor *models.User, userID uint) error {
	if err := requireAdmin(actor, "deactivate users"); err != nil {
		return err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &core.NotFoundError{Entity: "user", ID: userID}
		}
		return err
	}
	if user.Username == s.bootstrapUsername {
		return &core.ForbiddenError{Action: "deactivate the bootstrap admin"}
	}

	return s.db.Model(&user).Update("active", false).Error
}

// ListUsers returns every account, active or not. Admin only.
func (s *AuthService) ListUsers(actor *models.User) ([]models.User, error) {
	if err := requireAdmin(actor, "list users"); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one account by id, active or not.
func (s *AuthService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &core.NotFoundError{Entity: "user", ID: userID}
		}
		return nil, err
	}
	return &user, nil
}

func normalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = models.RoleUser
	}
	switch role {
	case models.RoleAdmin, models.RoleUser:
		return role, nil
	default:
		return "", &core.ValidationError{Field: "role", Reason: "must be admin or user"}
	}
}
