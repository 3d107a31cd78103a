package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/models"
)

type UserListParams struct {
	Page     int
	PerPage  int
	Search   string
	Role     models.Role
	IsActive *bool
}

type UserUpdateInput struct {
	FullName *string
	Role     *models.Role
	IsActive *bool
	Password *string
}

func GetUserByID(db *gorm.DB, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, helpers.NewNotFoundError("User not found.")
		}
		return nil, err
	}
	return &user, nil
}

func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// RegisterUser creates an attendee account from the public signup
// endpoint.
func RegisterUser(db *gorm.DB, email, password, fullName string) (*models.User, error) {
	return CreateUserWithRole(db, email, password, fullName, models.RoleAttendee, true)
}

// CreateUserWithRole creates a user with an explicit role, for admin
// user management and startup seeding.
func CreateUserWithRole(db *gorm.DB, email, password, fullName string, role models.Role, isActive bool) (*models.User, error) {
	existing, err := GetUserByEmail(db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, helpers.NewValidationError("Email is already registered.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: string(hashed),
		FullName: fullName,
		Role:     role,
		IsActive: isActive,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser checks the credentials and returns the active user
// they belong to.
func AuthenticateUser(db *gorm.DB, email, password string) (*models.User, error) {
	user, err := GetUserByEmail(db, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, helpers.NewValidationError("Incorrect email or password.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, helpers.NewValidationError("Incorrect email or password.")
	}
	return user, nil
}

// ListUsers pages through users with optional search, role and
// active-state filters. Admin only at the HTTP layer.
func ListUsers(db *gorm.DB, params UserListParams) ([]models.User, *helpers.Pagination, error) {
	if err := helpers.ValidatePageParams(params.Page, params.PerPage); err != nil {
		return nil, nil, err
	}

	query := db.Model(&models.User{})
	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", term, term)
	}
	if params.Role != "" {
		query = query.Where("role = ?", params.Role)
	}
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}
	query = query.Order("created_at DESC")

	var users []models.User
	pagination, err := helpers.Paginate(query, params.Page, params.PerPage, &users)
	if err != nil {
		return nil, nil, err
	}
	return users, pagination, nil
}

// UpdateUser applies an admin update (role change, activation, name,
// password reset).
func UpdateUser(db *gorm.DB, userID uuid.UUID, update UserUpdateInput) (*models.User, error) {
	user, err := GetUserByID(db, userID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Role != nil {
		if !update.Role.Valid() {
			return nil, helpers.NewValidationError("Invalid role.")
		}
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
