package database

import (
	"context"
	"errors"
	"fmt"

	"taskify/internal/models"
	"taskify/internal/util"

	"gorm.io/gorm"
)

// Sample account created by Seed for trying the API.
const (
	SampleUsername = "testuser"
	SampleEmail    = "test@example.com"
	SamplePassword = "password123"
)

// DefaultLabels are inserted by Seed when missing.
var DefaultLabels = []models.Label{
	{Name: "Bug", Color: "#E53E3E"},
	{Name: "Feature", Color: "#38A169"},
	{Name: "Enhancement", Color: "#3182CE"},
	{Name: "Documentation", Color: "#DD6B20"},
	{Name: "Question", Color: "#805AD5"},
}

// SeedResult reports what Seed inserted.
type SeedResult struct {
	LabelsCreated     int  `json:"labels_created"`
	SampleUserCreated bool `json:"sample_user_created"`
}

// Seed inserts the default labels and the sample user. Running it again
// is a no-op.
func Seed(ctx context.Context, db *gorm.DB, bcryptCost int) (SeedResult, error) {
	var res SeedResult
	tx := db.WithContext(ctx)

	for _, l := range DefaultLabels {
		var existing models.Label
		err := tx.Where("name = ?", l.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return res, fmt.Errorf("query label %q: %w", l.Name, err)
		}
		label := l
		if err := tx.Create(&label).Error; err != nil {
			return res, fmt.Errorf("create label %q: %w", l.Name, err)
		}
		res.LabelsCreated++
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("username = ?", SampleUsername).Count(&count).Error; err != nil {
		return res, fmt.Errorf("query sample user: %w", err)
	}
	if count > 0 {
		return res, nil
	}

	hash, err := util.HashPassword(SamplePassword, bcryptCost)
	if err != nil {
		return res, fmt.Errorf("seed sample user: %w", err)
	}
	user := models.User{
		Username:     SampleUsername,
		Email:        SampleEmail,
		PasswordHash: hash,
	}
	if err := tx.Create(&user).Error; err != nil {
		return res, fmt.Errorf("create sample user: %w", err)
	}
	res.SampleUserCreated = true
	return res, nil
}
