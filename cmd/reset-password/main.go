package main

import (
	"flag"
	"log"

	"github.com/YasinKhilji/ims-project/internal/config"
	"github.com/YasinKhilji/ims-project/internal/model"
	"github.com/YasinKhilji/ims-project/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

// Resets a user's password directly in the database. Meant for recovering a
// locked-out admin, not for routine use.
func main() {
	username := flag.String("username", "admin", "username of the account to reset")
	password := flag.String("password", "admin123", "new password")
	flag.Parse()

	cfg := config.Load()
	db := database.Connect(cfg.Database)

	var user model.User
	if err := db.Where("username = ?", *username).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", *username, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", *username)
}
