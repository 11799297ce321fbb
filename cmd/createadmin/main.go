package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/utils"
)

// createadmin seeds a back-office account.  The password is read from
// ADMIN_PASSWORD so it does not end up in shell history.
func main() {
	email := flag.String("email", "", "account email")
	role := flag.String("role", model.RoleAdmin, "ADMIN or STAFF")
	cost := flag.Int("cost", 12, "bcrypt cost")
	flag.Parse()

	_ = godotenv.Load()

	r := strings.ToUpper(strings.TrimSpace(*role))
	if r != model.RoleAdmin && r != model.RoleStaff {
		log.Fatalf("invalid role %q", *role)
	}
	if strings.TrimSpace(*email) == "" {
		log.Fatal("-email is required")
	}
	hash, err := utils.HashPassword(os.Getenv("ADMIN_PASSWORD"), *cost)
	if err != nil {
		log.Fatalf("ADMIN_PASSWORD: %v", err)
	}

	db, err := database.Open(config.LoadDB())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := repository.NewUserRepo(db).Create(ctx, *email, hash, r)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			log.Fatalf("%s already exists", *email)
		}
		log.Fatalf("create user: %v", err)
	}
	fmt.Printf("created %s user %d (%s)\n", r, id, *email)
}
