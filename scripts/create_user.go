package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
)

// Creates a staff account from the command line. Useful for seeding
// the first admin on a fresh deployment:
//
//	go run ./scripts -email admin@example.org -name "Jo Admin" -role ADMIN
func main() {
	email := flag.String("email", "", "email address (required)")
	name := flag.String("name", "", "full name (required)")
	role := flag.String("role", models.RoleVolunteer, "ADMIN or VOLUNTEER")
	flag.Parse()

	if *email == "" || *name == "" {
		flag.Usage()
		os.Exit(1)
	}

	r := strings.ToUpper(strings.TrimSpace(*role))
	if r != models.RoleAdmin && r != models.RoleVolunteer {
		fmt.Fprintln(os.Stderr, "role must be ADMIN or VOLUNTEER")
		os.Exit(1)
	}

	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to read password:", err)
		os.Exit(1)
	}
	password = strings.TrimRight(password, "\r\n")
	if len(password) < 8 {
		fmt.Fprintln(os.Stderr, "password must be at least 8 characters")
		os.Exit(1)
	}

	if err := utils.InitLogger(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	if _, err := config.LoadConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	config.InitDB()

	var existing models.User
	if err := config.DB.Where("email = ?", *email).First(&existing).Error; err == nil {
		fmt.Fprintf(os.Stderr, "a user with email %s already exists\n", *email)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to hash password:", err)
		os.Exit(1)
	}

	user := models.User{
		Email:        strings.TrimSpace(*email),
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(*name),
		Role:         r,
		Active:       true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		fmt.Fprintln(os.Stderr, "failed to create user:", err)
		os.Exit(1)
	}

	fmt.Printf("created %s user %s (id %d)\n", user.Role, user.Email, user.ID)
}
