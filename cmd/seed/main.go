package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Seeds an admin and a demo citizen with a couple of sample records so a fresh
// environment has something to browse.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	adminID := upsertUser(db, "admin", getenvDefault("SEED_ADMIN_EMAIL", "admin@ireporter.example"),
		getenvDefault("SEED_ADMIN_PASSWORD", "Admin1234!"), "admin")
	userID := upsertUser(db, "demo", getenvDefault("SEED_USER_EMAIL", "demo@ireporter.example"),
		getenvDefault("SEED_USER_PASSWORD", "Demo1234!"), "user")

	seedRecord(db, userID, "Bribery at checkpoint", "Officers demanding payment to pass the checkpoint.", "Lagos", "red-flag")
	seedRecord(db, userID, "Road damage near school", "Deep potholes making the school road unsafe.", "Nairobi", "intervention")

	log.Printf("seeded admin=%s user=%s", adminID, userID)
}

func upsertUser(db *sql.DB, username, email, password, role string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			password = EXCLUDED.password,
			role = EXCLUDED.role,
			updated_at = now()
		RETURNING id
	`, username, email, string(hash), role).Scan(&id)
	if err != nil {
		log.Fatalf("failed to upsert user %s: %v", email, err)
	}
	return id
}

func seedRecord(db *sql.DB, ownerID, title, description, location, recordType string) {
	_, err := db.Exec(`
		INSERT INTO records (id, owner_id, title, description, location, record_type, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, 'draft')
		ON CONFLICT DO NOTHING
	`, ownerID, title, description, location, recordType)
	if err != nil {
		log.Fatalf("failed to seed record %q: %v", title, err)
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
