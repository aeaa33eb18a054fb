package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/patientpal/patientpal-server/config"
	"github.com/patientpal/patientpal-server/pkg/helpers"
)

// Seeds a demo patient, caregiver and admin account plus one notice so
// a fresh environment is immediately usable.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	patientID := upsertMember(db, "demoPatient", "patient@example.com", hash, "PATIENT")
	caregiverID := upsertMember(db, "demoCaregiver", "caregiver@example.com", hash, "CAREGIVER")
	adminID := upsertMember(db, "demoAdmin", "admin@example.com", hash, "ADMIN")
	fmt.Printf("members seeded: patient=%s caregiver=%s admin=%s password=%s\n", patientID, caregiverID, adminID, password)

	if _, err := db.Exec(`
		INSERT INTO patients (member_id, name, resident_registration_number, street, address_detail, zip, nok_name, nok_contact, patient_significant, care_requirements)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (member_id) DO NOTHING
	`, patientID, "Kim Minjun", "450101-1234567", "12 Teheran-ro", "Apt 301", "06234",
		"Kim Jiwoo", "010-1234-5678", "Recovering from hip surgery", "Daily mobility assistance"); err != nil {
		log.Fatalf("failed to seed patient profile: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO caregivers (member_id, name, resident_registration_number, contact, gender, street, address_detail, zip, rating, experience_years, specialization, caregiver_significant)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (member_id) DO NOTHING
	`, caregiverID, "Lee Seoyeon", "800505-2345678", "010-9876-5432", "FEMALE",
		"45 Gangnam-daero", "", "06022", 4.8, 12, "Post-operative care", "Certified nursing assistant"); err != nil {
		log.Fatalf("failed to seed caregiver profile: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO posts (title, content, post_type)
		SELECT 'Welcome to PatientPal', 'Service opening notice.', 'NOTICE'
		WHERE NOT EXISTS (SELECT 1 FROM posts WHERE title = 'Welcome to PatientPal')
	`); err != nil {
		log.Fatalf("failed to seed notice: %v", err)
	}

	fmt.Println("seed complete")
}

func upsertMember(db *sql.DB, username, email, hash, role string) string {
	var id string
	err := db.QueryRow(`
		INSERT INTO members (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`, username, email, hash, role).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed member %s: %v", username, err)
	}
	return id
}
