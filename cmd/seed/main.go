package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/profbkmurage/physiocare/internal/auth"
	"github.com/profbkmurage/physiocare/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	bg := context.Background()

	clientIDs, err := seedUsers(bg, pool, 40)
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}
	if err := seedTeam(bg, pool); err != nil {
		log.Fatalf("seed team: %v", err)
	}
	if err := seedBlogs(bg, pool, 12); err != nil {
		log.Fatalf("seed blogs: %v", err)
	}
	if err := seedAppointments(bg, pool, clientIDs, 120); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}
	if err := seedTestimonials(bg, pool, clientIDs, 25); err != nil {
		log.Fatalf("seed testimonials: %v", err)
	}

	log.Println("seed complete")
}

// seedUsers creates one superadmin, one admin and count clients, and
// returns the client IDs for the appointment and testimonial seeders.
func seedUsers(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d users", count+2)

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO users (id, email, password_hash, name, phone, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	`

	if _, err := tx.Exec(ctx, insert, uuid.New(), "superadmin@physiocare.clinic", hash, "Super Admin", "254700000001", "superadmin"); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, insert, uuid.New(), "admin@physiocare.clinic", hash, "Clinic Admin", "254700000002", "admin"); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		phone := fmt.Sprintf("2547%08d", gofakeit.Number(0, 99999999))

		if _, err := tx.Exec(ctx, insert, id, gofakeit.Email(), hash, gofakeit.Name(), phone, "client"); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("users seeded")
	return ids, nil
}

func seedTeam(ctx context.Context, pool *pgxpool.Pool) error {
	roles := []string{
		"Lead Physiotherapist",
		"Sports Rehabilitation Specialist",
		"Pediatric Physiotherapist",
		"Massage Therapist",
		"Clinic Coordinator",
	}

	log.Printf("seeding %d team members", len(roles))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, role := range roles {
		_, err := tx.Exec(ctx, `
			INSERT INTO team (id, name, role, bio, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
		`, uuid.New(), gofakeit.Name(), role, gofakeit.Sentence(12), gofakeit.ImageURL(400, 400))
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("team seeded")
	return nil
}

func seedBlogs(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d blog posts", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		_, err := tx.Exec(ctx, `
			INSERT INTO blogs (id, title, content, image_url, likes, shares, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		`, uuid.New(), gofakeit.Sentence(6), gofakeit.Paragraph(4, 6, 20, "\n\n"),
			gofakeit.ImageURL(800, 400), gofakeit.Number(0, 200), gofakeit.Number(0, 50))
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("blog posts seeded")
	return nil
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, clientIDs []uuid.UUID, count int) error {
	if len(clientIDs) == 0 {
		return nil
	}
	log.Printf("seeding %d appointments", count)

	services := []string{
		"Back Pain Therapy",
		"Sports Injury Rehabilitation",
		"Post-Surgery Recovery",
		"Pediatric Physiotherapy",
		"Deep Tissue Massage",
	}
	statuses := []string{"pending_approval", "approved", "rescheduled", "revoked"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		userID := clientIDs[gofakeit.Number(0, len(clientIDs)-1)]
		day := time.Now().AddDate(0, 0, gofakeit.Number(-30, 30))
		slot := fmt.Sprintf("%02d:%02d", gofakeit.Number(8, 17), []int{0, 30}[gofakeit.Number(0, 1)])
		phone := fmt.Sprintf("2547%08d", gofakeit.Number(0, 99999999))

		_, err := tx.Exec(ctx, `
			INSERT INTO appointments (id, user_id, patient_name, whatsapp, date, time, service, doctor_name, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		`, uuid.New(), userID, gofakeit.Name(), phone,
			day.Format("2006-01-02"), slot,
			services[gofakeit.Number(0, len(services)-1)],
			"Dr. Jasmine Gatiba",
			statuses[gofakeit.Number(0, len(statuses)-1)])
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("appointments seeded")
	return nil
}

func seedTestimonials(ctx context.Context, pool *pgxpool.Pool, clientIDs []uuid.UUID, count int) error {
	if len(clientIDs) == 0 {
		return nil
	}
	log.Printf("seeding %d testimonials", count)

	categories := []string{"Patient", "Witness", "General"}
	statuses := []string{"pending", "approved"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		userID := clientIDs[gofakeit.Number(0, len(clientIDs)-1)]
		_, err := tx.Exec(ctx, `
			INSERT INTO testimonials (id, user_id, name, category, message, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		`, uuid.New(), userID, gofakeit.Name(),
			categories[gofakeit.Number(0, len(categories)-1)],
			gofakeit.Sentence(18),
			statuses[gofakeit.Number(0, len(statuses)-1)])
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("testimonials seeded")
	return nil
}
