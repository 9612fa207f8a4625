package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gymgate/internal/config"
	"gymgate/internal/model"
	"gymgate/internal/repository"
	"gymgate/internal/service"
	"gymgate/internal/storage"
)

// seedPlan is a static subscription plan to install on a fresh database.
type seedPlan struct {
	name         string
	durationDays int
	price        string
}

var seedPlans = []seedPlan{
	{"Monthly", 30, "50.00"},
	{"Quarterly", 90, "135.00"},
	{"Yearly", 365, "480.00"},
}

var seedMembers = []struct {
	name  string
	plan  string
	phone string
	email string
}{
	{"Alice Hart", "Monthly", "555-0101", "alice@example.com"},
	{"Omar Nasser", "Quarterly", "555-0102", "omar@example.com"},
	{"Jin Park", "Yearly", "555-0103", "jin@example.com"},
}

var seedEquipment = []string{
	"Treadmill A",
	"Treadmill B",
	"Rowing machine",
	"Squat rack",
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	ctx := context.Background()

	store, err := storage.Open(ctx, cfg.DatabasePath, cfg.PoolSize)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()
	log.Printf("Opened database at %s", store.Path())

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	planRepo := repository.NewPlanRepository()
	memberRepo := repository.NewMemberRepository()
	equipmentRepo := repository.NewEquipmentRepository()

	created, existing, err := installPlans(ctx, store, planRepo)
	if err != nil {
		log.Fatalf("Failed to seed plans: %v", err)
	}
	log.Printf("Plans: %d created, %d already present", created, existing)

	memberService := service.NewMemberService(store, memberRepo, planRepo)
	added := 0
	for _, m := range seedMembers {
		if _, err := memberService.Add(ctx, m.name, m.plan, time.Now(), m.phone, m.email); err != nil {
			log.Printf("Skipping member %s: %v", m.name, err)
			continue
		}
		added++
	}
	log.Printf("Members: %d created", added)

	equipmentService := service.NewEquipmentService(store, equipmentRepo)
	for _, name := range seedEquipment {
		if _, err := equipmentService.Add(ctx, name, model.EquipmentUsable); err != nil {
			log.Printf("Skipping equipment %s: %v", name, err)
		}
	}
	log.Printf("Equipment: %d entries processed", len(seedEquipment))

	log.Println("Seed completed successfully!")
}

// installPlans creates the static plans, leaving already-present ones alone.
func installPlans(ctx context.Context, store *storage.Store, repo *repository.PlanRepository) (created int, existing int, err error) {
	for _, p := range seedPlans {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return created, existing, err
		}
		err = store.Execute(ctx, func(tx *gorm.DB) error {
			if _, err := repo.FindByName(ctx, tx, p.name); err == nil {
				existing++
				return nil
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			created++
			return repo.Create(ctx, tx, &model.Plan{
				Name:         p.name,
				DurationDays: p.durationDays,
				Price:        price,
			})
		})
		if err != nil {
			return created, existing, err
		}
	}
	return created, existing, nil
}
