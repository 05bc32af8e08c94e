// seed puebla los datos de referencia: los roles USER y ADMIN, y la cuenta
// de administración inicial si SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD están
// definidos. Es idempotente: roles existentes se actualizan, el admin solo se
// crea si el email no está registrado.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/infrastructure/postgres"
	"github.com/jhoicas/biblioteca-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	roleRepo := postgres.NewRoleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	roles := []*entity.Role{
		{ID: "user", Name: entity.RoleUser, Description: "Regular user with basic permissions"},
		{ID: "admin", Name: entity.RoleAdmin, Description: "Administrator with full access"},
	}
	for _, role := range roles {
		if err := roleRepo.Upsert(role); err != nil {
			fmt.Fprintf(os.Stderr, "Sembrar rol %s: %v\n", role.Name, err)
			os.Exit(1)
		}
		fmt.Printf("Rol %s listo\n", role.Name)
	}

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		fmt.Println("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD no definidos; se omite la cuenta admin")
		return
	}

	existing, err := userRepo.GetByEmail(adminEmail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Consultar admin: %v\n", err)
		os.Exit(1)
	}
	if existing != nil {
		fmt.Printf("Cuenta admin %s ya existe\n", adminEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hashear password: %v\n", err)
		os.Exit(1)
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        adminEmail,
		PasswordHash: string(hash),
		Name:         "Administrator",
		RoleID:       "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(admin); err != nil {
		fmt.Fprintf(os.Stderr, "Crear admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cuenta admin %s creada\n", adminEmail)
}
