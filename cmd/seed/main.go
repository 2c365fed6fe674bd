package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/peerledger/peerpay/config"
	"github.com/peerledger/peerpay/pkg/helpers"
)

type seedUser struct {
	name     string
	username string
	email    string
	balance  string
	password string
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	users := []seedUser{
		{"Alice Example", "alice", "alice@example.com", "100.00", "password123"},
		{"Bob Example", "bob", "bob@example.com", "50.00", "password123"},
	}

	var ids []int64
	for _, u := range users {
		hash, err := helpers.HashPassword(u.password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		var id int64
		err = db.QueryRow(`
			INSERT INTO users (name, username, email, balance, password_hash)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, u.name, u.username, u.email, u.balance, hash).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.username, err)
		}
		ids = append(ids, id)
		fmt.Printf("seeded user: id=%d username=%s balance=%s password=%s\n", id, u.username, u.balance, u.password)
	}

	// Make the seeded users friends both ways.
	if len(ids) == 2 {
		if _, err := db.Exec(`
			INSERT INTO friendships (user_id, friend_id)
			VALUES ($1, $2), ($2, $1)
			ON CONFLICT (user_id, friend_id) DO NOTHING
		`, ids[0], ids[1]); err != nil {
			log.Fatalf("failed to seed friendship: %v", err)
		}
		fmt.Printf("seeded friendship: %d <-> %d\n", ids[0], ids[1])
	}
}
