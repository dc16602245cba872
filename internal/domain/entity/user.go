package entity

import "time"

// User utilisateur autorisé du dashboard. Les comptes sont provisionnés
// (pas d'auto-inscription) : le hash bcrypt est généré hors ligne.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	Status       string // active | disabled
	CreatedAt    time.Time
}
