package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound       = errors.New("ressource introuvable")
	ErrUnreadableFile = errors.New("fichier illisible")
	ErrInvalidInput   = errors.New("entrée invalide")
	ErrUserNotFound   = errors.New("utilisateur introuvable")
	ErrUnauthorized   = errors.New("non autorisé")
	ErrForbidden      = errors.New("accès refusé")
	ErrDuplicate      = errors.New("ressource dupliquée")
)
