// Package family dérive une famille produit depuis un libellé libre quand
// l'export caisse ne porte pas de colonne famille (service de domaine pur).
package family

import "strings"

// DefaultFamily famille attribuée quand aucune règle ne correspond.
const DefaultFamily = "Autres"

// Rule associe un motif (sous-chaîne, insensible à la casse) à une famille.
type Rule struct {
	Pattern string
	Family  string
}

// Classifier applique une liste ORDONNÉE de règles : la première règle dont
// le motif apparaît dans le libellé gagne. Fonction totale et déterministe,
// ne renvoie jamais d'erreur.
type Classifier struct {
	rules []Rule
}

// New construit un classificateur avec les règles données (ordre significatif).
func New(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Default construit le classificateur avec le référentiel métier standard.
// L'ordre compte : "Bouquet de roses" doit tomber dans Bouquets, pas Roses.
func Default() *Classifier {
	return New([]Rule{
		{Pattern: "bouquet", Family: "Bouquets"},
		{Pattern: "composition", Family: "Compositions"},
		{Pattern: "rose", Family: "Roses"},
		{Pattern: "orchid", Family: "Orchidées"},
		{Pattern: "plante", Family: "Plantes"},
		{Pattern: "deuil", Family: "Deuil"},
		{Pattern: "vase", Family: "Accessoires"},
		{Pattern: "accessoire", Family: "Accessoires"},
	})
}

// Classify renvoie la famille du libellé. Libellé vide ou sans règle
// correspondante : DefaultFamily.
func (c *Classifier) Classify(label string) string {
	low := strings.ToLower(strings.TrimSpace(label))
	if low == "" {
		return DefaultFamily
	}
	for _, r := range c.rules {
		if strings.Contains(low, strings.ToLower(r.Pattern)) {
			return r.Family
		}
	}
	return DefaultFamily
}
