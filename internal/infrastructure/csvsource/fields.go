package csvsource

import "strings"

// Noms canoniques des colonnes des exports caisse. Les clés publiques du
// schéma interne ; les exports réels varient en orthographe et en casse.
const (
	FieldStoreName    = "Nom du magasin"
	FieldPeriodDate   = "Date de la période"
	FieldCodeArticle  = "Code article"
	FieldLabel        = "Libellé article"
	FieldFamily       = "Famille"
	FieldQuantity     = "Qté"
	FieldSalesExclTax = "Ventes HT"
	FieldSalesInclTax = "Ventes TTC"
	FieldMarginExcl   = "Marge HT"
	FieldMarginPct    = "Marge %"
)

// headerAliases table statique des orthographes acceptées par nom canonique.
// Issue des variantes observées dans les exports des différents logiciels
// de caisse du réseau.
var headerAliases = map[string][]string{
	FieldStoreName:    {"Nom du magasin", "Magasin", "Store", "Nom_du_magasin"},
	FieldPeriodDate:   {"Date de la période", "Date", "Période", "Date_periode"},
	FieldCodeArticle:  {"Code article", "Code", "Code_article"},
	FieldLabel:        {"Libellé article", "Libelle article", "Libellé", "Libelle_article"},
	FieldFamily:       {"Famille", "Famille article", "Famille_article", "Rayon"},
	FieldQuantity:     {"Qté", "Qte", "Quantité", "Quantite"},
	FieldSalesExclTax: {"Ventes HT", "Vente HT", "Ventes_HT"},
	FieldSalesInclTax: {"Ventes TTC", "Vente TTC", "Ventes_TTC"},
	FieldMarginExcl:   {"Marge HT", "Marge_HT"},
	FieldMarginPct:    {"Marge %", "Marge%", "Marge_pct"},
}

// Resolve cherche la valeur du champ canonique dans le record : clé exacte,
// puis alias exacts, puis alias insensibles à la casse et aux espaces en
// dernier recours. Renvoie "" quand rien ne correspond — l'absence est un
// résultat normal, jamais une erreur ; les parseurs décident ensuite
// null ou rejet.
func Resolve(rec Record, canonical string) string {
	if v, ok := rec[canonical]; ok {
		return v
	}
	aliases, ok := headerAliases[canonical]
	if !ok {
		aliases = []string{canonical}
	}
	for _, alias := range aliases {
		if v, ok := rec[alias]; ok {
			return v
		}
	}
	// Dernier recours : comparaison casse/espaces-insensible.
	low := make(map[string]string, len(rec))
	for k := range rec {
		low[strings.ToLower(strings.TrimSpace(k))] = k
	}
	for _, alias := range aliases {
		if k, ok := low[strings.ToLower(strings.TrimSpace(alias))]; ok {
			return rec[k]
		}
	}
	return ""
}
