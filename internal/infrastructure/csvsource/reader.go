// Package csvsource lit les exports caisse CSV hétérogènes : détection
// d'encodage (UTF-8 BOM, UTF-8, Latin-1) et de délimiteur, résolution
// tolérante des noms de colonnes et parsing localisé des valeurs.
package csvsource

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"github.com/matrix-dsi/matrix-api/internal/domain"
)

// sampleSize taille de l'échantillon utilisé pour détecter le délimiteur.
// Les fichiers plus courts sont échantillonnés en entier, jamais rejetés.
const sampleSize = 8192

// delimiterCandidates délimiteurs acceptés, par ordre de priorité du
// fallback (';' avant ',' avant tabulation avant '|').
var delimiterCandidates = []rune{';', ',', '\t', '|'}

// Record une ligne source : en-tête brut → valeur brute.
type Record map[string]string

// SourceFile résultat de lecture d'un export : en-têtes dans l'ordre du
// fichier, délimiteur détecté et lignes normalisées en Records.
type SourceFile struct {
	Path      string
	Headers   []string
	Delimiter rune
	Records   []Record
}

// Reader lit les fichiers source. Aucune mutation des fichiers lus.
type Reader struct{}

// NewReader construit le lecteur.
func NewReader() *Reader { return &Reader{} }

// ReadFile lit un export caisse : essaie les encodages en ordre fixe
// (UTF-8 avec BOM, UTF-8, Latin-1), détecte le délimiteur sur l'échantillon
// de tête, puis matérialise toutes les lignes. Renvoie ErrUnreadableFile
// (enveloppée) si aucune combinaison ne permet de lire le fichier.
func (r *Reader) ReadFile(path string) (*SourceFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUnreadableFile, path, err)
	}

	text := decode(raw)
	delim := sniffDelimiter(sample(text))

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	headers, err := cr.Read()
	if err == io.EOF {
		// Fichier vide : succès avec zéro ligne, le pipeline en rend compte.
		return &SourceFile{Path: path, Delimiter: delim}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s (dernier essai: %v)", domain.ErrUnreadableFile, path, err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimPrefix(h, "\uFEFF")
	}

	out := &SourceFile{Path: path, Headers: headers, Delimiter: delim}
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s (dernier essai: %v)", domain.ErrUnreadableFile, path, err)
		}
		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				rec[h] = fields[i]
			} else {
				rec[h] = ""
			}
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

// decode applique le premier encodage qui convient : BOM UTF-8 retiré,
// UTF-8 validé, sinon Latin-1 (qui ne peut pas échouer : tout octet est un
// caractère valide).
func decode(raw []byte) string {
	if bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		raw = raw[3:]
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// Par contrat Latin-1 ne produit pas d'erreur ; garde-fou.
		return string(raw)
	}
	return string(decoded)
}

// sample renvoie l'échantillon de tête servant à la détection.
func sample(text string) string {
	if len(text) > sampleSize {
		return text[:sampleSize]
	}
	return text
}

// sniffDelimiter choisit le délimiteur dont le nombre d'occurrences est
// non nul et constant sur les premières lignes de l'échantillon (à la
// manière d'un sniffer CSV). À défaut de candidat cohérent, heuristique de
// présence : ';' prioritaire sur ',' puis tabulation.
func sniffDelimiter(sample string) rune {
	lines := sampleLines(sample, 10)

	best := rune(0)
	bestCount := 0
	for _, cand := range delimiterCandidates {
		count := -1
		consistent := len(lines) > 0
		for _, line := range lines {
			n := strings.Count(line, string(cand))
			if n == 0 {
				consistent = false
				break
			}
			if count == -1 {
				count = n
			} else if n != count {
				consistent = false
				break
			}
		}
		if consistent && count > bestCount {
			best = cand
			bestCount = count
		}
	}
	if best != 0 {
		return best
	}

	switch {
	case strings.ContainsRune(sample, ';'):
		return ';'
	case strings.ContainsRune(sample, ','):
		return ','
	default:
		return '\t'
	}
}

// sampleLines découpe l'échantillon en lignes non vides (au plus max),
// en écartant la dernière ligne si l'échantillon est tronqué en plein
// milieu.
func sampleLines(sample string, max int) []string {
	all := strings.Split(strings.ReplaceAll(sample, "\r\n", "\n"), "\n")
	if len(sample) == sampleSize && len(all) > 1 {
		all = all[:len(all)-1]
	}
	var lines []string
	for _, l := range all {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
		if len(lines) == max {
			break
		}
	}
	return lines
}
