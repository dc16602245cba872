package csvsource_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/matrix-dsi/matrix-api/internal/domain"
	"github.com/matrix-dsi/matrix-api/internal/infrastructure/csvsource"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadFile_UTF8PointVirgule(t *testing.T) {
	path := writeTemp(t, "export.csv", []byte(
		"Nom du magasin;Date;Ventes TTC\nParis 11;14/03/2024;25,50\nLyon 02;14/03/2024;12,00\n"))

	sf, err := csvsource.NewReader().ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ';', sf.Delimiter)
	assert.Equal(t, []string{"Nom du magasin", "Date", "Ventes TTC"}, sf.Headers)
	require.Len(t, sf.Records, 2)
	assert.Equal(t, "Paris 11", sf.Records[0]["Nom du magasin"])
	assert.Equal(t, "25,50", sf.Records[0]["Ventes TTC"])
}

func TestReadFile_BOMUTF8(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Magasin;Date\nParis 11;14/03/2024\n")...)
	path := writeTemp(t, "bom.csv", data)

	sf, err := csvsource.NewReader().ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Magasin", sf.Headers[0], "le BOM ne doit pas polluer le premier en-tête")
}

func TestReadFile_Latin1(t *testing.T) {
	// "Libellé" encodé Latin-1 : 0xE9 pour 'é' (séquence UTF-8 invalide).
	data := []byte("Libell\xe9;Qt\xe9\nBouquet de p\xe9onies;3\n")
	path := writeTemp(t, "latin1.csv", data)

	sf, err := csvsource.NewReader().ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Libellé", "Qté"}, sf.Headers)
	assert.Equal(t, "Bouquet de péonies", sf.Records[0]["Libellé"])
}

func TestReadFile_DelimiteursAlternatifs(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		delim rune
	}{
		{"virgule", "Store,Date\nParis 11,14/03/2024\n", ','},
		{"tabulation", "Store\tDate\nParis 11\t14/03/2024\n", '\t'},
		{"pipe", "Store|Date\nParis 11|14/03/2024\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "alt.csv", []byte(tt.data))
			sf, err := csvsource.NewReader().ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.delim, sf.Delimiter)
			require.Len(t, sf.Records, 1)
			assert.Equal(t, "Paris 11", sf.Records[0]["Store"])
		})
	}
}

func TestReadFile_PrioritePointVirguleSurVirgule(t *testing.T) {
	// Des virgules traînent dans les libellés et les montants ; seul le
	// point-virgule a un compte cohérent sur toutes les lignes.
	path := writeTemp(t, "mixte.csv", []byte(
		"Magasin;Libellé;Ventes TTC\nParis 11;Bouquet, 15 roses;25,50\nLyon 02;Rose, unité;3,20\n"))

	sf, err := csvsource.NewReader().ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ';', sf.Delimiter)
	assert.Equal(t, "Bouquet, 15 roses", sf.Records[0]["Libellé"])
}

func TestReadFile_PlusPetitQueLEchantillon(t *testing.T) {
	// Fichier bien plus court que l'échantillon de détection : lu sans erreur.
	path := writeTemp(t, "mini.csv", []byte("A;B\n1;2\n"))

	sf, err := csvsource.NewReader().ReadFile(path)
	require.NoError(t, err)
	require.Len(t, sf.Records, 1)
}

func TestReadFile_FichierVide(t *testing.T) {
	path := writeTemp(t, "vide.csv", nil)

	sf, err := csvsource.NewReader().ReadFile(path)
	require.NoError(t, err, "un fichier vide n'est pas une erreur de lecture")
	assert.Empty(t, sf.Headers)
	assert.Empty(t, sf.Records)
}

func TestReadFile_ChampsManquantsCompletesVides(t *testing.T) {
	path := writeTemp(t, "court.csv", []byte("A;B;C\n1;2\n"))

	sf, err := csvsource.NewReader().ReadFile(path)
	require.NoError(t, err)
	require.Len(t, sf.Records, 1)
	assert.Equal(t, "", sf.Records[0]["C"])
}

func TestReadFile_Introuvable(t *testing.T) {
	_, err := csvsource.NewReader().ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnreadableFile)
}
