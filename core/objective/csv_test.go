package objective

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestTokenizeLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"simple unquoted row", "D,9,Title,Desc,onderbouw", []string{"D", "9", "Title", "Desc", "onderbouw"}},
		{"quoted field with embedded comma", `"A,B",1,X`, []string{"A,B", "1", "X"}},
		{"escaped quote inside quoted field", `"He said ""hi""",2,Y`, []string{`He said "hi"`, "2", "Y"}},
		{"fields are trimmed", "  D , 9 ,  Title  ", []string{"D", "9", "Title"}},
		{"trailing comma yields empty field", "D,9,", []string{"D", "9", ""}},
		{"empty line yields one empty field", "", []string{""}},
		{"unterminated quote treated as literal", `"no end,really`, []string{"no end,really"}},
		{"stray quote mid-field kept literal", `a"b,c`, []string{`a"b`, "c"}},
		{"quote closing mid-field keeps trailing text", `"A,B" tail,1`, []string{"A,B tail", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenizeLine(tt.line))
		})
	}
}

func TestMapImport(t *testing.T) {
	t.Run("header detected and skipped", func(t *testing.T) {
		rows, skipped := MapImport("domein,nummer,titel,beschrijving,fase\nD,9,Titel X,,B")
		require.Len(t, rows, 1)
		assert.Zero(t, skipped)
		assert.Equal(t, "Titel X", rows[0].Title)
	})

	t.Run("english header detected", func(t *testing.T) {
		rows, _ := MapImport("Domain,Number,Title\nD,1,X")
		require.Len(t, rows, 1)
		assert.Equal(t, "X", rows[0].Title)
	})

	t.Run("no header keywords maps every line", func(t *testing.T) {
		rows, _ := MapImport("D,1,Eerste\nE,2,Tweede")
		require.Len(t, rows, 2)
		assert.Equal(t, "Eerste", rows[0].Title)
		assert.Equal(t, "Tweede", rows[1].Title)
	})

	t.Run("lines under two fields are dropped and counted", func(t *testing.T) {
		rows, skipped := MapImport("justoneword\nD,1,Geldig")
		require.Len(t, rows, 1)
		assert.Equal(t, 1, skipped)
		assert.Equal(t, "Geldig", rows[0].Title)
	})

	t.Run("blank interior lines are ignored", func(t *testing.T) {
		rows, skipped := MapImport("D,1,Eerste\n\n   \nE,2,Tweede")
		require.Len(t, rows, 2)
		assert.Zero(t, skipped)
	})

	t.Run("non-numeric order falls back to zero", func(t *testing.T) {
		rows, _ := MapImport("D,abc,Geldig doel")
		require.Len(t, rows, 1)
		assert.Equal(t, 0, rows[0].Order)
	})

	t.Run("title falls back to order field", func(t *testing.T) {
		// questionable original behavior, kept on purpose
		rows, _ := MapImport("D,7,")
		require.Len(t, rows, 1)
		assert.Equal(t, "7", rows[0].Title)
		assert.Equal(t, 7, rows[0].Order)
	})

	t.Run("rows keep input order and line numbers", func(t *testing.T) {
		rows, _ := MapImport("Domein,Nummer,Titel\nB,2,Tweede\nA,1,Eerste")
		require.Len(t, rows, 2)
		assert.Equal(t, "Tweede", rows[0].Title)
		assert.Equal(t, 2, rows[0].Line)
		assert.Equal(t, "Eerste", rows[1].Title)
		assert.Equal(t, 3, rows[1].Line)
	})

	t.Run("end to end", func(t *testing.T) {
		text := "Domein,Nummer,Titel,Beschrijving,Fase\n" +
			"D,9,Conceptontwikkeling,Ontwerprichtingen genereren,onderbouw\n" +
			"A,1,Basisvaardigheid,,B"
		rows, skipped := MapImport(text)
		require.Len(t, rows, 2)
		assert.Zero(t, skipped)

		assert.Equal(t, ImportRow{
			Domain:      null.StringFrom("D"),
			Order:       9,
			Title:       "Conceptontwikkeling",
			Description: null.StringFrom("Ontwerprichtingen genereren"),
			Phase:       null.StringFrom(PhaseLower),
			Line:        2,
		}, rows[0])

		assert.Equal(t, ImportRow{
			Domain:      null.StringFrom("A"),
			Order:       1,
			Title:       "Basisvaardigheid",
			Description: null.String{},
			Phase:       null.StringFrom(PhaseLower),
			Line:        3,
		}, rows[1])
	})
}

func TestNormalizePhase(t *testing.T) {
	long := "onbekend-fase-waarde-die-te-lang-is"
	tests := []struct {
		in   string
		want string
	}{
		{"B", PhaseLower},
		{"b", PhaseLower},
		{"ONDERBOUW", PhaseLower},
		{"onderbouw", PhaseLower},
		{"E", PhaseUpper},
		{"Bovenbouw", PhaseUpper},
		{"vrij", "vrij"},
		{long, long[:20]},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizePhase(tt.in)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), 20)
		})
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"9", 9},
		{"", 0},
		{"abc", 0},
		{"12x", 12}, // parse-int-with-fallback keeps the leading digits
		{"-3", -3},
		{"+4", 4},
		{"-", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseOrder(tt.in), "parseOrder(%q)", tt.in)
	}
}

func TestMapImport_emptyPhaseIsNull(t *testing.T) {
	rows, _ := MapImport("D,1,Doel,Omschrijving,")
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Phase.Valid)
	assert.Equal(t, "Doel", rows[0].Title)
	assert.Equal(t, "Omschrijving", rows[0].Description.String)
}
