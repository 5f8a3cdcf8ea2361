package join

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Key
	}{
		{"plain", "Jimmy Butler", "jimmy butler"},
		{"whitespace", "  jimmy   butler  ", "jimmy butler"},
		{"accent", "Jimmy Bütler", "jimmy butler"},
		{"acute", "Nikola Jokić", "nikola jokic"},
		{"tabs", "Bam\tAdebayo\n", "bam adebayo"},
		{"punctuation", "De'Aaron Fox", "deaaron fox"},
		{"dots", "P.J. Tucker", "pj tucker"},
		{"hyphen", "Karl-Anthony Towns", "karl anthony towns"},
		{"stroke", "Marcin Gortał", "marcin gortal"},
		{"suffix kept by default", "Jaime Jaquez Jr.", "jaime jaquez jr"},
		{"empty", "", ""},
		{"blank", "   \t ", ""},
		{"only punctuation", "...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeSameForVariants(t *testing.T) {
	want := Normalize("Jimmy Butler")
	assert.Equal(t, want, Normalize("  jimmy   butler  "))
	assert.Equal(t, want, Normalize("Jimmy Bütler"))
	assert.Equal(t, want, Normalize("JIMMY BUTLER"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Jimmy Butler", "Nikola Jokić", "Jaime Jaquez Jr.", "  Ŝtrange   Ñame III ",
		"Dāvis Bertāns", "İbrahim", "Straße", "Jr.", "John V V", "", "Æsir-Ørn",
	}
	normalizers := []Normalizer{{}, {StripSuffixes: true}}
	for _, n := range normalizers {
		for _, in := range inputs {
			once := n.Key(in)
			assert.Equal(t, once, n.Key(string(once)), "input %q", in)
		}
	}
}

func TestNormalizerStripSuffixes(t *testing.T) {
	n := Normalizer{StripSuffixes: true}

	assert.Equal(t, Key("jaime jaquez"), n.Key("Jaime Jaquez Jr."))
	assert.Equal(t, Key("jaime jaquez"), n.Key("Jaime Jaquez"))
	assert.Equal(t, Key("gary trent"), n.Key("Gary Trent Jr"))
	assert.Equal(t, Key("john"), n.Key("John V V"))
	// единственное слово не снимается
	assert.Equal(t, Key("jr"), n.Key("Jr."))

	custom := Normalizer{StripSuffixes: true, Suffixes: []string{"Sr."}}
	assert.Equal(t, Key("jaime jaquez jr"), custom.Key("Jaime Jaquez Jr."))
	assert.Equal(t, Key("tim hardaway"), custom.Key("Tim Hardaway Sr."))
}

func TestNormalizerDisplay(t *testing.T) {
	n := Normalizer{}
	assert.Equal(t, "Nikola Jokic", n.Display("  Nikola   Jokić "))
	assert.Equal(t, "Jaime Jaquez Jr.", n.Display("Jaime Jaquez Jr."))
	assert.Equal(t, "", n.Display("   "))
}
