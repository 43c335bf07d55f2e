package latex

import (
	"strings"
	"testing"

	"github.com/pulpitworks/lectern/internal/providers"
)

func defaultOpts() providers.LookupOptions {
	return providers.DefaultLookupOptions()
}

func TestTranslate_ESVPlainText(t *testing.T) {
	raw := "How Great Is Love\n\n[16] For God so loved the world, that he gave his only Son, that whoever believes in him should not perish but have eternal life. (ESV)"

	got, strongs := Translate(raw, "John 3:16", defaultOpts())

	if !strings.HasPrefix(got, "\\ch{3}\n") {
		t.Errorf("translated text missing chapter macro:\n%s", got)
	}
	if !strings.Contains(got, `\vs{16} For God so loved`) {
		t.Errorf("translated text missing verse macro:\n%s", got)
	}
	if strings.Contains(got, "(ESV)") {
		t.Errorf("trailing version label survived:\n%s", got)
	}
	if strings.Contains(got, "How Great Is Love") {
		t.Errorf("heading line survived:\n%s", got)
	}
	if len(strongs) != 0 {
		t.Errorf("strongs = %v, want none", strongs)
	}
}

func TestTranslate_ESVMultiVerse(t *testing.T) {
	raw := "[1] There is therefore now no condemnation for those who are in Christ Jesus. [2] For the law of the Spirit of life has set you free in Christ Jesus from the law of sin and death. (ESV)"

	got, _ := Translate(raw, "Romans 8:1-2", defaultOpts())

	if !strings.Contains(got, `\vs{1} There is`) {
		t.Errorf("first verse marker not converted:\n%s", got)
	}
	if !strings.Contains(got, `\vs{2} For the law`) {
		t.Errorf("second verse marker not converted:\n%s", got)
	}
	if !strings.HasPrefix(got, "\\ch{8}\n") {
		t.Errorf("chapter macro missing or wrong:\n%s", got)
	}
}

func TestTranslate_NETMarkup(t *testing.T) {
	raw := `<span class="vref"><b>3:<span class="verseNumber">16</span></b></span>For this is the way <st data-num="2316">God</st> loved the world: He gave his one and only <st data-num="5207">Son</st>.<n id="1"/> <span class="vref"><b><span class="verseNumber">17</span></b></span>For God did not send his Son into the world to condemn the world.`

	got, strongs := Translate(raw, "John 3:16-17", defaultOpts())

	if !strings.Contains(got, `\vs{16} For this is the way`) {
		t.Errorf("first-verse vref not converted:\n%s", got)
	}
	if !strings.Contains(got, `\vs{17} For God did not send`) {
		t.Errorf("subsequent vref not converted:\n%s", got)
	}
	if !strings.Contains(got, `\hyperlink{strongs-2316}{God}`) {
		t.Errorf("Strong's link missing:\n%s", got)
	}
	if !strings.Contains(got, `\hyperlink{strongs-5207}{Son}`) {
		t.Errorf("Strong's link missing:\n%s", got)
	}
	if strings.Contains(got, "<n") || strings.Contains(got, "<span") || strings.Contains(got, "<st") {
		t.Errorf("provider tags survived:\n%s", got)
	}
	if len(strongs) != 2 || strongs[0] != "2316" || strongs[1] != "5207" {
		t.Errorf("strongs = %v, want [2316 5207]", strongs)
	}
}

func TestTranslate_BoldVerseDialects(t *testing.T) {
	raw := `<b>23:1</b>The LORD is my shepherd, I shall not want. <b>2</b>He makes me lie down in green pastures.`

	got, _ := Translate(raw, "Psalm 23:1-2", defaultOpts())

	if !strings.Contains(got, `\vs{1} The LORD`) {
		t.Errorf("bold chapter:verse not converted:\n%s", got)
	}
	if !strings.Contains(got, `\vs{2} He makes`) {
		t.Errorf("bold verse not converted:\n%s", got)
	}
}

func TestTranslate_VerseNumbersOff(t *testing.T) {
	raw := "[16] For God so loved the world. (ESV)"
	opts := defaultOpts()
	opts.IncludeVerseNumbers = false

	got, _ := Translate(raw, "John 3:16", opts)

	if strings.Contains(got, `\vs{`) {
		t.Errorf("verse macro emitted with verses off:\n%s", got)
	}
	if strings.Contains(got, `\ch{`) {
		t.Errorf("chapter macro emitted with verses off:\n%s", got)
	}
	if !strings.Contains(got, "For God so loved the world.") {
		t.Errorf("body text damaged:\n%s", got)
	}
}

func TestTranslate_Footnotes(t *testing.T) {
	t.Run("markers stripped by default", func(t *testing.T) {
		raw := "[7] Even though I walk through the valley of the shadow of death,(1) I will fear no evil. (ESV)"
		got, _ := Translate(raw, "Psalm 23:4", defaultOpts())
		if strings.Contains(got, "(1)") {
			t.Errorf("footnote marker survived:\n%s", got)
		}
	})

	t.Run("markers and section kept when requested", func(t *testing.T) {
		raw := "[4] the valley of the shadow of death,(1) I will fear no evil. (ESV)"
		opts := defaultOpts()
		opts.IncludeFootnotes = true
		got, _ := Translate(raw, "Psalm 23:4", opts)
		if !strings.Contains(got, "(1)") {
			t.Errorf("footnote marker dropped with footnotes on:\n%s", got)
		}
	})

	t.Run("footnotes section truncated", func(t *testing.T) {
		raw := "[4] I will fear no evil.\n\nFootnotes\n\n(1) Or the valley of deep darkness (ESV)"
		got, _ := Translate(raw, "Psalm 23:4", defaultOpts())
		if strings.Contains(got, "valley of deep darkness") {
			t.Errorf("footnotes section survived:\n%s", got)
		}
	})
}

func TestTranslate_SuppressLinks(t *testing.T) {
	raw := `<b>1</b>In the beginning was the <st data-num="3056">Word</st>.`
	opts := defaultOpts()
	opts.SuppressCrossRefLinks = true

	got, strongs := Translate(raw, "John 1:1", opts)

	if strings.Contains(got, `\hyperlink`) {
		t.Errorf("hyperlink emitted with links suppressed:\n%s", got)
	}
	if !strings.Contains(got, `\vs{1} In the beginning was the Word.`) {
		t.Errorf("word not unwrapped:\n%s", got)
	}
	// Numbers are still collected for the word study.
	if len(strongs) != 1 || strongs[0] != "3056" {
		t.Errorf("strongs = %v, want [3056]", strongs)
	}
}

func TestExtractChapter(t *testing.T) {
	tests := []struct {
		reference string
		want      string
	}{
		{"John 3:16", "3"},
		{"Romans 8:28-30", "8"},
		{"Psalm 23", "23"},
		{"1 John 2:3", "2"},
		{"1 John 2", "2"},
		{"Genesis 1", "1"},
		{"Philemon", ""},
	}
	for _, tt := range tests {
		t.Run(tt.reference, func(t *testing.T) {
			if got := extractChapter(tt.reference); got != tt.want {
				t.Errorf("extractChapter(%q) = %q, want %q", tt.reference, got, tt.want)
			}
		})
	}
}
