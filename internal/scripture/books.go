package scripture

import "strings"

// bookAliases maps each canonical book name to the abbreviations accepted
// for it. Matching is case-insensitive and ignores non-alphanumerics, so
// "1 John", "1John" and "ijohn" all land on the same key.
var bookAliases = map[string][]string{
	"Genesis":         {"gen", "ge", "gn"},
	"Exodus":          {"exod", "exo", "ex"},
	"Leviticus":       {"lev", "lv", "levit"},
	"Numbers":         {"num", "nm", "nb"},
	"Deuteronomy":     {"deut", "dt", "deu"},
	"Joshua":          {"josh", "jos", "jsh"},
	"Judges":          {"judg", "jdg", "jdgs", "jgs"},
	"Ruth":            {"ruth", "ru", "rth"},
	"1 Samuel":        {"1sam", "1samuel", "1sa", "1sm", "isamuel", "firstsamuel"},
	"2 Samuel":        {"2sam", "2samuel", "2sa", "2sm", "iisamuel", "secondsamuel"},
	"1 Kings":         {"1kgs", "1kings", "1ki", "1k", "ikings", "firstkings"},
	"2 Kings":         {"2kgs", "2kings", "2ki", "2k", "iikings", "secondkings"},
	"1 Chronicles":    {"1chr", "1chron", "1chronicles", "1ch", "ichronicles", "firstchronicles"},
	"2 Chronicles":    {"2chr", "2chron", "2chronicles", "2ch", "iichronicles", "secondchronicles"},
	"Ezra":            {"ezra", "ezr"},
	"Nehemiah":        {"neh", "ne", "nehemiah"},
	"Esther":          {"esth", "est", "es"},
	"Job":             {"job", "jb"},
	"Psalms":          {"ps", "psa", "psalm", "psalms"},
	"Proverbs":        {"prov", "pr", "prv"},
	"Ecclesiastes":    {"eccl", "ecc", "ec", "qoh"},
	"Song of Solomon": {"song", "songofsolomon", "songofsongs", "cant", "canticles", "sos"},
	"Isaiah":          {"isa", "is", "isaiah"},
	"Jeremiah":        {"jer", "je", "jeremiah"},
	"Lamentations":    {"lam", "la", "lamentations"},
	"Ezekiel":         {"ezek", "eze", "ezk"},
	"Daniel":          {"dan", "da", "dn"},
	"Hosea":           {"hos", "ho"},
	"Joel":            {"joel", "joe", "jl"},
	"Amos":            {"amos", "am"},
	"Obadiah":         {"obad", "ob", "oba"},
	"Jonah":           {"jonah", "jon", "jh"},
	"Micah":           {"mic", "mc"},
	"Nahum":           {"nah", "na"},
	"Habakkuk":        {"hab", "hb"},
	"Zephaniah":       {"zeph", "zep", "zp"},
	"Haggai":          {"hag", "hg"},
	"Zechariah":       {"zech", "zec", "zc"},
	"Malachi":         {"mal", "ml"},
	"Matthew":         {"matt", "mt", "mat"},
	"Mark":            {"mark", "mr", "mk"},
	"Luke":            {"luke", "lk", "lu"},
	"John":            {"john", "jn", "jhn"},
	"Acts":            {"acts", "ac"},
	"Romans":          {"rom", "ro", "rm"},
	"1 Corinthians":   {"1cor", "1corinthians", "1co", "icor", "firstcorinthians"},
	"2 Corinthians":   {"2cor", "2corinthians", "2co", "iicor", "secondcorinthians"},
	"Galatians":       {"gal", "ga"},
	"Ephesians":       {"eph", "ep"},
	"Philippians":     {"phil", "php", "phl"},
	"Colossians":      {"col", "co"},
	"1 Thessalonians": {"1thess", "1thessalonians", "1th", "ithess", "firstthessalonians"},
	"2 Thessalonians": {"2thess", "2thessalonians", "2th", "iithess", "secondthessalonians"},
	"1 Timothy":       {"1tim", "1timothy", "1ti", "itimothy", "firsttimothy"},
	"2 Timothy":       {"2tim", "2timothy", "2ti", "iitimothy", "secondtimothy"},
	"Titus":           {"titus", "tit", "ti"},
	"Philemon":        {"phlm", "phm", "philemon"},
	"Hebrews":         {"heb", "he"},
	"James":           {"jas", "jam", "jm"},
	"1 Peter":         {"1pet", "1peter", "1pe", "ipeter", "firstpeter"},
	"2 Peter":         {"2pet", "2peter", "2pe", "iipeter", "secondpeter"},
	"1 John":          {"1john", "1jn", "1jo", "ijohn", "firstjohn"},
	"2 John":          {"2john", "2jn", "2jo", "iijohn", "secondjohn"},
	"3 John":          {"3john", "3jn", "3jo", "iiijohn", "thirdjohn"},
	"Jude":            {"jude", "jud"},
	"Revelation":      {"rev", "re", "revelation", "apocalypse"},
}

var aliasToCanonical = buildAliasIndex()

func buildAliasIndex() map[string]string {
	index := make(map[string]string, len(bookAliases)*6)
	for canonical, aliases := range bookAliases {
		index[normKey(canonical)] = canonical
		for _, alias := range aliases {
			index[normKey(alias)] = canonical
		}
	}
	return index
}

// normKey lowercases a book token and strips everything that is not a
// letter or digit.
func normKey(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeBook returns the canonical book name for any accepted spelling
// or abbreviation.
func NormalizeBook(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &UnknownBookError{Token: name}
	}
	canonical, ok := aliasToCanonical[normKey(name)]
	if !ok {
		return "", &UnknownBookError{Token: name}
	}
	return canonical, nil
}

// BookCount reports the number of canonical books in the table.
func BookCount() int {
	return len(bookAliases)
}
