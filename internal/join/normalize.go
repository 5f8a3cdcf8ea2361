package join

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key канонический ключ игрока, по которому сопоставляются таблицы
type Key string

// DefaultSuffixes поколенческие суффиксы, отбрасываемые при StripSuffixes
var DefaultSuffixes = []string{"jr", "sr", "ii", "iii", "iv", "v"}

// буквы, у которых нет разложения на базовую букву и диакритику
var letterFolds = strings.NewReplacer(
	"ł", "l", "ø", "o", "đ", "d", "ð", "d", "ħ", "h",
	"ß", "ss", "æ", "ae", "œ", "oe", "þ", "th", "ı", "i",
)

// Normalizer строит канонический ключ из имени игрока.
// Нулевое значение готово к использованию и суффиксы не трогает.
type Normalizer struct {
	Suffixes      []string
	StripSuffixes bool
}

// Normalize канонический ключ с настройками по умолчанию
func Normalize(name string) Key {
	return Normalizer{}.Key(name)
}

// Key приводит имя к каноническому виду: без диакритики, в нижнем регистре,
// без пунктуации, с одиночными пробелами между словами.
func (n Normalizer) Key(name string) Key {
	s := strings.ToLower(stripMarks(name))
	s = letterFolds.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '/':
			b.WriteByte(' ')
		default:
			// точки, апострофы, запятые просто выкидываем
		}
	}

	tokens := strings.Fields(b.String())
	if n.StripSuffixes {
		tokens = trimSuffixes(tokens, n.suffixSet())
	}
	return Key(strings.Join(tokens, " "))
}

// Display форма для вывода: без диакритики и лишних пробелов, регистр сохраняется
func (n Normalizer) Display(name string) string {
	return strings.Join(strings.Fields(stripMarks(name)), " ")
}

func (n Normalizer) suffixSet() map[string]struct{} {
	suffixes := n.Suffixes
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}
	set := make(map[string]struct{}, len(suffixes))
	for _, s := range suffixes {
		k := Normalizer{}.Key(s)
		if k != "" {
			set[string(k)] = struct{}{}
		}
	}
	return set
}

// trimSuffixes снимает хвостовые суффиксы, пока они есть, но не трогает последнее слово
func trimSuffixes(tokens []string, set map[string]struct{}) []string {
	for len(tokens) > 1 {
		if _, ok := set[tokens[len(tokens)-1]]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
