package locale

// EntityKind names the entity a diagnostic talks about.
type EntityKind uint8

const (
	KindEntity EntityKind = iota
	KindFunction
	KindMethod
	KindConstructor
	KindType
	KindVariable
	KindParameter
	KindField
	KindNamespace
	KindExpression
)

// Gender drives adjective and verb agreement in be/ru.
type Gender uint8

const (
	Masc Gender = iota
	Fem
	Neut
)

// Noun carries the grammatical forms a message template may need:
// the four cases used by be/ru plus the English determiner forms.
type Noun struct {
	Nom string // nominative
	Gen string // genitive
	Acc string // accusative
	Ins string // instrumental
	// English determiners; be/ru have none, there these repeat Nom.
	Indef string // "a function"
	Def   string // "the function"
	Bare  string // no determiner
	Gender Gender
}

// Adjective composes with a noun, agreeing in gender (be/ru).
type Adjective struct {
	Masc string
	Fem  string
	Neut string
}

func (a Adjective) With(g Gender) string {
	switch g {
	case Fem:
		return a.Fem
	case Neut:
		return a.Neut
	default:
		return a.Masc
	}
}

var nouns = map[Locale]map[EntityKind]Noun{
	En: {
		KindEntity:      enNoun("entity", "an"),
		KindFunction:    enNoun("function", "a"),
		KindMethod:      enNoun("method", "a"),
		KindConstructor: enNoun("constructor", "a"),
		KindType:        enNoun("type", "a"),
		KindVariable:    enNoun("variable", "a"),
		KindParameter:   enNoun("parameter", "a"),
		KindField:       enNoun("field", "a"),
		KindNamespace:   enNoun("namespace", "a"),
		KindExpression:  enNoun("expression", "an"),
	},
	Be: {
		KindEntity:      {Nom: "сутнасць", Gen: "сутнасці", Acc: "сутнасць", Ins: "сутнасцю", Gender: Fem},
		KindFunction:    {Nom: "функцыя", Gen: "функцыі", Acc: "функцыю", Ins: "функцыяй", Gender: Fem},
		KindMethod:      {Nom: "метад", Gen: "метаду", Acc: "метад", Ins: "метадам", Gender: Masc},
		KindConstructor: {Nom: "канструктар", Gen: "канструктара", Acc: "канструктар", Ins: "канструктарам", Gender: Masc},
		KindType:        {Nom: "тып", Gen: "тыпу", Acc: "тып", Ins: "тыпам", Gender: Masc},
		KindVariable:    {Nom: "зменная", Gen: "зменнай", Acc: "зменную", Ins: "зменнай", Gender: Fem},
		KindParameter:   {Nom: "параметр", Gen: "параметра", Acc: "параметр", Ins: "параметрам", Gender: Masc},
		KindField:       {Nom: "поле", Gen: "поля", Acc: "поле", Ins: "полем", Gender: Neut},
		KindNamespace:   {Nom: "прастора імёнаў", Gen: "прасторы імёнаў", Acc: "прастору імёнаў", Ins: "прасторай імёнаў", Gender: Fem},
		KindExpression:  {Nom: "выраз", Gen: "выразу", Acc: "выраз", Ins: "выразам", Gender: Masc},
	},
	Ru: {
		KindEntity:      {Nom: "сущность", Gen: "сущности", Acc: "сущность", Ins: "сущностью", Gender: Fem},
		KindFunction:    {Nom: "функция", Gen: "функции", Acc: "функцию", Ins: "функцией", Gender: Fem},
		KindMethod:      {Nom: "метод", Gen: "метода", Acc: "метод", Ins: "методом", Gender: Masc},
		KindConstructor: {Nom: "конструктор", Gen: "конструктора", Acc: "конструктор", Ins: "конструктором", Gender: Masc},
		KindType:        {Nom: "тип", Gen: "типа", Acc: "тип", Ins: "типом", Gender: Masc},
		KindVariable:    {Nom: "переменная", Gen: "переменной", Acc: "переменную", Ins: "переменной", Gender: Fem},
		KindParameter:   {Nom: "параметр", Gen: "параметра", Acc: "параметр", Ins: "параметром", Gender: Masc},
		KindField:       {Nom: "поле", Gen: "поля", Acc: "поле", Ins: "полем", Gender: Neut},
		KindNamespace:   {Nom: "пространство имён", Gen: "пространства имён", Acc: "пространство имён", Ins: "пространством имён", Gender: Fem},
		KindExpression:  {Nom: "выражение", Gen: "выражения", Acc: "выражение", Ins: "выражением", Gender: Neut},
	},
}

func enNoun(word, article string) Noun {
	return Noun{
		Nom:   word,
		Gen:   word,
		Acc:   word,
		Ins:   word,
		Indef: article + " " + word,
		Def:   "the " + word,
		Bare:  word,
	}
}

func noun(loc Locale, kind EntityKind) Noun {
	n := nouns[loc][kind]
	if loc != En {
		n.Indef = n.Nom
		n.Def = n.Nom
		n.Bare = n.Nom
	}
	return n
}

var adjOverloaded = map[Locale]Adjective{
	En: {Masc: "overloaded", Fem: "overloaded", Neut: "overloaded"},
	Be: {Masc: "перагружаны", Fem: "перагружаная", Neut: "перагружанае"},
	Ru: {Masc: "перегруженный", Fem: "перегруженная", Neut: "перегруженное"},
}

// genitive adjective forms used when "overloaded <noun>" stands in genitive
var adjOverloadedGen = map[Locale]Adjective{
	En: {Masc: "overloaded", Fem: "overloaded", Neut: "overloaded"},
	Be: {Masc: "перагружанага", Fem: "перагружанай", Neut: "перагружанага"},
	Ru: {Masc: "перегруженного", Fem: "перегруженной", Neut: "перегруженного"},
}

var adjNative = map[Locale]Adjective{
	En: {Masc: "native", Fem: "native", Neut: "native"},
	Be: {Masc: "натыўны", Fem: "натыўная", Neut: "натыўнае"},
	Ru: {Masc: "нативный", Fem: "нативная", Neut: "нативное"},
}

// mustHave agrees "must" with the subject's gender in be/ru.
func mustHave(loc Locale, g Gender) string {
	switch loc {
	case Be:
		switch g {
		case Fem:
			return "павінна"
		case Neut:
			return "павінна"
		default:
			return "павінен"
		}
	case Ru:
		switch g {
		case Fem:
			return "должна"
		case Neut:
			return "должно"
		default:
			return "должен"
		}
	default:
		return "must"
	}
}
