package locale

import (
	"fmt"

	"co/internal/diag"
)

// Args carries the typed arguments a message template may reference.
// Nouns are looked up by Kind so the template can pick the right
// grammatical form.
type Args struct {
	Text       string     // offending source text, operator or token
	Name       string     // entity name
	Kind       EntityKind // entity kind
	TypeName   string     // primary type
	SecondType string     // secondary type (conversions)
	Stmt       string     // "if" or "while"
}

// Catalog formats diagnostic messages for one locale.
type Catalog struct {
	loc Locale
}

func NewCatalog(loc Locale) *Catalog {
	return &Catalog{loc: loc}
}

func (c *Catalog) Locale() Locale {
	return c.loc
}

// Format renders the message for a code. Unknown codes get a plain
// fallback so a missing table entry never crashes the compiler.
func (c *Catalog) Format(code diag.Code, a Args) string {
	byLocale, ok := messages[code]
	if !ok {
		return fmt.Sprintf("%s: %s", code, a.Text)
	}
	f, ok := byLocale[c.loc]
	if !ok {
		f = byLocale[En]
	}
	return f(a)
}

// FirstDefinedHere is the standard note on duplicate definitions.
func (c *Catalog) FirstDefinedHere() string {
	switch c.loc {
	case Be:
		return "першае вызначэнне тут"
	case Ru:
		return "первое определение здесь"
	default:
		return "first defined here"
	}
}

// Candidate is the per-overload note on ambiguous calls.
func (c *Catalog) Candidate(signature string) string {
	switch c.loc {
	case Be:
		return "кандыдат: " + signature
	case Ru:
		return "кандидат: " + signature
	default:
		return "candidate: " + signature
	}
}

type template func(Args) string

var messages = map[diag.Code]map[Locale]template{
	diag.IntegerLiteralOutOfRange: {
		En: func(a Args) string { return fmt.Sprintf("numeric literal '%s' is out of range", a.Text) },
		Be: func(a Args) string { return fmt.Sprintf("лікавы літарал '%s' выходзіць за межы дыяпазону", a.Text) },
		Ru: func(a Args) string { return fmt.Sprintf("числовой литерал '%s' выходит за пределы диапазона", a.Text) },
	},
	diag.InvalidExponent: {
		En: func(a Args) string { return fmt.Sprintf("invalid exponent in numeric literal '%s'", a.Text) },
		Be: func(a Args) string { return fmt.Sprintf("няправільная экспанента ў лікавым літарале '%s'", a.Text) },
		Ru: func(a Args) string { return fmt.Sprintf("некорректная экспонента в числовом литерале '%s'", a.Text) },
	},
	diag.UnknownNumber: {
		En: func(a Args) string { return fmt.Sprintf("malformed numeric literal '%s'", a.Text) },
		Be: func(a Args) string { return fmt.Sprintf("няправільны лікавы літарал '%s'", a.Text) },
		Ru: func(a Args) string { return fmt.Sprintf("неизвестный числовой литерал '%s'", a.Text) },
	},
	diag.UnknownCharacter: {
		En: func(a Args) string { return fmt.Sprintf("unknown character '%s'", a.Text) },
		Be: func(a Args) string { return fmt.Sprintf("невядомы сімвал '%s'", a.Text) },
		Ru: func(a Args) string { return fmt.Sprintf("неизвестный символ '%s'", a.Text) },
	},
	diag.MissingVariableInitializer: {
		En: func(Args) string { return "missing initializer after '='" },
		Be: func(Args) string { return "прапушчаны ініцыялізатар пасля '='" },
		Ru: func(Args) string { return "пропущен инициализатор после '='" },
	},
	diag.MissingRightOperand: {
		En: func(a Args) string { return fmt.Sprintf("missing right operand of operator '%s'", a.Text) },
		Be: func(a Args) string { return fmt.Sprintf("прапушчаны правы аперанд аператара '%s'", a.Text) },
		Ru: func(a Args) string { return fmt.Sprintf("пропущен правый операнд оператора '%s'", a.Text) },
	},
	diag.UnknownSpecifier: {
		En: func(a Args) string { return fmt.Sprintf("unknown specifier '%s'", a.Text) },
		Be: func(a Args) string { return fmt.Sprintf("невядомы спецыфікатар '%s'", a.Text) },
		Ru: func(a Args) string { return fmt.Sprintf("неизвестный спецификатор '%s'", a.Text) },
	},
	diag.MissingClosingDelimiter: {
		En: func(a Args) string { return fmt.Sprintf("missing closing %s", a.Text) },
		Be: func(a Args) string { return fmt.Sprintf("прапушчаны зачыняльны %s", a.Text) },
		Ru: func(a Args) string { return fmt.Sprintf("пропущен закрывающий %s", a.Text) },
	},
	diag.KeywordAsIdentifier: {
		En: func(a Args) string { return fmt.Sprintf("keyword %s cannot be used as an identifier", a.Text) },
		Be: func(a Args) string { return fmt.Sprintf("ключавое слова %s нельга выкарыстоўваць як ідэнтыфікатар", a.Text) },
		Ru: func(a Args) string { return fmt.Sprintf("ключевое слово %s нельзя использовать как идентификатор", a.Text) },
	},
	diag.UnexpectedToken: {
		En: func(a Args) string { return fmt.Sprintf("unexpected %s", a.Text) },
		Be: func(a Args) string { return fmt.Sprintf("нечаканы токен %s", a.Text) },
		Ru: func(a Args) string { return fmt.Sprintf("неожиданный токен %s", a.Text) },
	},
	diag.ExpectedExpression: {
		En: func(Args) string { return "expected an expression" },
		Be: func(Args) string { return "чакаўся выраз" },
		Ru: func(Args) string { return "ожидалось выражение" },
	},
	diag.ExpectedDefinition: {
		En: func(Args) string { return "expected a definition" },
		Be: func(Args) string { return "чакалася вызначэнне" },
		Ru: func(Args) string { return "ожидалось определение" },
	},
	diag.InvalidCallArguments: {
		En: func(a Args) string {
			return fmt.Sprintf("no overload of %s '%s' matches the given argument types", noun(En, a.Kind).Def, a.Name)
		},
		Be: func(a Args) string {
			return fmt.Sprintf("ніводная з перагрузак %s '%s' не прымае дадзеныя тыпы аргументаў", noun(Be, a.Kind).Gen, a.Name)
		},
		Ru: func(a Args) string {
			return fmt.Sprintf("ни одна из перегрузок %s '%s' не принимает данные типы аргументов", noun(Ru, a.Kind).Gen, a.Name)
		},
	},
	diag.AmbiguousOverloadedCall: {
		En: func(a Args) string {
			n := noun(En, a.Kind)
			return fmt.Sprintf("call of the %s %s '%s' is ambiguous", adjOverloaded[En].With(n.Gender), n.Bare, a.Name)
		},
		Be: func(a Args) string {
			n := noun(Be, a.Kind)
			return fmt.Sprintf("выклік %s %s '%s' неадназначны", adjOverloadedGen[Be].With(n.Gender), n.Gen, a.Name)
		},
		Ru: func(a Args) string {
			n := noun(Ru, a.Kind)
			return fmt.Sprintf("вызов %s %s '%s' неоднозначен", adjOverloadedGen[Ru].With(n.Gender), n.Gen, a.Name)
		},
	},
	diag.ExpressionIsNotCallable: {
		En: func(Args) string { return "this expression is not callable" },
		Be: func(Args) string { return "гэты выраз нельга выклікаць" },
		Ru: func(Args) string { return "это выражение нельзя вызвать" },
	},
	diag.InvalidReferenceAsExpression: {
		En: func(a Args) string {
			return fmt.Sprintf("%s '%s' cannot be used as an expression", noun(En, a.Kind).Def, a.Name)
		},
		Be: func(a Args) string {
			return fmt.Sprintf("%s '%s' нельга выкарыстоўваць як выраз", noun(Be, a.Kind).Acc, a.Name)
		},
		Ru: func(a Args) string {
			return fmt.Sprintf("%s '%s' нельзя использовать как выражение", noun(Ru, a.Kind).Acc, a.Name)
		},
	},
	diag.UnknownName: {
		En: func(a Args) string { return fmt.Sprintf("unknown name '%s'", a.Name) },
		Be: func(a Args) string { return fmt.Sprintf("невядомае імя '%s'", a.Name) },
		Ru: func(a Args) string { return fmt.Sprintf("неизвестное имя '%s'", a.Name) },
	},
	diag.MissingMainFunction: {
		En: func(Args) string { return "the program has no 'main' function" },
		Be: func(Args) string { return "у праграме няма функцыі 'main'" },
		Ru: func(Args) string { return "в программе нет функции 'main'" },
	},
	diag.InvalidMainFunctionSignature: {
		En: func(Args) string { return "the 'main' function must take no parameters and return 'void'" },
		Be: func(Args) string { return "функцыя 'main' не павінна мець параметраў і павінна вяртаць 'void'" },
		Ru: func(Args) string { return "функция 'main' не должна иметь параметров и должна возвращать 'void'" },
	},
	diag.MissingReturnStatement: {
		En: func(Args) string { return "missing return statement: not every control path returns a value" },
		Be: func(Args) string { return "адсутнічае аператар return: не ўсе шляхі выканання вяртаюць значэнне" },
		Ru: func(Args) string { return "отсутствует оператор return: не все пути выполнения возвращают значение" },
	},
	diag.MainIsNotFunction: {
		En: func(a Args) string { return fmt.Sprintf("'main' is %s, not a function", noun(En, a.Kind).Indef) },
		Be: func(a Args) string { return fmt.Sprintf("'main' — гэта %s, а не функцыя", noun(Be, a.Kind).Nom) },
		Ru: func(a Args) string { return fmt.Sprintf("'main' — это %s, а не функция", noun(Ru, a.Kind).Nom) },
	},
	diag.ReturnFromConstructor: {
		En: func(Args) string { return "a constructor cannot contain a return statement" },
		Be: func(Args) string { return "канструктар не можа змяшчаць аператар return" },
		Ru: func(Args) string { return "конструктор не может содержать оператор return" },
	},
	diag.ReturnWithoutValue: {
		En: func(a Args) string { return fmt.Sprintf("return without a value in a function returning '%s'", a.TypeName) },
		Be: func(a Args) string { return fmt.Sprintf("return без значэння ў функцыі, якая вяртае '%s'", a.TypeName) },
		Ru: func(a Args) string { return fmt.Sprintf("return без значения в функции, возвращающей '%s'", a.TypeName) },
	},
	diag.IncompatibleReturnType: {
		En: func(a Args) string {
			return fmt.Sprintf("cannot convert '%s' to the return type '%s'", a.TypeName, a.SecondType)
		},
		Be: func(a Args) string {
			return fmt.Sprintf("немагчыма пераўтварыць '%s' да тыпу вяртання '%s'", a.TypeName, a.SecondType)
		},
		Ru: func(a Args) string {
			return fmt.Sprintf("невозможно преобразовать '%s' к типу возврата '%s'", a.TypeName, a.SecondType)
		},
	},
	diag.UnreachableCode: {
		En: func(Args) string { return "unreachable code" },
		Be: func(Args) string { return "недасяжны код" },
		Ru: func(Args) string { return "недостижимый код" },
	},
	diag.InvalidConditionType: {
		En: func(a Args) string {
			return fmt.Sprintf("the '%s' condition must be 'bool', got '%s'", a.Stmt, a.TypeName)
		},
		Be: func(a Args) string {
			return fmt.Sprintf("умова '%s' павінна мець тып 'bool', а мае '%s'", a.Stmt, a.TypeName)
		},
		Ru: func(a Args) string {
			return fmt.Sprintf("условие '%s' должно иметь тип 'bool', а имеет '%s'", a.Stmt, a.TypeName)
		},
	},
	diag.IncompatibleVariableInitializer: {
		En: func(a Args) string {
			return fmt.Sprintf("cannot initialize a variable of type '%s' with a value of type '%s'", a.TypeName, a.SecondType)
		},
		Be: func(a Args) string {
			return fmt.Sprintf("немагчыма ініцыялізаваць зменную тыпу '%s' значэннем тыпу '%s'", a.TypeName, a.SecondType)
		},
		Ru: func(a Args) string {
			return fmt.Sprintf("невозможно инициализировать переменную типа '%s' значением типа '%s'", a.TypeName, a.SecondType)
		},
	},
	diag.NonPlainVariableWithoutInit: {
		En: func(a Args) string {
			return fmt.Sprintf("the type '%s' has no default constructor, an initializer is required", a.TypeName)
		},
		Be: func(a Args) string {
			return fmt.Sprintf("у тыпу '%s' няма канструктара па змаўчанні, патрабуецца ініцыялізатар", a.TypeName)
		},
		Ru: func(a Args) string {
			return fmt.Sprintf("у типа '%s' нет конструктора по умолчанию, требуется инициализатор", a.TypeName)
		},
	},
	diag.EntityNameTaken: {
		En: func(a Args) string { return fmt.Sprintf("the name '%s' is already taken", a.Name) },
		Be: func(a Args) string { return fmt.Sprintf("імя '%s' ужо занята", a.Name) },
		Ru: func(a Args) string { return fmt.Sprintf("имя '%s' уже занято", a.Name) },
	},
	diag.DuplicateFunctionDefinition: {
		En: duplicateEn, Be: duplicateBe, Ru: duplicateRu,
	},
	diag.DuplicateMethodDefinition: {
		En: duplicateEn, Be: duplicateBe, Ru: duplicateRu,
	},
	diag.DuplicateConstructorDefinition: {
		En: duplicateEn, Be: duplicateBe, Ru: duplicateRu,
	},
	diag.CopyConstructorDefinition: {
		En: func(Args) string { return "a copy constructor cannot be defined by hand" },
		Be: func(Args) string { return "капіравальны канструктар нельга вызначыць уручную" },
		Ru: func(Args) string { return "копирующий конструктор нельзя определить вручную" },
	},
	diag.ThisReferenceOutsideMethod: {
		En: func(Args) string { return "'this' can only be used inside a method" },
		Be: func(Args) string { return "'this' можна выкарыстоўваць толькі ўнутры метаду" },
		Ru: func(Args) string { return "'this' можно использовать только внутри метода" },
	},
	diag.NumericLiteralTooSmall: {
		En: func(a Args) string { return fmt.Sprintf("the numeric literal is too small for the type '%s'", a.TypeName) },
		Be: func(a Args) string { return fmt.Sprintf("лікавы літарал занадта малы для тыпу '%s'", a.TypeName) },
		Ru: func(a Args) string { return fmt.Sprintf("числовой литерал слишком мал для типа '%s'", a.TypeName) },
	},
	diag.NumericLiteralTooBig: {
		En: func(a Args) string { return fmt.Sprintf("the numeric literal is too big for the type '%s'", a.TypeName) },
		Be: func(a Args) string { return fmt.Sprintf("лікавы літарал занадта вялікі для тыпу '%s'", a.TypeName) },
		Ru: func(a Args) string { return fmt.Sprintf("числовой литерал слишком велик для типа '%s'", a.TypeName) },
	},
	diag.UndefinedOperator: {
		En: func(a Args) string {
			return fmt.Sprintf("the operator '%s' is not defined for the type '%s'", a.Text, a.TypeName)
		},
		Be: func(a Args) string {
			return fmt.Sprintf("аператар '%s' не вызначаны для тыпу '%s'", a.Text, a.TypeName)
		},
		Ru: func(a Args) string {
			return fmt.Sprintf("оператор '%s' не определён для типа '%s'", a.Text, a.TypeName)
		},
	},
	diag.NonTypeExpressionAsCastTarget: {
		En: func(Args) string { return "the cast target must be a type" },
		Be: func(Args) string { return "мэтай прывядзення павінен быць тып" },
		Ru: func(Args) string { return "целью приведения должен быть тип" },
	},
	diag.NativeFunctionWithBody: {
		En: nativeBodyEn, Be: nativeBodyBe, Ru: nativeBodyRu,
	},
	diag.NativeMethodWithBody: {
		En: nativeBodyEn, Be: nativeBodyBe, Ru: nativeBodyRu,
	},
	diag.NativeConstructorWithBody: {
		En: nativeBodyEn, Be: nativeBodyBe, Ru: nativeBodyRu,
	},
	diag.FunctionDefinitionWithoutBody: {
		En: noBodyEn, Be: noBodyBe, Ru: noBodyRu,
	},
	diag.MethodDefinitionWithoutBody: {
		En: noBodyEn, Be: noBodyBe, Ru: noBodyRu,
	},
	diag.ConstructorDefinitionWithoutBody: {
		En: noBodyEn, Be: noBodyBe, Ru: noBodyRu,
	},
	diag.ReferenceMarkerInFunction: {
		En: func(Args) string { return "'&' cannot appear on a function name" },
		Be: func(Args) string { return "'&' не можа стаяць у імені функцыі" },
		Ru: func(Args) string { return "'&' не может стоять в имени функции" },
	},
	diag.InvalidReferenceAsType: {
		En: func(a Args) string { return fmt.Sprintf("'%s' is %s, not a type", a.Name, noun(En, a.Kind).Indef) },
		Be: func(a Args) string { return fmt.Sprintf("'%s' — гэта %s, а не тып", a.Name, noun(Be, a.Kind).Nom) },
		Ru: func(a Args) string { return fmt.Sprintf("'%s' — это %s, а не тип", a.Name, noun(Ru, a.Kind).Nom) },
	},
	diag.OverreferencedType: {
		En: func(a Args) string { return fmt.Sprintf("the reference type '%s' cannot be referenced again", a.TypeName) },
		Be: func(a Args) string { return fmt.Sprintf("нельга стварыць спасылку на спасылачны тып '%s'", a.TypeName) },
		Ru: func(a Args) string { return fmt.Sprintf("нельзя создать ссылку на ссылочный тип '%s'", a.TypeName) },
	},
	diag.NoTypeConversionFunction: {
		En: func(a Args) string { return fmt.Sprintf("no conversion from '%s' to '%s'", a.TypeName, a.SecondType) },
		Be: func(a Args) string { return fmt.Sprintf("няма пераўтварэння з '%s' у '%s'", a.TypeName, a.SecondType) },
		Ru: func(a Args) string { return fmt.Sprintf("нет преобразования из '%s' в '%s'", a.TypeName, a.SecondType) },
	},
	diag.InvalidConversionReturnType: {
		En: func(a Args) string {
			return fmt.Sprintf("the conversion function returns '%s', not '%s'", a.TypeName, a.SecondType)
		},
		Be: func(a Args) string {
			return fmt.Sprintf("функцыя пераўтварэння вяртае '%s', а не '%s'", a.TypeName, a.SecondType)
		},
		Ru: func(a Args) string {
			return fmt.Sprintf("функция преобразования возвращает '%s', а не '%s'", a.TypeName, a.SecondType)
		},
	},
	diag.UnknownObjectMember: {
		En: func(a Args) string { return fmt.Sprintf("the type '%s' has no member '%s'", a.TypeName, a.Name) },
		Be: func(a Args) string { return fmt.Sprintf("у тыпу '%s' няма члена '%s'", a.TypeName, a.Name) },
		Ru: func(a Args) string { return fmt.Sprintf("у типа '%s' нет члена '%s'", a.TypeName, a.Name) },
	},
	diag.UnknownStaticMemberName: {
		En: func(a Args) string { return fmt.Sprintf("the type '%s' has no static member '%s'", a.TypeName, a.Name) },
		Be: func(a Args) string { return fmt.Sprintf("у тыпу '%s' няма статычнага члена '%s'", a.TypeName, a.Name) },
		Ru: func(a Args) string { return fmt.Sprintf("у типа '%s' нет статического члена '%s'", a.TypeName, a.Name) },
	},
	diag.ReferenceMethodFromNonReference: {
		En: func(a Args) string {
			return fmt.Sprintf("the method '%s' is defined on '%s' and needs a reference receiver", a.Name, a.TypeName)
		},
		Be: func(a Args) string {
			return fmt.Sprintf("метад '%s' вызначаны на '%s' і патрабуе спасылачнага атрымальніка", a.Name, a.TypeName)
		},
		Ru: func(a Args) string {
			return fmt.Sprintf("метод '%s' определён на '%s' и требует ссылочного получателя", a.Name, a.TypeName)
		},
	},
	diag.ShadowedDefinition: {
		En: func(a Args) string { return fmt.Sprintf("the definition of '%s' shadows an outer definition", a.Name) },
		Be: func(a Args) string { return fmt.Sprintf("вызначэнне '%s' хавае знешняе вызначэнне", a.Name) },
		Ru: func(a Args) string { return fmt.Sprintf("определение '%s' скрывает внешнее определение", a.Name) },
	},
	diag.ReturnValueIgnored: {
		En: func(Args) string { return "the result of the expression is ignored" },
		Be: func(Args) string { return "вынік выразу не выкарыстоўваецца" },
		Ru: func(Args) string { return "результат выражения не используется" },
	},
}

func duplicateEn(a Args) string {
	n := noun(En, a.Kind)
	return fmt.Sprintf("%s '%s' is already defined with the same parameter types", n.Def, a.Name)
}

func duplicateBe(a Args) string {
	n := noun(Be, a.Kind)
	verb := "вызначаны"
	if n.Gender == Fem {
		verb = "вызначана"
	}
	return fmt.Sprintf("%s '%s' з такімі ж тыпамі параметраў ужо %s", n.Nom, a.Name, verb)
}

func duplicateRu(a Args) string {
	n := noun(Ru, a.Kind)
	verb := "определён"
	if n.Gender == Fem {
		verb = "определена"
	}
	return fmt.Sprintf("%s '%s' с такими же типами параметров уже %s", n.Nom, a.Name, verb)
}

func nativeBodyEn(a Args) string {
	n := noun(En, a.Kind)
	return fmt.Sprintf("a %s %s cannot have a body", adjNative[En].With(n.Gender), n.Bare)
}

func nativeBodyBe(a Args) string {
	n := noun(Be, a.Kind)
	return fmt.Sprintf("%s %s не можа мець цела", adjNative[Be].With(n.Gender), n.Nom)
}

func nativeBodyRu(a Args) string {
	n := noun(Ru, a.Kind)
	return fmt.Sprintf("%s %s не может иметь тела", adjNative[Ru].With(n.Gender), n.Nom)
}

func noBodyEn(a Args) string {
	n := noun(En, a.Kind)
	return fmt.Sprintf("%s '%s' must have a body", n.Def, a.Name)
}

func noBodyBe(a Args) string {
	n := noun(Be, a.Kind)
	return fmt.Sprintf("%s '%s' %s мець цела", n.Nom, a.Name, mustHave(Be, n.Gender))
}

func noBodyRu(a Args) string {
	n := noun(Ru, a.Kind)
	return fmt.Sprintf("%s '%s' %s иметь тело", n.Nom, a.Name, mustHave(Ru, n.Gender))
}
