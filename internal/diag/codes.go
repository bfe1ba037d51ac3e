package diag

import "fmt"

// Code is a stable diagnostic code. Codes are banded by pipeline stage:
// E0001-E0004 lexer, E0005-E0012 parser, everything above semantic analysis.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	IntegerLiteralOutOfRange Code = 1
	InvalidExponent          Code = 2
	UnknownNumber            Code = 3
	UnknownCharacter         Code = 4

	// Parser
	MissingVariableInitializer Code = 5
	MissingRightOperand        Code = 6
	UnknownSpecifier           Code = 7
	MissingClosingDelimiter    Code = 8
	KeywordAsIdentifier        Code = 9
	UnexpectedToken            Code = 10
	ExpectedExpression         Code = 11
	ExpectedDefinition         Code = 12

	// Expressions
	InvalidCallArguments         Code = 13
	AmbiguousOverloadedCall      Code = 14
	ExpressionIsNotCallable      Code = 15
	InvalidReferenceAsExpression Code = 16
	UnknownName                  Code = 17

	// Declarations and statements
	MissingMainFunction             Code = 18
	InvalidMainFunctionSignature    Code = 19
	MissingReturnStatement          Code = 20
	MainIsNotFunction               Code = 21
	ReturnFromConstructor           Code = 22
	ReturnWithoutValue              Code = 23
	IncompatibleReturnType          Code = 24
	UnreachableCode                 Code = 25
	InvalidConditionType            Code = 26
	IncompatibleVariableInitializer Code = 27
	NonPlainVariableWithoutInit     Code = 28
	EntityNameTaken                 Code = 29
	DuplicateFunctionDefinition     Code = 30
	DuplicateMethodDefinition       Code = 31
	DuplicateConstructorDefinition  Code = 32
	CopyConstructorDefinition       Code = 33
	ThisReferenceOutsideMethod      Code = 34
	NumericLiteralTooSmall          Code = 35
	NumericLiteralTooBig            Code = 36
	UndefinedOperator               Code = 37
	NonTypeExpressionAsCastTarget   Code = 38
	NativeFunctionWithBody          Code = 39
	NativeMethodWithBody            Code = 40
	NativeConstructorWithBody       Code = 41
	FunctionDefinitionWithoutBody   Code = 42
	MethodDefinitionWithoutBody     Code = 43
	ConstructorDefinitionWithoutBody Code = 44
	ReferenceMarkerInFunction       Code = 45
	InvalidReferenceAsType          Code = 46
	OverreferencedType              Code = 47
	NoTypeConversionFunction        Code = 48
	InvalidConversionReturnType     Code = 49
	UnknownObjectMember             Code = 50
	UnknownStaticMemberName         Code = 51
	ReferenceMethodFromNonReference Code = 52
	ShadowedDefinition              Code = 53
	ReturnValueIgnored              Code = 54
)

// maxCode bounds the valid code range for validation and iteration.
const maxCode Code = 54

func (c Code) String() string {
	return fmt.Sprintf("E%04d", uint16(c))
}

// IsValid reports whether the code belongs to the catalogue.
func (c Code) IsValid() bool {
	return c >= IntegerLiteralOutOfRange && c <= maxCode
}
