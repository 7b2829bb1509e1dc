/*
Token Types and Modifiers:
------------------------
This file defines the token vocabulary shared with the client legend.

	+-------------+     +-----------+
	| TokenType   | --> | Range     |
	+-------------+     +-----------+
	      |                  |
	      v                  v
	[markupElement,   [Start, End]
	 componentElement, single line
	 directive,
	 etc.]

The numeric value of a TokenType is its index in the legend, so the order of
the constants below is part of the wire contract.
*/
package semtok

// TokenType represents the semantic meaning of a token
type TokenType uint32

const (
	// TokenMarkupTextLiteral is plain markup text between tags
	TokenMarkupTextLiteral TokenType = iota

	// TokenMarkupElement is the name of a plain markup tag (e.g., div)
	TokenMarkupElement

	// TokenMarkupAttribute is the name of a plain markup attribute
	TokenMarkupAttribute

	// TokenMarkupAttributeQuote is an attribute quote or literal value
	TokenMarkupAttributeQuote

	// TokenMarkupOperator is the `=` between attribute name and value
	TokenMarkupOperator

	// TokenMarkupTagDelimiter is one of `<`, `/`, `>`
	TokenMarkupTagDelimiter

	// TokenMarkupComment is the text inside `<!-- -->`
	TokenMarkupComment

	// TokenMarkupCommentPunctuation is `<!--` or `-->`
	TokenMarkupCommentPunctuation

	// TokenTransition is the `@` that switches into code, and template braces
	TokenTransition

	// TokenCodePunctuation is the parens around an explicit expression
	TokenCodePunctuation

	// TokenDirective is a directive keyword (e.g., layout)
	TokenDirective

	// TokenDirectiveAttribute is the name of a bound directive attribute (e.g., bind)
	TokenDirectiveAttribute

	// TokenDirectiveColon separates a directive attribute from its parameter
	TokenDirectiveColon

	// TokenComponentElement is the tag name of a bound component
	TokenComponentElement

	// TokenComponentAttribute is an attribute bound to a component property
	TokenComponentAttribute

	// TokenCommentTransition is the `@` of `@*` or `*@`
	TokenCommentTransition

	// TokenCommentStar is the `*` of `@*` or `*@`
	TokenCommentStar

	// TokenComment is the body of a template comment
	TokenComment
)

var tokenTypeNames = [...]string{
	TokenMarkupTextLiteral:        "markupTextLiteral",
	TokenMarkupElement:            "markupElement",
	TokenMarkupAttribute:          "markupAttribute",
	TokenMarkupAttributeQuote:     "markupAttributeQuote",
	TokenMarkupOperator:           "markupOperator",
	TokenMarkupTagDelimiter:       "markupTagDelimiter",
	TokenMarkupComment:            "markupComment",
	TokenMarkupCommentPunctuation: "markupCommentPunctuation",
	TokenTransition:               "transition",
	TokenCodePunctuation:          "codePunctuation",
	TokenDirective:                "directive",
	TokenDirectiveAttribute:       "directiveAttribute",
	TokenDirectiveColon:           "directiveColon",
	TokenComponentElement:         "componentElement",
	TokenComponentAttribute:       "componentAttribute",
	TokenCommentTransition:        "commentTransition",
	TokenCommentStar:              "commentStar",
	TokenComment:                  "comment",
}

// String returns the legend name of the token type
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// AllTokenTypes returns every token type in legend order.
func AllTokenTypes() []TokenType {
	types := make([]TokenType, len(tokenTypeNames))
	for i := range tokenTypeNames {
		types[i] = TokenType(i)
	}
	return types
}

// TokenModifier is a bit set of additional characteristics
type TokenModifier uint32

const (
	// ModifierNone indicates no special characteristics
	ModifierNone TokenModifier = 0
)

// String returns a human-readable representation of the token modifier
func (m TokenModifier) String() string {
	if m == ModifierNone {
		return "none"
	}
	return "unknown"
}

// AllTokenModifiers returns the modifier legend. No modifiers are emitted yet.
func AllTokenModifiers() []string {
	return []string{}
}
