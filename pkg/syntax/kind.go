package syntax

// Kind tags the concrete shape of a Node.
type Kind int

const (
	KindToken Kind = iota + 1
	KindDocument
	KindMarkupBlock
	KindCodeBlock
	KindGenericBlock

	KindMarkupTextLiteral
	KindMarkupLiteralAttributeValue
	KindMarkupAttributeBlock
	KindMarkupMinimizedAttributeBlock
	KindMarkupStartTag
	KindMarkupEndTag
	KindMarkupElement
	KindMarkupCommentBlock

	KindTagHelperElement
	KindTagHelperStartTag
	KindTagHelperEndTag
	KindTagHelperAttribute
	KindMinimizedTagHelperAttribute
	KindTagHelperAttributeValue
	KindTagHelperDirectiveAttribute
	KindMinimizedTagHelperDirectiveAttribute

	KindCodeStatementLiteral
	KindCodeExpressionLiteral
	KindCodeStatement
	KindCodeStatementBody
	KindCodeImplicitExpression
	KindCodeExplicitExpression
	KindCodeExplicitExpressionBody

	KindComment
	KindDirective
	KindDirectiveBody
	KindMetaCode
)

var kindNames = map[Kind]string{
	KindToken:                                "token",
	KindDocument:                             "document",
	KindMarkupBlock:                          "markupBlock",
	KindCodeBlock:                            "codeBlock",
	KindGenericBlock:                         "genericBlock",
	KindMarkupTextLiteral:                    "markupTextLiteral",
	KindMarkupLiteralAttributeValue:          "markupLiteralAttributeValue",
	KindMarkupAttributeBlock:                 "markupAttributeBlock",
	KindMarkupMinimizedAttributeBlock:        "markupMinimizedAttributeBlock",
	KindMarkupStartTag:                       "markupStartTag",
	KindMarkupEndTag:                         "markupEndTag",
	KindMarkupElement:                        "markupElement",
	KindMarkupCommentBlock:                   "markupCommentBlock",
	KindTagHelperElement:                     "tagHelperElement",
	KindTagHelperStartTag:                    "tagHelperStartTag",
	KindTagHelperEndTag:                      "tagHelperEndTag",
	KindTagHelperAttribute:                   "tagHelperAttribute",
	KindMinimizedTagHelperAttribute:          "minimizedTagHelperAttribute",
	KindTagHelperAttributeValue:              "tagHelperAttributeValue",
	KindTagHelperDirectiveAttribute:          "tagHelperDirectiveAttribute",
	KindMinimizedTagHelperDirectiveAttribute: "minimizedTagHelperDirectiveAttribute",
	KindCodeStatementLiteral:                 "codeStatementLiteral",
	KindCodeExpressionLiteral:                "codeExpressionLiteral",
	KindCodeStatement:                        "codeStatement",
	KindCodeStatementBody:                    "codeStatementBody",
	KindCodeImplicitExpression:               "codeImplicitExpression",
	KindCodeExplicitExpression:               "codeExplicitExpression",
	KindCodeExplicitExpressionBody:           "codeExplicitExpressionBody",
	KindComment:                              "comment",
	KindDirective:                            "directive",
	KindDirectiveBody:                        "directiveBody",
	KindMetaCode:                             "metaCode",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// AllKinds returns every node kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindToken; k <= KindMetaCode; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}
