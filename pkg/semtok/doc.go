/*
Package semtok provides semantic token support for the template language server.

🎨 Semantic Tokens Overview:
---------------------------
Semantic tokens give editors precise highlighting for mixed markup, embedded
code and directives. This package turns a bound syntax tree into classified
ranges; the lsp package turns those into the wire format.

Architecture:
------------

	Parser/Binder                 LSP Server
	     |                            |
	     v                            v
	+----------+    tree       +-------------+
	| @syntax  | -----------> |   @semtok   |
	+----------+              +-------------+
	                                |
	                          +-----+------+
	                          |            |
	                     Full File    Viewport
	                      Ranges       Ranges

🔍 Classification Rules:
-----------------------
1. Markup
  - text, tag names, attributes, quotes, `=`, delimiters, `<!-- -->`

2. Bound components
  - tag names of component matches become componentElement
  - elements matched only through an attribute keep markupElement
  - bound attributes become componentAttribute / directiveAttribute

3. Template constructs
  - `@` transitions, template braces, explicit expression parens
  - directive keywords (unless error recovery put code there)
  - `@* *@` comments, piece by piece

📏 Range Rules:
--------------
  - no range spans more than one line; multi-line nodes are split at
    their children and whitespace-only pieces are dropped
  - no zero width ranges
  - ranges come out in source order
  - with a viewport, only overlapping ranges are kept

🔗 Related Packages:
------------------
- @syntax: the tree shapes being walked
- @position: spans, ranges, UTF-16 columns
- @lsp: legend and delta encoding

Example Usage:
-------------

	ranges, err := semtok.Classify(ctx, tree, nil)
	if err != nil {
	    return err
	}
	// Encode ranges for the LSP response...
*/
package semtok
