package vienna

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// viennaLexer tokenizes dot-bracket files. Rules are tried in order, so the
// energy annotation "(-1.20)" wins over a one-character structure token.
var viennaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `[#;][^\n]*`},
	{Name: "Header", Pattern: `>[^\n]*`},
	{Name: "Energy", Pattern: `\(\s*[-+]?[0-9]+(\.[0-9]+)?\s*\)`},
	{Name: "Structure", Pattern: `[().]+`},
	{Name: "Sequence", Pattern: `[A-Za-z]+`},
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})
