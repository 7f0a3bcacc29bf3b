package format

// JoinBehavior controls how a token attaches to its neighbors when the token
// sequence is re-joined.
type JoinBehavior int

const (
	// Keep renders with normal spacing on both sides.
	Keep JoinBehavior = iota
	// Prefix suppresses the space before the next token ("-la", "--help").
	Prefix
	// Infix suppresses the space on both sides ("file.txt", "a/b").
	Infix
)

// Filler words stripped before any mapping runs. The comma-gated entries are
// only removed when followed by a comma, so "grep like pattern" survives.
var fillers = []string{"um", "uh", "uhm", "hmm", "er", "erm"}

var commaGatedFillers = []string{"you know", "i mean", "like", "so", "well"}

// Misheard CLI terms, applied as whole-word case-insensitive substitutions
// before symbol mapping. Hyphenated command names live here too: join
// behavior alone cannot produce both "apt-get" and "install -y" from the
// same spoken "dash".
var cliCorrections = []struct {
	spoken      string
	replacement string
}{
	{"sue dough", "sudo"},
	{"sue do", "sudo"},
	{"pseudo", "sudo"},
	{"sea dee", "cd"},
	{"see dee", "cd"},
	{"kube control", "kubectl"},
	{"cube control", "kubectl"},
	{"cube cuddle", "kubectl"},
	{"engine x", "nginx"},
	{"my sequel", "mysql"},
	{"post gress", "postgres"},
	{"pie thon", "python"},
	{"get hub", "github"},
	{"apt dash get", "apt-get"},
	{"apt get", "apt-get"},
}

// Multi-word phrase mappings, checked longest phrase first so no shorter
// mapping shadows a longer one ("dot dot slash" before "dot dot" before
// "dot").
var phraseMap = []struct {
	spoken string
	symbol string
}{
	{"greater than or equal", ">="},
	{"less than or equal", "<="},
	{"open parenthesis", "("},
	{"close parenthesis", ")"},
	{"dot dot slash", "../"},
	{"double quote", "\""},
	{"single quote", "'"},
	{"greater than", ">"},
	{"double equal", "=="},
	{"open bracket", "["},
	{"close bracket", "]"},
	{"left bracket", "["},
	{"right bracket", "]"},
	{"double dash", "--"},
	{"redirect to", ">"},
	{"open paren", "("},
	{"close paren", ")"},
	{"left paren", "("},
	{"right paren", ")"},
	{"open brace", "{"},
	{"close brace", "}"},
	{"open curly", "{"},
	{"close curly", "}"},
	{"left brace", "{"},
	{"right brace", "}"},
	{"dash help", "--help"},
	{"dash dash", "--"},
	{"not equal", "!="},
	{"less than", "<"},
	{"append to", ">>"},
	{"dot slash", "./"},
	{"and sign", "&"},
	{"back tick", "`"},
	{"backtick", "`"},
	{"dot dot", ".."},
}

type wordRule struct {
	symbol string
	join   JoinBehavior
}

// Single-word symbol mappings with join behavior.
var wordMap = map[string]wordRule{
	"dash":        {"-", Prefix},
	"hyphen":      {"-", Prefix},
	"minus":       {"-", Prefix},
	"dot":         {".", Infix},
	"period":      {".", Infix},
	"slash":       {"/", Infix},
	"backslash":   {"\\", Infix},
	"pipe":        {"|", Keep},
	"tilde":       {"~", Prefix},
	"at":          {"@", Infix},
	"hash":        {"#", Prefix},
	"hashtag":     {"#", Prefix},
	"pound":       {"#", Prefix},
	"dollar":      {"$", Prefix},
	"percent":     {"%", Infix},
	"caret":       {"^", Prefix},
	"ampersand":   {"&", Keep},
	"asterisk":    {"*", Prefix},
	"star":        {"*", Prefix},
	"underscore":  {"_", Infix},
	"equals":      {"=", Infix},
	"plus":        {"+", Prefix},
	"colon":       {":", Infix},
	"semicolon":   {";", Keep},
	"comma":       {",", Keep},
	"exclamation": {"!", Prefix},
	"bang":        {"!", Prefix},
	"quote":       {"\"", Keep},
}

// Pure symbol tokens that attach to the following token.
var symbolPrefixes = map[string]struct{}{
	"--":  {},
	"-":   {},
	"../": {},
	"./":  {},
	"..":  {},
	"$":   {},
	"~":   {},
	"#":   {},
	"@":   {},
	"+":   {},
	"!":   {},
}

// Spoken port numbers and similar fixed idioms, resolved before the general
// digit-word scan.
var numericIdioms = []struct {
	spoken string
	digits string
}{
	{"eighty eighty", "8080"},
	{"eight thousand", "8000"},
	{"three thousand", "3000"},
	{"five thousand", "5000"},
	{"nine thousand", "9000"},
}

var digitWords = map[string]string{
	"zero":  "0",
	"one":   "1",
	"two":   "2",
	"three": "3",
	"four":  "4",
	"five":  "5",
	"six":   "6",
	"seven": "7",
	"eight": "8",
	"nine":  "9",
}
