package mathml

// symbol is the MathML leaf a command maps to. attr is a mathvariant for
// mi/mo leaves and a width for mspace.
type symbol struct {
	tag  string
	text string
	attr string
}

func mi(s string) symbol { return symbol{tag: "mi", text: s} }
func mo(s string) symbol { return symbol{tag: "mo", text: s} }
func fn(s string) symbol { return symbol{tag: "mi", text: s, attr: "normal"} }
func sp(w string) symbol { return symbol{tag: "mspace", attr: w} }

var symbols = map[string]symbol{
	// Lowercase greek.
	"alpha": mi("α"), "beta": mi("β"), "gamma": mi("γ"), "delta": mi("δ"),
	"epsilon": mi("ϵ"), "varepsilon": mi("ε"), "zeta": mi("ζ"), "eta": mi("η"),
	"theta": mi("θ"), "vartheta": mi("ϑ"), "iota": mi("ι"), "kappa": mi("κ"),
	"lambda": mi("λ"), "mu": mi("μ"), "nu": mi("ν"), "xi": mi("ξ"),
	"pi": mi("π"), "varpi": mi("ϖ"), "rho": mi("ρ"), "varrho": mi("ϱ"),
	"sigma": mi("σ"), "varsigma": mi("ς"), "tau": mi("τ"), "upsilon": mi("υ"),
	"phi": mi("φ"), "varphi": mi("ϕ"), "chi": mi("χ"), "psi": mi("ψ"),
	"omega": mi("ω"),

	// Uppercase greek.
	"Gamma": mi("Γ"), "Delta": mi("Δ"), "Theta": mi("Θ"), "Lambda": mi("Λ"),
	"Xi": mi("Ξ"), "Pi": mi("Π"), "Sigma": mi("Σ"), "Upsilon": mi("Υ"),
	"Phi": mi("Φ"), "Psi": mi("Ψ"), "Omega": mi("Ω"),

	// Binary operators.
	"times": mo("×"), "div": mo("÷"), "cdot": mo("⋅"), "pm": mo("±"),
	"mp": mo("∓"), "ast": mo("∗"), "star": mo("⋆"), "circ": mo("∘"),
	"bullet": mo("•"), "oplus": mo("⊕"), "ominus": mo("⊖"), "otimes": mo("⊗"),
	"oslash": mo("⊘"), "odot": mo("⊙"), "wedge": mo("∧"), "vee": mo("∨"),
	"land": mo("∧"), "lor": mo("∨"), "setminus": mo("∖"),

	// Relations.
	"leq": mo("≤"), "le": mo("≤"), "geq": mo("≥"), "ge": mo("≥"),
	"neq": mo("≠"), "ne": mo("≠"), "equiv": mo("≡"), "approx": mo("≈"),
	"cong": mo("≅"), "sim": mo("∼"), "simeq": mo("≃"), "propto": mo("∝"),
	"ll": mo("≪"), "gg": mo("≫"), "prec": mo("≺"), "succ": mo("≻"),
	"perp": mo("⊥"), "parallel": mo("∥"), "mid": mo("∣"), "models": mo("⊨"),

	// Sets and logic.
	"in": mo("∈"), "notin": mo("∉"), "ni": mo("∋"), "subset": mo("⊂"),
	"supset": mo("⊃"), "subseteq": mo("⊆"), "supseteq": mo("⊇"),
	"cup": mo("∪"), "cap": mo("∩"), "emptyset": mi("∅"), "varnothing": mi("∅"),
	"forall": mo("∀"), "exists": mo("∃"), "nexists": mo("∄"), "neg": mo("¬"),
	"lnot": mo("¬"), "top": mi("⊤"), "bot": mi("⊥"),

	// Arrows.
	"rightarrow": mo("→"), "to": mo("→"), "leftarrow": mo("←"),
	"gets": mo("←"), "leftrightarrow": mo("↔"), "Rightarrow": mo("⇒"),
	"Leftarrow": mo("⇐"), "Leftrightarrow": mo("⇔"), "implies": mo("⟹"),
	"iff": mo("⟺"), "mapsto": mo("↦"), "uparrow": mo("↑"),
	"downarrow": mo("↓"), "longrightarrow": mo("⟶"),
	"longleftarrow": mo("⟵"), "hookrightarrow": mo("↪"),

	// Big operators.
	"sum": mo("∑"), "prod": mo("∏"), "coprod": mo("∐"), "int": mo("∫"),
	"iint": mo("∬"), "iiint": mo("∭"), "oint": mo("∮"),
	"bigcup": mo("⋃"), "bigcap": mo("⋂"), "bigoplus": mo("⨁"),
	"bigotimes": mo("⨂"), "bigvee": mo("⋁"), "bigwedge": mo("⋀"),

	// Named functions, rendered upright.
	"sin": fn("sin"), "cos": fn("cos"), "tan": fn("tan"), "cot": fn("cot"),
	"sec": fn("sec"), "csc": fn("csc"), "arcsin": fn("arcsin"),
	"arccos": fn("arccos"), "arctan": fn("arctan"), "sinh": fn("sinh"),
	"cosh": fn("cosh"), "tanh": fn("tanh"), "exp": fn("exp"),
	"log": fn("log"), "ln": fn("ln"), "lg": fn("lg"), "det": fn("det"),
	"dim": fn("dim"), "ker": fn("ker"), "deg": fn("deg"), "gcd": fn("gcd"),
	"lim": fn("lim"), "liminf": fn("lim inf"), "limsup": fn("lim sup"),
	"max": fn("max"), "min": fn("min"), "sup": fn("sup"), "inf": fn("inf"),
	"arg": fn("arg"), "Pr": fn("Pr"), "mod": fn("mod"), "bmod": fn("mod"),

	// Dots and miscellany.
	"ldots": mo("…"), "cdots": mo("⋯"), "vdots": mo("⋮"), "ddots": mo("⋱"),
	"dots": mo("…"), "infty": mi("∞"), "partial": mo("∂"), "nabla": mo("∇"),
	"prime": mo("′"), "angle": mi("∠"), "triangle": mi("△"),
	"hbar": mi("ℏ"), "ell": mi("ℓ"), "Re": mi("ℜ"), "Im": mi("ℑ"),
	"aleph": mi("ℵ"), "wp": mi("℘"), "degree": mo("°"), "surd": mo("√"),

	// Delimiters spelled as commands.
	"langle": mo("⟨"), "rangle": mo("⟩"), "lfloor": mo("⌊"),
	"rfloor": mo("⌋"), "lceil": mo("⌈"), "rceil": mo("⌉"),
	"lbrace": mo("{"), "rbrace": mo("}"), "vert": mo("|"), "Vert": mo("‖"),
	"lvert": mo("|"), "rvert": mo("|"), "lVert": mo("‖"), "rVert": mo("‖"),

	// Spacing commands.
	",": sp("0.167em"), ":": sp("0.222em"), ";": sp("0.278em"),
	"!": sp("0"), "quad": sp("1em"), "qquad": sp("2em"), " ": sp("0.25em"),

	// Escaped literals.
	"{": mo("{"), "}": mo("}"), "%": mo("%"), "&": mo("&"), "#": mo("#"),
	"$": mo("$"), "_": mo("_"), "|": mo("‖"), "backslash": mo("\\"),
}

// accents maps accent commands to the combining glyph placed over (or
// under, for underline) the base.
var accents = map[string]string{
	"hat": "^", "widehat": "^", "bar": "¯", "overline": "¯",
	"underline": "_", "vec": "→", "dot": "˙", "ddot": "¨",
	"tilde": "~", "widetilde": "~", "check": "ˇ", "breve": "˘",
	"acute": "´", "grave": "`", "overrightarrow": "→",
}

// limitOperators take under/over scripts in display style.
var limitOperators = map[string]bool{
	"∑": true, "∏": true, "∐": true, "⋃": true, "⋂": true,
	"⨁": true, "⨂": true, "⋁": true, "⋀": true,
	"lim": true, "lim inf": true, "lim sup": true,
	"max": true, "min": true, "sup": true, "inf": true,
}

// mathVariants maps font commands to the MathML mathvariant attribute.
var mathVariants = map[string]string{
	"mathrm":     "normal",
	"mathbf":     "bold",
	"boldsymbol": "bold-italic",
	"mathit":     "italic",
	"mathcal":    "script",
	"mathbb":     "double-struck",
	"mathtt":     "monospace",
}
