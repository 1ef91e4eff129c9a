package filter

// term lists are matched after folding (lower case, diacritics removed), so
// "çantë" and "cante" are the same term. en terms are also the indexing
// language; sq terms are translated to the canonical name by NormalizeQuery.
type vocabEntry struct {
	Canonical string
	EN        []string
	SQ        []string
}

func (v vocabEntry) terms() []string {
	out := make([]string, 0, len(v.EN)+len(v.SQ)+1)
	out = append(out, v.Canonical)
	out = append(out, v.EN...)
	return append(out, v.SQ...)
}

var colorVocabulary = []vocabEntry{
	{Canonical: "red", EN: []string{"crimson", "burgundy", "maroon", "scarlet", "cherry", "wine"}, SQ: []string{"kuq", "kuqe", "kuqja", "bordo"}},
	{Canonical: "black", EN: []string{"ebony", "jet black"}, SQ: []string{"zi", "zeza", "zezë", "zezen"}},
	{Canonical: "brown", EN: []string{"tan", "camel", "chocolate", "cognac"}, SQ: []string{"kafe", "kafeje", "ngjyrë kafe"}},
	{Canonical: "blue", EN: []string{"navy", "azure", "cobalt", "sky blue", "royal blue"}, SQ: []string{"blu", "kaltër", "kalter"}},
	{Canonical: "green", EN: []string{"emerald", "forest", "mint", "olive", "sage"}, SQ: []string{"jeshil", "jeshile", "gjelbër", "gjelber"}},
	{Canonical: "white", EN: []string{"ivory", "pearl", "optic white"}, SQ: []string{"bardhë", "bardhe", "bardha"}},
	{Canonical: "gray", EN: []string{"grey", "charcoal", "slate"}, SQ: []string{"gri", "hiri"}},
	{Canonical: "pink", EN: []string{"blush", "magenta", "fuchsia"}, SQ: []string{"rozë", "roze", "rozë"}},
	{Canonical: "purple", EN: []string{"violet", "lavender", "plum", "lilac"}, SQ: []string{"vjollcë", "vjollce", "lejla"}},
	{Canonical: "yellow", EN: []string{"lemon", "amber", "mustard"}, SQ: []string{"verdhë", "verdhe", "verdha"}},
	{Canonical: "orange", EN: []string{"peach", "coral", "tangerine"}, SQ: []string{"portokalli", "portokallt"}},
	{Canonical: "beige", EN: []string{"nude", "taupe"}, SQ: []string{"bezhë", "bezhe"}},
	{Canonical: "gold", EN: []string{"golden", "rose gold"}, SQ: []string{"ari", "floriri", "artë", "arte"}},
	{Canonical: "silver", SQ: []string{"argjend", "argjendtë", "argjendte"}},
}

// colorSynonyms never exclude a product ("rose print", "sky high"); they only
// add to the score.
var colorSynonyms = map[string][]string{
	"pink":   {"rose"},
	"blue":   {"sky", "royal"},
	"white":  {"cream"},
	"beige":  {"sand"},
	"brown":  {"luggage"},
	"silver": {"metallic"},
}

var materialVocabulary = []vocabEntry{
	{Canonical: "leather", EN: []string{"saffiano", "pebbled"}, SQ: []string{"lëkurë", "lekure", "lëkure", "lekurë", "lëkurës"}},
	{Canonical: "canvas", SQ: []string{"kanavacë", "kanavace"}},
	{Canonical: "suede", SQ: []string{"kamosh", "kamoshi"}},
	{Canonical: "denim", EN: []string{"jean"}, SQ: []string{"xhins", "xhinse"}},
	{Canonical: "nylon", SQ: []string{"najlon", "najloni"}},
	{Canonical: "fabric", EN: []string{"textile", "cotton"}, SQ: []string{"stof", "pëlhurë", "pelhure"}},
}

// materialSynonyms feed the soft scoring bonus only.
var materialSynonyms = map[string][]string{
	"leather": {"genuine", "real", "premium"},
	"canvas":  {"fabric", "cotton", "denim"},
	"suede":   {"soft", "textured", "velvet"},
}

var sizeVocabulary = []vocabEntry{
	{Canonical: "small", EN: []string{"mini", "compact", "petite", "tiny"}, SQ: []string{"vogël", "vogel", "vogla"}},
	{Canonical: "medium", EN: []string{"mid", "standard"}, SQ: []string{"mesme", "mesëm", "mesem"}},
	{Canonical: "large", EN: []string{"big", "roomy", "oversized", "spacious"}, SQ: []string{"madh", "madhe", "mëdha", "medha"}},
}

// First entry wins when terms overlap, so the tables are kept disjoint.
var occasionVocabulary = []vocabEntry{
	{Canonical: "work", EN: []string{"office", "business", "professional", "corporate"}, SQ: []string{"punë", "pune", "zyrë", "zyre"}},
	{Canonical: "everyday", EN: []string{"daily", "regular", "every day"}, SQ: []string{"përditshëm", "perditshem", "përditshme", "perditshme"}},
	{Canonical: "evening", EN: []string{"night", "party", "dinner", "cocktail", "chic", "elegant"}, SQ: []string{"mbrëmje", "mbremje", "festë", "feste", "darkë", "darke"}},
	{Canonical: "travel", EN: []string{"vacation", "trip", "journey", "weekend", "holiday"}, SQ: []string{"udhëtim", "udhetim", "pushime"}},
	{Canonical: "formal", EN: []string{"sophisticated", "ceremony", "gala", "wedding"}, SQ: []string{"zyrtar", "zyrtare", "dasmë", "dasme"}},
	{Canonical: "casual", EN: []string{"relaxed", "comfortable", "laid back"}, SQ: []string{"komod", "komode", "rastësor", "rastesor"}},
}

var styleSynonyms = map[string][]string{
	"casual":  {"relaxed", "everyday", "laid back"},
	"formal":  {"elegant", "sophisticated", "structured"},
	"elegant": {"chic", "sophisticated", "refined"},
	"sporty":  {"athletic", "active"},
	"vintage": {"retro", "classic"},
	"modern":  {"contemporary", "sleek", "minimal"},
}

// ProductType is one canonical item class. Specific types are
// subcategory-level and win over category-level ones when both are named.
type ProductType struct {
	Name        string
	Category    string
	Subcategory string
	Specific    bool
	EN          []string
	SQ          []string
}

func (t ProductType) terms() []string {
	out := make([]string, 0, len(t.EN)+len(t.SQ)+1)
	out = append(out, t.Name)
	out = append(out, t.EN...)
	return append(out, t.SQ...)
}

var productTypes = []ProductType{
	{Name: "tote", Category: "bags", Subcategory: "tote", Specific: true, EN: []string{"totes", "tote bag", "tote bags", "shopper"}},
	{Name: "crossbody", Category: "bags", Subcategory: "crossbody", Specific: true, EN: []string{"crossbodies", "cross body", "crossbody bag", "messenger"}, SQ: []string{"çantë krahu", "cante krahu", "çanta krahu"}},
	{Name: "satchel", Category: "bags", Subcategory: "satchel", Specific: true, EN: []string{"satchels"}},
	{Name: "clutch", Category: "bags", Subcategory: "clutch", Specific: true, EN: []string{"clutches", "pochette"}},
	{Name: "shoulder bag", Category: "bags", Subcategory: "shoulder bag", Specific: true, EN: []string{"shoulder bags"}, SQ: []string{"çantë supi", "çanta supi", "supi"}},
	{Name: "backpack", Category: "bags", Subcategory: "backpack", Specific: true, EN: []string{"backpacks", "rucksack", "rucksacks"}, SQ: []string{"çantë shpine", "çanta shpine", "shpine", "shpinë"}},
	{Name: "duffle", Category: "bags", Subcategory: "duffle", Specific: true, EN: []string{"duffel", "duffles", "duffels", "weekender", "weekenders"}},
	{Name: "wallet", Subcategory: "wallet", Specific: true, EN: []string{"wallets", "billfold", "cardholder", "card holder"}, SQ: []string{"portofol", "portofoli", "portofolin", "portofolat", "portofola", "kuletë", "kulete", "kuleta"}},
	{Name: "watch", Subcategory: "watch", Specific: true, EN: []string{"watches", "timepiece"}, SQ: []string{"orë", "ora", "orën", "orët", "ore dore"}},
	{Name: "sunglasses", Subcategory: "sunglasses", Specific: true, EN: []string{"shades", "sunnies"}, SQ: []string{"syze", "syzet", "syze dielli"}},
	{Name: "belt", Subcategory: "belt", Specific: true, EN: []string{"belts"}, SQ: []string{"rrip", "rripi", "rripa", "rripin"}},
	{Name: "sneakers", Category: "shoes", Subcategory: "sneakers", Specific: true, EN: []string{"sneaker", "trainers", "trainer"}, SQ: []string{"atlete", "atletet", "atletë"}},
	{Name: "heels", Category: "shoes", Subcategory: "heels", Specific: true, EN: []string{"heel", "pumps", "pump", "stilettos"}, SQ: []string{"taka", "takë", "takat"}},
	{Name: "bag", Category: "bags", EN: []string{"bags", "handbag", "handbags", "purse", "purses"}, SQ: []string{"çantë", "çanta", "çantën", "çantat", "çantave", "çantës", "çantën e"}},
	{Name: "shoes", Category: "shoes", EN: []string{"shoe", "footwear"}, SQ: []string{"këpucë", "kepuce", "këpucët", "kepucet", "këpucë"}},
	{Name: "accessories", Category: "accessories", EN: []string{"accessory"}, SQ: []string{"aksesorë", "aksesore", "aksesoret"}},
}

// Brands the catalog does not carry but shoppers ask for.
var competitorBrands = []string{
	"gucci", "louis vuitton", "chanel", "prada", "hermes", "dior",
	"balenciaga", "versace", "givenchy", "fendi", "burberry", "saint laurent",
}

var brandAliases = map[string]string{
	"mk":  "michael kors",
	"lv":  "louis vuitton",
	"ysl": "saint laurent",
}

var stopwords = map[string]bool{
	// English
	"a": true, "an": true, "the": true, "i": true, "im": true, "me": true, "my": true, "you": true,
	"want": true, "need": true, "looking": true, "look": true, "for": true, "show": true, "find": true,
	"some": true, "something": true, "any": true, "with": true, "in": true, "of": true, "to": true,
	"and": true, "or": true, "is": true, "are": true, "do": true, "have": true, "please": true,
	"can": true, "could": true, "would": true, "like": true, "get": true, "give": true, "that": true,
	"this": true, "it": true, "one": true, "ones": true, "what": true, "which": true, "under": true,
	"below": true, "over": true, "above": true, "around": true, "about": true, "less": true,
	"than": true, "up": true, "budget": true, "between": true, "hello": true, "hi": true,
	// Albanian
	"dua": true, "nje": true, "te": true, "e": true, "per": true, "ne": true, "nga": true,
	"dhe": true, "ose": true, "se": true, "si": true, "kam": true, "keni": true, "trego": true,
	"nen": true, "mbi": true, "rreth": true, "deri": true, "pak": true, "shume": true, "disa": true,
	"ju": true, "lutem": true, "kerkoj": true, "po": true, "jo": true, "pershendetje": true,
}
