package hash

// Word lists for pet-names. Petname indexes them modulo their lengths, so
// any change to a list, appending included, changes the generated names.
var adjectives = []string{
	"able", "acute", "agile", "alert", "amber", "ample", "artful", "august",
	"awake", "aware", "balmy", "bold", "brave", "breezy", "bright", "brisk",
	"calm", "candid", "casual", "cheery", "chief", "civil", "classic", "clean",
	"clear", "clever", "close", "cosmic", "cozy", "crisp", "curious", "daring",
	"dapper", "deep", "deft", "direct", "divine", "dynamic", "eager", "early",
	"earnest", "easy", "elegant", "epic", "equal", "exact", "fair", "famous",
	"fancy", "fast", "fine", "firm", "fleet", "fluent", "fond", "frank",
	"free", "fresh", "full", "gentle", "giant", "gifted", "glad", "golden",
	"good", "grand", "great", "green", "happy", "hardy", "hearty", "helpful",
	"honest", "humble", "ideal", "intent", "jolly", "joyful", "keen", "kind",
	"large", "lively", "loyal", "lucid", "lucky", "magic", "major", "merry",
	"mighty", "modern", "modest", "native", "neat", "noble", "novel", "open",
	"optimal", "patient", "peppy", "perky", "plucky", "polite", "precise",
	"prime", "proper", "proud", "pure", "quick", "quiet", "rapid", "rare",
	"ready", "real", "regal", "rich", "robust", "rosy", "royal", "sage",
	"serene", "sharp", "shiny", "silent", "sleek", "smart", "smooth", "snappy",
	"solid", "sound", "spry", "stable", "steady", "stellar", "still", "strong",
	"subtle", "sunny", "super", "sure", "swift", "tidy", "tough", "true",
	"trusty", "upbeat", "valid", "vast", "vivid", "warm", "wise", "witty",
	"worthy", "young", "zesty",
}

var animals = []string{
	"ant", "badger", "bat", "bear", "beaver", "bee", "bison", "bobcat",
	"camel", "cat", "cheetah", "civet", "cobra", "condor", "coyote", "crane",
	"cricket", "crow", "deer", "dingo", "dolphin", "donkey", "dove", "duck",
	"eagle", "egret", "elk", "falcon", "ferret", "finch", "fox", "frog",
	"gazelle", "gecko", "gibbon", "goat", "goose", "gopher", "grouse", "gull",
	"hare", "hawk", "heron", "horse", "hound", "ibex", "ibis", "iguana",
	"impala", "jackal", "jaguar", "jay", "kite", "koala", "lark", "lemur",
	"leopard", "lion", "lizard", "llama", "loon", "lynx", "macaw", "magpie",
	"mallard", "manatee", "marmot", "marten", "meerkat", "mink", "mole",
	"moose", "moth", "mouse", "mule", "newt", "ocelot", "orca", "oriole",
	"osprey", "otter", "owl", "ox", "panda", "panther", "parrot", "pelican",
	"penguin", "pheasant", "pigeon", "pika", "plover", "pony", "puffin",
	"puma", "quail", "rabbit", "raccoon", "ram", "raven", "robin", "salmon",
	"seal", "serval", "shrew", "skink", "skunk", "sloth", "snipe", "sparrow",
	"squid", "starling", "stoat", "stork", "swallow", "swan", "swift",
	"tapir", "teal", "tern", "tiger", "toad", "toucan", "trout", "turtle",
	"vole", "walrus", "wapiti", "weasel", "whale", "wolf", "wombat", "wren",
	"yak", "zebra",
}
