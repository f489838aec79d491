package mnemonic

// wordList is the fixed vocabulary recovery phrases are drawn from. Phrases
// hash the literal words, so the list must stay stable within a deployment:
// changing, reordering, or respelling entries orphans existing phrases.
var wordList = [...]string{
	"acid", "actor", "amber", "anchor", "apple", "arrow", "atlas", "autumn",
	"badge", "bacon", "basil", "beacon", "berry", "birch", "bishop", "blaze",
	"bloom", "bolt", "border", "bridge", "bronze", "brush", "butter", "cabin",
	"cactus", "camel", "canoe", "canyon", "carbon", "castle", "cedar", "chalk",
	"cherry", "chess", "cider", "cinema", "circle", "citrus", "clover", "cobalt",
	"comet", "copper", "coral", "cosmos", "cotton", "cradle", "crater", "crystal",
	"dagger", "daisy", "dawn", "delta", "denim", "desert", "diesel", "dome",
	"donkey", "dragon", "drift", "eagle", "echo", "ember", "engine", "falcon",
	"fable", "feather", "fern", "fiddle", "flint", "forest", "fossil", "fox",
	"frost", "galaxy", "garlic", "geyser", "ginger", "glacier", "goose", "granite",
	"grape", "gravel", "hammer", "harbor", "hazel", "helmet", "hickory", "honey",
	"horizon", "hornet", "igloo", "indigo", "iron", "island", "ivory", "jade",
	"jaguar", "jasper", "juniper", "kettle", "lagoon", "lantern", "laurel", "lava",
	"lemon", "lilac", "lobster", "lotus", "lunar", "magnet", "mango", "maple",
	"marble", "meadow", "mentor", "meteor", "mint", "mosaic", "moss", "nectar",
	"nickel", "nimbus", "oasis", "ocean", "olive", "onyx", "opal", "orbit",
}
