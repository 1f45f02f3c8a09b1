package signaling

// Word pools for generating memorable room tokens.

var adjectives = []string{
	"tiny", "happy", "sleepy", "fluffy", "sparkly", "cheery", "silly", "jolly", "cozy", "shiny",
	"golden", "silver", "crimson", "emerald", "purple", "amber", "scarlet", "teal", "bright", "gentle",
	"brave", "calm", "swift", "silent", "noisy", "bouncy", "fuzzy", "plucky", "merry", "peppy",
	"dreamy", "breezy", "frosty", "sunny", "misty", "starry", "velvet", "mellow", "lively", "witty",
}

var nouns = []string{
	"otter", "panda", "koala", "fox", "bunny", "penguin", "dolphin", "narwhal", "robin", "sparrow",
	"comet", "nebula", "orbit", "rocket", "lantern", "ember", "meadow", "willow", "pebble", "canyon",
	"waffle", "muffin", "biscuit", "toffee", "cocoa", "maple", "pepper", "nugget", "pretzel", "mango",
	"marble", "pixel", "echo", "bubble", "glimmer", "sprout", "thimble", "button", "puddle", "drizzle",
}
