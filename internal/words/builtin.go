package words

// Builtin returns the word lists shipped with the server.
func Builtin() *Bank {
	return NewBank(map[string][]string{
		"animals": {
			"cat", "dog", "elephant", "lion", "tiger", "monkey", "giraffe", "penguin", "dolphin", "shark",
			"butterfly", "eagle", "snake", "crocodile", "zebra", "horse", "pig", "cow", "sheep", "chicken",
		},
		"objects": {
			"apple", "banana", "pizza", "hamburger", "ice cream", "car", "bicycle", "house", "tree", "flower",
			"phone", "computer", "watch", "book", "pen", "cup", "bottle", "chair", "table", "bed",
		},
		"actions": {
			"running", "jumping", "dancing", "sleeping", "eating", "drinking", "swimming", "flying", "driving", "walking",
			"singing", "laughing", "crying", "thinking", "hugging", "kissing", "fighting", "cooking", "painting", "reading",
		},
		"movies": {
			"titanic", "avatar", "frozen", "lion king", "finding nemo", "toy story", "shrek", "batman", "superman", "spider-man",
			"harry potter", "lord of the rings", "star wars", "avengers", "jurassic park", "inception", "the matrix", "jaws", "alien", "e.t.",
		},
		"random": {
			"volcano", "rocket", "dinosaur", "mermaid", "robot", "pirate", "ninja", "wizard", "dragon", "ghost",
			"unicorn", "superhero", "teacher", "doctor", "chef", "astronaut", "clown", "monster", "vampire", "zombie",
		},
	})
}
