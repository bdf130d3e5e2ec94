// Package loader defines an abstraction to store a private key in a storage,
// or load it from there if it already exists.
package loader

// Generator is the interface to implement to generate a key.
type Generator interface {
	Generate() ([]byte, error)
}

// Loader is an abstraction to load a key from a storage. It allows for
// instance to read a private key from a file and generate it if it does not
// exist.
type Loader interface {
	// LoadOrCreate tries to load the key and returns it if found, otherwise it
	// generates a new one using the generator and stores it.
	LoadOrCreate(Generator) ([]byte, error)

	// Load loads the key and returns an error if it does not exist.
	Load() ([]byte, error)
}
