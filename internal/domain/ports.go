package domain

// InventoryStore reads and writes a whole inventory as one document.
type InventoryStore interface {
	Load(path string, opts ...Option) (*Inventory, error)
	Save(path string, inv *Inventory) error
}

// ConfigLoader loads project configuration from a directory.
type ConfigLoader interface {
	Load(dir string) (ProjectConfig, error)
}

// SaveJournal records every successful save of a data file.
type SaveJournal interface {
	Append(dir string, entry SaveEntry) error
	Entries(dir string) ([]SaveEntry, error)
}

// GitInfo resolves git metadata for a directory.
type GitInfo interface {
	CommitHash(dir string) (string, error)
}
